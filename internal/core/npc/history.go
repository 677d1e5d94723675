package npc

const defaultHistorySize = 128

// History keeps the most recent decision records in a fixed-size ring.
// It is owned by a single evaluator and is not safe for concurrent use.
type History struct {
	list []DecisionRecord
	next int
	full bool
}

// NewHistory creates a ring holding up to size records; size <= 0 selects the default.
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{list: make([]DecisionRecord, size)}
}

func (h *History) Append(rec DecisionRecord) {
	h.list[h.next] = rec
	h.next++
	if h.next == len(h.list) {
		h.next = 0
		h.full = true
	}
}

func (h *History) Len() int {
	if h.full {
		return len(h.list)
	}
	return h.next
}

// Records returns a copy of the kept records, oldest first.
func (h *History) Records() []DecisionRecord {
	if !h.full {
		cp := make([]DecisionRecord, h.next)
		copy(cp, h.list[:h.next])
		return cp
	}
	cp := make([]DecisionRecord, 0, len(h.list))
	cp = append(cp, h.list[h.next:]...)
	return append(cp, h.list[:h.next]...)
}

// Last returns the newest record, if any.
func (h *History) Last() (DecisionRecord, bool) {
	if h.Len() == 0 {
		return DecisionRecord{}, false
	}
	i := h.next - 1
	if i < 0 {
		i = len(h.list) - 1
	}
	return h.list[i], true
}

func (h *History) Reset() {
	clear(h.list)
	h.next = 0
	h.full = false
}
