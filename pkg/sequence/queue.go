package sequence

import "container/heap"

type queueItem[T any] struct {
	value    T
	priority int64
	seq      uint64
}

type items[T any] []queueItem[T]

func (q items[T]) Len() int { return len(q) }

func (q items[T]) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q items[T]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *items[T]) Push(x any) { *q = append(*q, x.(queueItem[T])) }

func (q *items[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = queueItem[T]{}
	*q = old[:n-1]
	return item
}

// PriorityQueue pops the lowest priority first. Equal priorities pop in
// insertion order. Not safe for concurrent use.
type PriorityQueue[T any] struct {
	items items[T]
	seq   uint64
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

func (pq *PriorityQueue[T]) Enqueue(value T, priority int64) {
	heap.Push(&pq.items, queueItem[T]{value: value, priority: priority, seq: pq.seq})
	pq.seq++
}

func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&pq.items).(queueItem[T]).value, true
}

// Peek returns the next value and its priority without removing it.
func (pq *PriorityQueue[T]) Peek() (T, int64, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, 0, false
	}
	return pq.items[0].value, pq.items[0].priority, true
}

// PopUntil removes and returns, in order, every value whose priority is at
// most limit.
func (pq *PriorityQueue[T]) PopUntil(limit int64) []T {
	var out []T
	for len(pq.items) > 0 && pq.items[0].priority <= limit {
		out = append(out, heap.Pop(&pq.items).(queueItem[T]).value)
	}
	return out
}

func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

func (pq *PriorityQueue[T]) IsEmpty() bool { return len(pq.items) == 0 }
