package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryKeepsNewestRecords(t *testing.T) {
	h := NewHistory(3)
	_, ok := h.Last()
	assert.False(t, ok)

	for i := uint64(1); i <= 5; i++ {
		h.Append(DecisionRecord{Tick: i})
	}

	assert.Equal(t, 3, h.Len())
	ticks := make([]uint64, 0, 3)
	for _, r := range h.Records() {
		ticks = append(ticks, r.Tick)
	}
	assert.Equal(t, []uint64{3, 4, 5}, ticks)

	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), last.Tick)

	h.Reset()
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Records())
}

func TestHistoryDefaultSize(t *testing.T) {
	h := NewHistory(0)
	h.Append(DecisionRecord{Tick: 7})
	assert.Equal(t, []DecisionRecord{{Tick: 7}}, h.Records())

	for i := uint64(0); i < 2*defaultHistorySize; i++ {
		h.Append(DecisionRecord{Tick: i})
	}
	assert.Equal(t, defaultHistorySize, h.Len())
}
