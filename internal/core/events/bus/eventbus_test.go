package bus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	ts := time.Unix(100, 0)
	var got Event
	_, err := b.Subscribe("test.event", func(e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", ts, 123)))
	require.NotNil(t, got)
	assert.Equal(t, "tester", got.Source())
	assert.Equal(t, ts, got.Timestamp())
	assert.Equal(t, 123, got.Data())

	// other types are not delivered
	got = nil
	require.NoError(t, b.Publish(NewEvent("other", "tester", ts, nil)))
	assert.Nil(t, got)
}

func TestDeliveryOrderAndJoinedErrors(t *testing.T) {
	b := New()
	var order []int
	errA, errB := errors.New("a"), errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { order = append(order, 1); return errA })
	_, _ = b.Subscribe("x", func(Event) error { order = append(order, 2); return nil })
	_, _ = b.Subscribe("x", func(Event) error { order = append(order, 3); return errB })

	err := b.Publish(NewEvent("x", "src", time.Time{}, nil))

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe("ev", func(Event) error { count++; return nil })
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, "ev", sub.EventType())
	assert.Equal(t, 1, b.Subscribers("ev"))

	_ = b.Publish(NewEvent("ev", "src", time.Time{}, nil))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Unsubscribe(nil))
	_ = b.Publish(NewEvent("ev", "src", time.Time{}, nil))

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
	assert.Zero(t, b.Subscribers("ev"))
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	_, err := New().Subscribe("ev", nil)
	assert.Error(t, err)
}
