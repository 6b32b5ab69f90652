package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(4)
	defer bus.Unsubscribe(sub)

	bus.Publish(Event{Kind: EventCleared})

	assert.Equal(t, EventCleared, nextEvent(t, sub).Kind)
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(1)
	defer bus.Unsubscribe(sub)

	bus.Publish(Event{Kind: EventCleared})
	bus.Publish(Event{Kind: EventEvaluated})
	bus.Publish(Event{Kind: EventEvaluated})

	assert.Equal(t, EventCleared, nextEvent(t, sub).Kind)
	select {
	case ev := <-sub.C:
		t.Fatalf("unexpected event %s", ev.Kind)
	default:
	}
	assert.Equal(t, uint64(2), sub.Dropped())
}

func TestEventBusKindFilter(t *testing.T) {
	bus := NewEventBus()
	results := bus.Subscribe(4, EventEvaluated, EventRejected)
	defer bus.Unsubscribe(results)

	bus.Publish(Event{Kind: EventDigitEntered})
	bus.Publish(Event{Kind: EventOperatorSelected})
	bus.Publish(Event{Kind: EventEvaluated})
	bus.Publish(Event{Kind: EventCleared})
	bus.Publish(Event{Kind: EventRejected})

	assert.Equal(t, EventEvaluated, nextEvent(t, results).Kind)
	assert.Equal(t, EventRejected, nextEvent(t, results).Kind)
	assert.Empty(t, results.C)
	assert.Zero(t, results.Dropped(), "filtered events are not drops")
}

func TestEventBusSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.Equal(t, 0, bus.Subscribers())

	a := bus.Subscribe(1)
	b := bus.Subscribe(1)
	assert.Equal(t, 2, bus.Subscribers())

	bus.Unsubscribe(a)
	bus.Unsubscribe(b)
	assert.Equal(t, 0, bus.Subscribers())
}

func TestEventBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(1)

	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)

	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestEngineEvents(t *testing.T) {
	e := New()
	sub := e.Events().Subscribe(16)
	defer e.Events().Unsubscribe(sub)

	require.NoError(t, e.PressDigit(6))
	ev := nextEvent(t, sub)
	assert.Equal(t, EventDigitEntered, ev.Kind)
	assert.Equal(t, 6, ev.Digit)
	assert.Equal(t, int64(6), ev.Snapshot.Display)
	assert.False(t, ev.Timestamp.IsZero())

	require.NoError(t, e.PressOperator(Multiply))
	ev = nextEvent(t, sub)
	assert.Equal(t, EventOperatorSelected, ev.Kind)
	assert.Equal(t, Multiply, ev.Snapshot.Operator)
	assert.Equal(t, Second, ev.Snapshot.Focus)

	require.NoError(t, e.PressDigit(7))
	nextEvent(t, sub)

	require.NoError(t, e.PressEquals())
	ev = nextEvent(t, sub)
	assert.Equal(t, EventEvaluated, ev.Kind)
	assert.Equal(t, int64(6), ev.Left)
	assert.Equal(t, int64(7), ev.Right)
	assert.Equal(t, int64(42), ev.Result)
	assert.Equal(t, int64(42), ev.Snapshot.A)

	e.PressClear()
	assert.Equal(t, EventCleared, nextEvent(t, sub).Kind)
}

func TestEngineRejectedEvent(t *testing.T) {
	e := New()
	sub := e.Events().Subscribe(4)
	defer e.Events().Unsubscribe(sub)

	require.NoError(t, e.PressOperator(Divide))
	nextEvent(t, sub)

	require.Error(t, e.PressEquals())
	ev := nextEvent(t, sub)
	assert.Equal(t, EventRejected, ev.Kind)
	assert.ErrorIs(t, ev.Err, ErrDivisionByZero)
	assert.Equal(t, Divide, ev.Snapshot.Operator)
}

func TestWithEventBusSharesBus(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(1)
	defer bus.Unsubscribe(sub)

	e := New(WithEventBus(bus))
	e.PressClear()

	assert.Same(t, bus, e.Events())
	assert.Equal(t, EventCleared, nextEvent(t, sub).Kind)
}
