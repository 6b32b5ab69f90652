package calculator

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// EventKind identifies the transition an Event reports.
type EventKind string

const (
	EventDigitEntered     EventKind = "digit_entered"
	EventOperatorSelected EventKind = "operator_selected"
	EventEvaluated        EventKind = "evaluated"
	EventCleared          EventKind = "cleared"
	EventRejected         EventKind = "rejected"
)

// Event is an immutable notification of an engine transition. Snapshot is the
// state after the transition (or the unchanged state for EventRejected).
type Event struct {
	Kind      EventKind
	Snapshot  Snapshot
	Timestamp time.Time

	// Digit is set for EventDigitEntered.
	Digit int
	// Left, Right and Result are set for EventEvaluated.
	Left   int64
	Right  int64
	Result int64
	// Err is set for EventRejected.
	Err error
}

// Subscription is one observer's view of an EventBus. Events arrive on C in
// transition order; C is closed by Unsubscribe.
type Subscription struct {
	C <-chan Event

	ch      chan Event
	kinds   []EventKind
	dropped atomic.Uint64
}

// Dropped reports how many events were discarded because C was full. A
// renderer that sees this grow should redraw from Engine.Snapshot.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

func (s *Subscription) wants(k EventKind) bool {
	return len(s.kinds) == 0 || slices.Contains(s.kinds, k)
}

// EventBus fans engine transitions out to observers. Publishing never
// blocks: the engine publishes under its own lock and must not wait on a
// slow renderer.
type EventBus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers an observer with a buffer of bufSize events. With kinds
// given, only those kinds are delivered.
func (b *EventBus) Subscribe(bufSize int, kinds ...EventKind) *Subscription {
	ch := make(chan Event, bufSize)
	sub := &Subscription{C: ch, ch: ch, kinds: kinds}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Unsubscribe detaches sub and closes its channel. Calling it twice is safe.
func (b *EventBus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

// Subscribers returns the number of attached observers.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// Publish delivers e to every interested subscriber that has room.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if !sub.wants(e.Kind) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			sub.dropped.Add(1)
		}
	}
}
