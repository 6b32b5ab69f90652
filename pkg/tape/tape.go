// Package tape keeps a bounded, in-memory paper tape of evaluations, the
// running record a desk calculator prints as each result is committed.
package tape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/germanamz/abacus/pkg/calculator"
)

// Entry is one committed evaluation.
type Entry struct {
	Left     int64               `json:"left"`
	Operator calculator.Operator `json:"operator"`
	Right    int64               `json:"right"`
	Result   int64               `json:"result"`
	Time     time.Time           `json:"time"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s %d = %d", e.Left, e.Operator.Symbol(), e.Right, e.Result)
}

// FromEvent converts an evaluated event into an Entry. It reports false for
// any other event kind.
func FromEvent(ev calculator.Event) (Entry, bool) {
	if ev.Kind != calculator.EventEvaluated {
		return Entry{}, false
	}

	return Entry{
		Left:     ev.Left,
		Operator: ev.Snapshot.Operator,
		Right:    ev.Right,
		Result:   ev.Result,
		Time:     ev.Timestamp,
	}, true
}

// Tape is a fixed-size ring of entries. It is safe for concurrent use.
type Tape struct {
	mu      sync.RWMutex
	entries []Entry
	start   int
	count   int
}

// New creates a tape holding at most size entries. A size below one yields a
// tape that records nothing.
func New(size int) *Tape {
	return &Tape{entries: make([]Entry, max(size, 0))}
}

// Cap returns the maximum number of entries kept.
func (t *Tape) Cap() int { return len(t.entries) }

// Add appends e, evicting the oldest entry when full.
func (t *Tape) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := len(t.entries)
	if size == 0 {
		return
	}

	if t.count < size {
		t.entries[(t.start+t.count)%size] = e
		t.count++
		return
	}

	t.entries[t.start] = e
	t.start = (t.start + 1) % size
}

// Entries returns a copy of the entries, oldest first.
func (t *Tape) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, t.count)
	for i := range t.count {
		out[i] = t.entries[(t.start+i)%len(t.entries)]
	}

	return out
}

// Len returns the number of entries held.
func (t *Tape) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.count
}

// Reset drops all entries.
func (t *Tape) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = 0
	t.count = 0
}

// Follow records every evaluated event from sub until ctx is done or the
// subscription is closed.
func (t *Tape) Follow(ctx context.Context, sub *calculator.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if e, ok := FromEvent(ev); ok {
				t.Add(e)
			}
		}
	}
}
