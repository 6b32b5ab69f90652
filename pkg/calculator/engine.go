// Package calculator implements a two-operand integer calculator as a small
// state machine. An Engine holds an accumulator (A), a second operand (B), the
// pending operator and the input focus, and changes them only through four
// events: digit, operator, equals and clear. Every committed transition is
// published on an EventBus so rendering layers can redraw without polling.
package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Focus selects which operand receives digit input.
type Focus int

const (
	First Focus = iota
	Second
)

func (f Focus) String() string {
	if f == Second {
		return "second"
	}
	return "first"
}

// MarshalText encodes the focus by name.
func (f Focus) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes "first" or "second".
func (f *Focus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "first":
		*f = First
	case "second":
		*f = Second
	default:
		return fmt.Errorf("calculator: unknown focus %q", text)
	}
	return nil
}

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	A        int64    `json:"a"`
	B        int64    `json:"b"`
	Operator Operator `json:"operator"`
	Focus    Focus    `json:"focus"`
	Display  int64    `json:"display"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithClearResetsOperator makes Clear also reset the pending operator to Add.
// By default Clear keeps the last selected operator.
func WithClearResetsOperator(v bool) Option {
	return func(e *Engine) { e.clearResetsOperator = v }
}

// WithEventBus publishes transitions on bus instead of a private one.
func WithEventBus(bus *EventBus) Option {
	return func(e *Engine) { e.events = bus }
}

// Engine is the calculator state machine. It is safe for concurrent use;
// every transition is applied as a single update under the engine lock.
type Engine struct {
	mu       sync.Mutex
	a        int64
	b        int64
	operator Operator
	focus    Focus

	clearResetsOperator bool
	events              *EventBus
}

// New creates an Engine in its initial state: A=0, B=0, Add, focus on First.
func New(opts ...Option) *Engine {
	e := &Engine{operator: Add, focus: First}
	for _, opt := range opts {
		opt(e)
	}
	if e.events == nil {
		e.events = NewEventBus()
	}

	return e
}

// Events returns the bus transitions are published on.
func (e *Engine) Events() *EventBus { return e.events }

// PressDigit appends d to the focused operand by textual concatenation, so 7
// then 8 gives 78 and a leading zero collapses. Focus is never changed.
func (e *Engine) PressDigit(d int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pressDigit(d)
}

func (e *Engine) pressDigit(d int) error {
	if d < 0 || d > 9 {
		return e.reject(fmt.Errorf("%w: %d", ErrInvalidDigit, d))
	}

	target := &e.a
	if e.focus == Second {
		target = &e.b
	}

	v, err := strconv.ParseInt(strconv.FormatInt(*target, 10)+strconv.Itoa(d), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return e.reject(fmt.Errorf("%w: appending %d to %d", ErrOverflow, d, *target))
		}
		return e.reject(err)
	}
	*target = v

	e.publish(Event{Kind: EventDigitEntered, Digit: d})

	return nil
}

// PressOperator selects op and moves focus to the second operand. B keeps any
// digits already entered.
func (e *Engine) PressOperator(op Operator) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pressOperator(op)
}

func (e *Engine) pressOperator(op Operator) error {
	if !op.Valid() {
		return e.reject(fmt.Errorf("%w: %d", ErrUnknownOperator, int(op)))
	}

	e.operator = op
	e.focus = Second

	e.publish(Event{Kind: EventOperatorSelected})

	return nil
}

// PressEquals stores apply(op, A, B) into A, zeroes B and returns focus to
// First. On ErrDivisionByZero or ErrOverflow nothing changes.
func (e *Engine) PressEquals() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pressEquals()
}

func (e *Engine) pressEquals() error {
	a, b := e.a, e.b
	result, err := e.operator.Apply(a, b)
	if err != nil {
		return e.reject(err)
	}

	e.a = result
	e.b = 0
	e.focus = First

	e.publish(Event{Kind: EventEvaluated, Left: a, Right: b, Result: result})

	return nil
}

// PressClear zeroes both operands and returns focus to First.
func (e *Engine) PressClear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pressClear()
}

func (e *Engine) pressClear() {
	e.a = 0
	e.b = 0
	e.focus = First
	if e.clearResetsOperator {
		e.operator = Add
	}

	e.publish(Event{Kind: EventCleared})
}

// Display returns the focused operand.
func (e *Engine) Display() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.display()
}

// PendingOperator returns the last selected operator.
func (e *Engine) PendingOperator() Operator {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.operator
}

// Focus returns the operand currently receiving digits.
func (e *Engine) Focus() Focus {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.focus
}

// Snapshot returns a copy of the committed state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot()
}

func (e *Engine) display() int64 {
	if e.focus == Second {
		return e.b
	}
	return e.a
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		A:        e.a,
		B:        e.b,
		Operator: e.operator,
		Focus:    e.focus,
		Display:  e.display(),
	}
}

// publish must be called with e.mu held so events keep transition order.
func (e *Engine) publish(ev Event) {
	ev.Snapshot = e.snapshot()
	ev.Timestamp = time.Now()
	e.events.Publish(ev)
}

func (e *Engine) reject(err error) error {
	e.publish(Event{Kind: EventRejected, Err: err})
	return err
}
