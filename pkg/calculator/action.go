package calculator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAction is returned by ParseAction for tokens that map to no key.
var ErrUnknownAction = errors.New("calculator: unknown action")

// ActionKind names one of the four input events.
type ActionKind string

const (
	ActionDigit    ActionKind = "digit"
	ActionOperator ActionKind = "operator"
	ActionEquals   ActionKind = "equals"
	ActionClear    ActionKind = "clear"
)

// Action is a single input event addressed to an Engine.
type Action struct {
	Kind     ActionKind
	Digit    int
	Operator Operator
}

// DigitAction returns the action for pressing digit d.
func DigitAction(d int) Action { return Action{Kind: ActionDigit, Digit: d} }

// OperatorAction returns the action for selecting op.
func OperatorAction(op Operator) Action { return Action{Kind: ActionOperator, Operator: op} }

// EqualsAction returns the evaluate action.
func EqualsAction() Action { return Action{Kind: ActionEquals} }

// ClearAction returns the reset action.
func ClearAction() Action { return Action{Kind: ActionClear} }

func (a Action) String() string {
	switch a.Kind {
	case ActionDigit:
		return strconv.Itoa(a.Digit)
	case ActionOperator:
		return a.Operator.Symbol()
	case ActionEquals:
		return "="
	case ActionClear:
		return "AC"
	default:
		return string(a.Kind)
	}
}

// ParseAction maps a key token to an action. Accepted tokens are single
// digits, operator symbols, "=" or "enter" for equals, and "c", "ac", "esc"
// or "clear" for clear (case-insensitive).
func ParseAction(token string) (Action, error) {
	t := strings.ToLower(strings.TrimSpace(token))

	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return DigitAction(int(t[0] - '0')), nil
	}

	switch t {
	case "=", "enter", "equals":
		return EqualsAction(), nil
	case "c", "ac", "esc", "clear":
		return ClearAction(), nil
	}

	if op, err := ParseOperator(t); err == nil {
		return OperatorAction(op), nil
	}

	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, token)
}

// Handle applies a to the engine and returns the state it left behind. The
// transition and the returned snapshot come from the same locked update, so
// a rejected action reports the unchanged state even when other callers share
// the engine. Handle makes Engine a Handler so dispatch can be wrapped with
// middleware.
func (e *Engine) Handle(_ context.Context, a Action) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error

	switch a.Kind {
	case ActionDigit:
		err = e.pressDigit(a.Digit)
	case ActionOperator:
		err = e.pressOperator(a.Operator)
	case ActionEquals:
		err = e.pressEquals()
	case ActionClear:
		e.pressClear()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	return e.snapshot(), err
}
