package calculator

import (
	"fmt"
	"math"
)

// Operator is an arithmetic operation applied at evaluation time.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

// Operators returns all operators in keypad order.
func Operators() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide}
}

// Valid reports whether op is one of the four known operators.
func (op Operator) Valid() bool {
	return op >= Add && op <= Divide
}

// Symbol returns the display symbol for op.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "?"
	}
}

func (op Operator) String() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return fmt.Sprintf("operator(%d)", int(op))
	}
}

// MarshalText encodes the operator as its symbol.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}
	return []byte(op.Symbol()), nil
}

// UnmarshalText accepts anything ParseOperator does.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// ParseOperator accepts either a symbol ("+") or a name ("add").
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+", "add", "plus":
		return Add, nil
	case "-", "subtract", "minus":
		return Subtract, nil
	case "*", "x", "multiply", "mul":
		return Multiply, nil
	case "/", "divide", "div":
		return Divide, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Apply computes a op b. Division truncates toward zero. Results that do not
// fit in an int64 are rejected with ErrOverflow.
func (op Operator) Apply(a, b int64) (int64, error) {
	switch op {
	case Add:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
		}
		return a + b, nil

	case Subtract:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
		}
		return a - b, nil

	case Multiply:
		if a == 0 || b == 0 {
			return 0, nil
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
		}
		return r, nil

	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		if a == math.MinInt64 && b == -1 {
			return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, a, b)
		}
		return a / b, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
}
