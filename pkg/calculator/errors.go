package calculator

import "errors"

var (
	// ErrInvalidDigit is returned when a digit outside 0-9 is pressed.
	ErrInvalidDigit = errors.New("calculator: invalid digit")
	// ErrDivisionByZero is returned when evaluating a division by zero.
	ErrDivisionByZero = errors.New("calculator: division by zero")
	// ErrOverflow is returned when digit entry or evaluation leaves the int64 range.
	ErrOverflow = errors.New("calculator: numeric overflow")
	// ErrUnknownOperator is returned for operator values outside the known set.
	ErrUnknownOperator = errors.New("calculator: unknown operator")
)
