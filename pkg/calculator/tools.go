package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/germanamz/abacus/pkg/tools/toolbox"
)

// Tools returns a ToolBox exposing the engine's event API. Tool names are
// {namespace}_digit, {namespace}_operator, {namespace}_equals,
// {namespace}_clear and {namespace}_display. Every tool answers with the JSON
// snapshot after the transition. Actions are dispatched through h so callers
// can wrap the engine with middleware; pass the engine itself for none.
func Tools(e *Engine, h Handler, namespace string) *toolbox.ToolBox {
	if h == nil {
		h = e
	}

	t := &engineTools{engine: e, handler: h}
	tb := toolbox.New()

	tb.Register(
		toolbox.Tool{
			Name:        namespace + "_digit",
			Description: "Append a decimal digit (0-9) to the operand that has input focus.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"digit":{"type":"integer","minimum":0,"maximum":9}},"required":["digit"]}`),
			Handler:     t.handleDigit,
		},
		toolbox.Tool{
			Name:        namespace + "_operator",
			Description: `Select the pending operator ("+", "-", "*" or "/") and move input focus to the second operand.`,
			InputSchema: json.RawMessage(`{"type":"object","properties":{"operator":{"type":"string","enum":["+","-","*","/"]}},"required":["operator"]}`),
			Handler:     t.handleOperator,
		},
		toolbox.Tool{
			Name:        namespace + "_equals",
			Description: "Evaluate A <operator> B into A, reset B to 0 and move focus back to the first operand.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     t.handleEquals,
		},
		toolbox.Tool{
			Name:        namespace + "_clear",
			Description: "Reset both operands to 0 and move focus to the first operand.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     t.handleClear,
		},
		toolbox.Tool{
			Name:        namespace + "_display",
			Description: "Return the current calculator state without changing it.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     t.handleDisplay,
		},
	)

	return tb
}

type engineTools struct {
	engine  *Engine
	handler Handler
}

type digitInput struct {
	Digit *int `json:"digit"`
}

type operatorInput struct {
	Operator string `json:"operator"`
}

func (t *engineTools) handleDigit(ctx context.Context, input json.RawMessage) (string, error) {
	var in digitInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	if in.Digit == nil {
		return "", fmt.Errorf("invalid input: digit is required")
	}

	return t.dispatch(ctx, DigitAction(*in.Digit))
}

func (t *engineTools) handleOperator(ctx context.Context, input json.RawMessage) (string, error) {
	var in operatorInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	op, err := ParseOperator(in.Operator)
	if err != nil {
		return "", err
	}

	return t.dispatch(ctx, OperatorAction(op))
}

func (t *engineTools) handleEquals(ctx context.Context, _ json.RawMessage) (string, error) {
	return t.dispatch(ctx, EqualsAction())
}

func (t *engineTools) handleClear(ctx context.Context, _ json.RawMessage) (string, error) {
	return t.dispatch(ctx, ClearAction())
}

func (t *engineTools) handleDisplay(_ context.Context, _ json.RawMessage) (string, error) {
	return encodeSnapshot(t.engine.Snapshot())
}

func (t *engineTools) dispatch(ctx context.Context, a Action) (string, error) {
	snap, err := t.handler.Handle(ctx, a)
	if err != nil {
		return "", err
	}

	return encodeSnapshot(snap)
}

func encodeSnapshot(s Snapshot) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	return string(b), nil
}
