package calculator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		token string
		want  Action
	}{
		{"0", DigitAction(0)},
		{"7", DigitAction(7)},
		{" 9 ", DigitAction(9)},
		{"+", OperatorAction(Add)},
		{"-", OperatorAction(Subtract)},
		{"*", OperatorAction(Multiply)},
		{"x", OperatorAction(Multiply)},
		{"/", OperatorAction(Divide)},
		{"=", EqualsAction()},
		{"enter", EqualsAction()},
		{"c", ClearAction()},
		{"AC", ClearAction()},
		{"esc", ClearAction()},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.token)
		require.NoError(t, err, "token %q", tt.token)
		assert.Equal(t, tt.want, got, "token %q", tt.token)
	}
}

func TestParseActionUnknown(t *testing.T) {
	for _, token := range []string{"", "12", "%", "sqrt"} {
		_, err := ParseAction(token)
		assert.ErrorIs(t, err, ErrUnknownAction, "token %q", token)
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "4", DigitAction(4).String())
	assert.Equal(t, "/", OperatorAction(Divide).String())
	assert.Equal(t, "=", EqualsAction().String())
	assert.Equal(t, "AC", ClearAction().String())
}

func TestEngineHandle(t *testing.T) {
	e := New()
	ctx := context.Background()

	for _, token := range []string{"7", "8", "9", "+", "4", "5", "6", "="} {
		a, err := ParseAction(token)
		require.NoError(t, err)
		_, err = e.Handle(ctx, a)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1245), e.Display())

	snap, err := e.Handle(ctx, ClearAction())
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Display)
}

func TestEngineHandleReturnsStateOfItsOwnUpdate(t *testing.T) {
	e := New()
	ctx := context.Background()

	snap, err := e.Handle(ctx, DigitAction(5))
	require.NoError(t, err)
	assert.Equal(t, Snapshot{A: 5, Operator: Add, Focus: First, Display: 5}, snap)

	_, err = e.Handle(ctx, OperatorAction(Divide))
	require.NoError(t, err)

	rejected, err := e.Handle(ctx, EqualsAction())
	require.ErrorIs(t, err, ErrDivisionByZero)

	// A later writer does not leak into the rejected action's snapshot.
	require.NoError(t, e.PressDigit(3))

	assert.Equal(t, Snapshot{A: 5, B: 0, Operator: Divide, Focus: Second, Display: 0}, rejected)
	assert.Equal(t, int64(3), e.Display())
}

func TestEngineHandleConcurrentSnapshots(t *testing.T) {
	e := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				// Every accepted digit leaves a display made only of ones,
				// and the snapshot must agree with its own update.
				snap, err := e.Handle(ctx, DigitAction(1))
				if err != nil {
					_, _ = e.Handle(ctx, ClearAction())
					continue
				}
				assert.Equal(t, snap.A, snap.Display)
				assert.NotZero(t, snap.Display)
			}
		})
	}
	wg.Wait()
}

func TestEngineHandleUnknownKind(t *testing.T) {
	e := New()

	snap, err := e.Handle(context.Background(), Action{Kind: "sqrt"})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, e.Snapshot(), snap)
}
