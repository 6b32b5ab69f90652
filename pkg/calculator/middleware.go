package calculator

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Handler applies actions. It returns the engine state the action left
// behind, which is the unchanged state when err is non-nil.
type Handler interface {
	Handle(ctx context.Context, a Action) (Snapshot, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, a Action) (Snapshot, error)

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, a Action) (Snapshot, error) {
	return f(ctx, a)
}

// Middleware wraps a Handler, returning a new Handler with added behaviour.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. The first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// --- Recovery middleware ---

// Recovery returns a Middleware that catches panics and converts them to
// errors. The snapshot of a panicked action is the zero value.
func Recovery() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, a Action) (snap Snapshot, err error) {
			defer func() {
				if r := recover(); r != nil {
					snap = Snapshot{}
					err = fmt.Errorf("calculator: action %s panicked: %v", a, r)
				}
			}()

			return next.Handle(ctx, a)
		})
	}
}

// --- Logger middleware ---

// Logger returns a Middleware that logs every action with its duration and
// outcome. Rejected input is logged at warn level.
func Logger(log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, a Action) (Snapshot, error) {
			start := time.Now()

			snap, err := next.Handle(ctx, a)

			duration := time.Since(start)

			if err != nil {
				log.WarnContext(ctx, "action rejected",
					"kind", string(a.Kind),
					"key", a.String(),
					"duration", duration,
					"error", err,
				)
			} else {
				log.DebugContext(ctx, "action applied",
					"kind", string(a.Kind),
					"key", a.String(),
					"duration", duration,
				)
			}

			return snap, err
		})
	}
}

// --- Observer middleware ---

// Observe returns a Middleware that reports every action outcome to fn. The
// host bridge uses it to feed metrics.
func Observe(fn func(a Action, err error)) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, a Action) (Snapshot, error) {
			snap, err := next.Handle(ctx, a)
			fn(a, err)
			return snap, err
		})
	}
}
