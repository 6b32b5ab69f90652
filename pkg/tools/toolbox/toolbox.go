// Package toolbox holds named tools with JSON Schema inputs and text results,
// the shape in which calculator operations are handed to external hosts.
package toolbox

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrToolNotFound is returned by Call for unregistered tool names.
var ErrToolNotFound = errors.New("toolbox: tool not found")

// Handler runs a tool with its JSON input and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is a named operation. InputSchema is a JSON Schema object.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ToolBox is a set of tools keyed by name. It is safe for concurrent use.
type ToolBox struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func New() *ToolBox {
	return &ToolBox{tools: make(map[string]Tool)}
}

// Register adds tools, replacing any with the same name.
func (tb *ToolBox) Register(tools ...Tool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

func (tb *ToolBox) Get(name string) (Tool, bool) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns the registered tools ordered by name.
func (tb *ToolBox) Tools() []Tool {
	tb.mu.RLock()
	out := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		out = append(out, t)
	}
	tb.mu.RUnlock()

	slices.SortFunc(out, func(a, b Tool) int { return cmp.Compare(a.Name, b.Name) })

	return out
}

// Call runs the named tool. Empty args are sent as {}.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := tb.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	return t.Handler(ctx, args)
}
