// Package mcpserver serves a toolbox over the Model Context Protocol so that
// an external host (an editor, an agent, a desktop shell) can drive the
// calculator through tool calls.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/germanamz/abacus/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Option configures a Server.
type Option func(*Server)

// WithInstructions sets the instructions sent to clients on initialize.
func WithInstructions(text string) Option {
	return func(s *Server) { s.instructions = text }
}

// WithLogger logs every tool call to log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// Server exposes toolbox tools through the official MCP Go SDK.
type Server struct {
	sdk          *mcp.Server
	instructions string
	log          *slog.Logger
}

// New creates a Server that identifies itself as name/version.
func New(name, version string, opts ...Option) *Server {
	s := &Server{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	s.sdk = mcp.NewServer(
		&mcp.Implementation{Name: name, Version: version},
		&mcp.ServerOptions{Instructions: s.instructions},
	)

	return s
}

// Register adds tools to the server. A tool registered twice replaces the
// earlier one.
func (s *Server) Register(tools ...toolbox.Tool) {
	for _, t := range tools {
		s.sdk.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.handler(t))
	}
}

// RegisterToolBox adds every tool in tb.
func (s *Server) RegisterToolBox(tb *toolbox.ToolBox) {
	s.Register(tb.Tools()...)
}

// Serve speaks newline-delimited JSON-RPC over in and out until ctx is
// cancelled or the client disconnects. out is never closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.ServeTransport(ctx, &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: unclosable{out},
	})
}

// ServeTransport runs the server on an arbitrary transport.
func (s *Server) ServeTransport(ctx context.Context, t mcp.Transport) error {
	return s.sdk.Run(ctx, t)
}

// handler adapts a tool to the SDK. Tool errors become results with IsError
// set: a rejected key press is an answer for the host, not a protocol fault.
func (s *Server) handler(t toolbox.Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}

		start := time.Now()
		text, err := t.Handler(ctx, args)
		if err != nil {
			s.log.WarnContext(ctx, "tool call failed", "tool", t.Name, "error", err, "duration", time.Since(start))
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		s.log.DebugContext(ctx, "tool call", "tool", t.Name, "duration", time.Since(start))

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

type unclosable struct {
	io.Writer
}

func (unclosable) Close() error { return nil }
