// Package hostbridge lets an external shell (a webview, a browser page, a
// script) drive a calculator engine over HTTP and websockets. All connected
// clients share one engine; every transition is pushed to every websocket.
package hostbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/tape"
	"github.com/gin-gonic/gin"
)

// Server exposes one engine through gin routes.
type Server struct {
	engine  *calculator.Engine
	handler calculator.Handler
	log     *slog.Logger
	metrics *metrics
	tape    *tape.Tape
	router  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithTape serves t's entries on GET /tape. The caller keeps t filled,
// usually with Tape.Follow.
func WithTape(t *tape.Tape) Option {
	return func(s *Server) { s.tape = t }
}

// New creates a Server for eng. Actions are dispatched through the recovery,
// logging and metrics middleware.
func New(eng *calculator.Engine, log *slog.Logger, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:  eng,
		log:     log,
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = calculator.Chain(eng,
		calculator.Recovery(),
		calculator.Logger(log),
		calculator.Observe(s.metrics.observeAction),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger)
	r.Use(s.metrics.middleware)

	r.GET("/healthz", s.health)
	r.GET("/state", s.state)
	r.POST("/action", s.action)
	r.GET("/ws", s.serveWS)
	if s.tape != nil {
		r.GET("/tape", s.tapeEntries)
	}
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))

	s.router = r

	return s
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on addr and blocks until ctx is cancelled, then shuts down
// gracefully. Websocket connections are closed through the request context.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("hostbridge: listen: %w", err)
	}

	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.log.InfoContext(ctx, "host bridge listening", "addr", ln.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("hostbridge: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("hostbridge: shutdown: %w", err)
	}

	return nil
}

// requestLogger logs every request: method, path, status and latency.
func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	s.log.DebugContext(c.Request.Context(), "request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"ip", c.ClientIP(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
}
