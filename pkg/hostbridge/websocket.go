package hostbridge

import (
	"context"
	"errors"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

// serveWS speaks a small JSON protocol: the client sends ActionRequest
// values; the server answers each with a result Message and pushes an event
// Message for every engine transition, whichever client caused it. The first
// message on a new connection is the current state.
func (s *Server) serveWS(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WarnContext(c.Request.Context(), "websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := s.engine.Events().Subscribe(64)
	defer s.engine.Events().Unsubscribe(sub)

	s.metrics.clients.Inc()
	defer s.metrics.clients.Dec()

	requests := make(chan ActionRequest)
	readErr := make(chan error, 1)
	go func() {
		for {
			var req ActionRequest
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				readErr <- err
				return
			}
			select {
			case requests <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := wsjson.Write(ctx, conn, Message{Type: messageState, Snapshot: s.engine.Snapshot()}); err != nil {
		return
	}

	var dropped uint64
	for {
		var msg Message

		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case err := <-readErr:
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				s.log.DebugContext(ctx, "websocket read failed", "error", err)
			}
			return
		case req := <-requests:
			msg, _ = s.apply(ctx, req.Token)
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			msg = eventMessage(ev)
			// Events were lost while the client was slow: resync it.
			if d := sub.Dropped(); d != dropped {
				dropped = d
				msg = Message{Type: messageState, Snapshot: s.engine.Snapshot()}
			}
		}

		if err := wsjson.Write(ctx, conn, msg); err != nil {
			s.log.DebugContext(ctx, "websocket write failed", "error", err)
			return
		}
	}
}
