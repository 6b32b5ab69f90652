package hostbridge

import (
	"context"
	"net/http"

	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/gin-gonic/gin"
)

// ActionRequest carries one key token, e.g. "7", "+", "=" or "AC".
type ActionRequest struct {
	Token string `json:"token"`
}

// Message is the JSON payload sent to clients.
type Message struct {
	Type     string              `json:"type"`           // state, result or event.
	Kind     string              `json:"kind,omitempty"` // Event kind for type=event.
	Snapshot calculator.Snapshot `json:"snapshot"`
	Error    string              `json:"error,omitempty"`
}

const (
	messageState  = "state"
	messageResult = "result"
	messageEvent  = "event"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, Message{Type: messageState, Snapshot: s.engine.Snapshot()})
}

func (s *Server) tapeEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.tape.Entries()})
}

func (s *Server) action(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Message{
			Type:     messageResult,
			Snapshot: s.engine.Snapshot(),
			Error:    "invalid request: " + err.Error(),
		})
		return
	}

	msg, ok := s.apply(c.Request.Context(), req.Token)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, msg)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// apply parses and dispatches token. It reports false when the token was
// unknown or the engine rejected the action. The snapshot of a dispatched
// action is the state that action left behind.
func (s *Server) apply(ctx context.Context, token string) (Message, bool) {
	a, err := calculator.ParseAction(token)
	if err != nil {
		s.metrics.actions.WithLabelValues("unknown", resultRejected).Inc()
		return Message{Type: messageResult, Snapshot: s.engine.Snapshot(), Error: err.Error()}, false
	}

	snap, err := s.handler.Handle(ctx, a)

	msg := Message{Type: messageResult, Snapshot: snap}
	if err != nil {
		msg.Error = err.Error()
		return msg, false
	}

	return msg, true
}

func eventMessage(ev calculator.Event) Message {
	msg := Message{Type: messageEvent, Kind: string(ev.Kind), Snapshot: ev.Snapshot}
	if ev.Err != nil {
		msg.Error = ev.Err.Error()
	}
	return msg
}
