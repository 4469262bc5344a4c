package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ecliptor/intruder-escape-server/internal/session"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	setup *SetupHandler
	play  *PlayHandler
	sm    *session.Manager
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager) *Router {
	return &Router{
		setup: NewSetupHandler(sm),
		play:  NewPlayHandler(sm),
		sm:    sm,
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	// Join is always allowed
	if msg.Type == ws.TypeJoin {
		r.setup.HandleJoin(cm.Client, msg)
		return
	}

	// Everything else requires a session
	sess := r.sm.Get(cm.Client.ID)
	if sess == nil {
		cm.Client.SendMessage(ws.NewErrorMessage("join required"))
		return
	}

	switch msg.Type {
	// Setup messages
	case ws.TypeNewLayout:
		r.setup.HandleNewLayout(cm.Client, sess, msg)
	case ws.TypePlaceIntruder:
		r.setup.HandlePlaceIntruder(cm.Client, sess, msg)
	case ws.TypeStart:
		r.setup.HandleStart(cm.Client, sess, msg)

	// Play messages
	case ws.TypeMove:
		r.play.HandleMove(cm.Client, sess, msg)
	case ws.TypeStop:
		r.play.HandleStop(cm.Client, sess, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sm.Remove(client.ID)
}
