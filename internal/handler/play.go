package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/session"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

// PlayHandler handles messages for a running round.
type PlayHandler struct {
	sm *session.Manager
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(sm *session.Manager) *PlayHandler {
	return &PlayHandler{sm: sm}
}

type moveRequest struct {
	Direction string `json:"direction"`
}

// HandleMove queues an intruder step for the next tick.
func (h *PlayHandler) HandleMove(client *ws.Client, sess *session.Session, msg ws.Message) {
	var req moveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid move data"))
		return
	}

	dir, ok := game.ParseDirection(req.Direction)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("unknown direction: " + req.Direction))
		return
	}

	if err := sess.Move(dir); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}

// HandleStop abandons the running round. The score is discarded.
func (h *PlayHandler) HandleStop(client *ws.Client, sess *session.Session, msg ws.Message) {
	sess.StopRound()
	sess.SendState()

	slog.Info("round stopped", "session", sess.ID, "nickname", sess.Nickname)
}
