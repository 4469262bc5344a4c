package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/session"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

// SetupHandler handles board and round preparation messages.
type SetupHandler struct {
	sm *session.Manager
}

// NewSetupHandler creates a new setup handler.
func NewSetupHandler(sm *session.Manager) *SetupHandler {
	return &SetupHandler{sm: sm}
}

type joinRequest struct {
	Nickname string `json:"nickname"`
}

type joinedResponse struct {
	SessionID string      `json:"session_id"`
	Config    game.Config `json:"config"`
}

// HandleJoin creates a session for the client and sends the first board.
func (h *SetupHandler) HandleJoin(client *ws.Client, msg ws.Message) {
	var req joinRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}

	if h.sm.Get(client.ID) != nil {
		client.SendMessage(ws.NewErrorMessage("already joined"))
		return
	}

	sess, err := h.sm.Create(client, req.Nickname)
	if err != nil {
		slog.Error("failed to create session", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("internal error"))
		return
	}

	resp, _ := ws.NewMessage(ws.TypeJoined, joinedResponse{
		SessionID: sess.ID,
		Config:    sess.Config(),
	})
	client.SendMessage(resp)

	h.sendLayout(client, sess)

	slog.Info("player joined", "nickname", req.Nickname, "session", sess.ID)
}

type newLayoutRequest struct {
	Rows           *int     `json:"rows,omitempty"`
	Cols           *int     `json:"cols,omitempty"`
	ObstacleCount  *int     `json:"obstacle_count,omitempty"`
	PursuerCount   *int     `json:"pursuer_count,omitempty"`
	BaseSpeed      *float64 `json:"base_speed,omitempty"`
	SpeedIncrement *float64 `json:"speed_increment,omitempty"`
	SpeedInterval  *int     `json:"speed_interval,omitempty"`
	Seed           int64    `json:"seed,omitempty"`
}

// HandleNewLayout regenerates the board. Absent fields keep their
// current values; a non-zero seed reproduces a specific board.
func (h *SetupHandler) HandleNewLayout(client *ws.Client, sess *session.Session, msg ws.Message) {
	var req newLayoutRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid layout request"))
			return
		}
	}

	cfg := sess.Config()
	if req.Rows != nil {
		cfg.Rows = *req.Rows
	}
	if req.Cols != nil {
		cfg.Cols = *req.Cols
	}
	if req.ObstacleCount != nil {
		cfg.ObstacleCount = *req.ObstacleCount
	}
	if req.PursuerCount != nil {
		cfg.PursuerCount = *req.PursuerCount
	}
	if req.BaseSpeed != nil {
		cfg.BaseSpeed = *req.BaseSpeed
	}
	if req.SpeedIncrement != nil {
		cfg.SpeedIncrement = *req.SpeedIncrement
	}
	if req.SpeedInterval != nil {
		cfg.SpeedInterval = *req.SpeedInterval
	}

	if err := sess.Regenerate(cfg, req.Seed); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	h.sendLayout(client, sess)
}

type placeIntruderRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HandlePlaceIntruder sets the intruder start cell.
func (h *SetupHandler) HandlePlaceIntruder(client *ws.Client, sess *session.Session, msg ws.Message) {
	var req placeIntruderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid placement data"))
		return
	}

	if err := sess.PlaceIntruder(game.Cell{Row: req.Row, Col: req.Col}); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	sess.SendState()
}

// HandleStart starts the prepared round.
func (h *SetupHandler) HandleStart(client *ws.Client, sess *session.Session, msg ws.Message) {
	if err := sess.StartRound(); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	sess.SendState()
}

type layoutResponse struct {
	Rows     int         `json:"rows"`
	Cols     int         `json:"cols"`
	Blocked  []game.Cell `json:"blocked"`
	Pursuers []game.Cell `json:"pursuers"`
	Intruder *game.Cell  `json:"intruder,omitempty"`
	Seed     int64       `json:"seed"`
}

func (h *SetupHandler) sendLayout(client *ws.Client, sess *session.Session) {
	l := sess.Layout()
	resp, _ := ws.NewMessage(ws.TypeLayout, layoutResponse{
		Rows:     l.Grid.Rows(),
		Cols:     l.Grid.Cols(),
		Blocked:  l.Grid.BlockedCells(),
		Pursuers: l.Pursuers,
		Intruder: l.Intruder,
		Seed:     l.Seed,
	})
	client.SendMessage(resp)
}
