package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/score"
	"github.com/ecliptor/intruder-escape-server/internal/store"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

const (
	// storeTimeout bounds leaderboard reads and writes after a capture.
	storeTimeout = 5 * time.Second
	// leaderboardSize is how many entries go out with a game over.
	leaderboardSize = 5
)

var (
	ErrRoundInProgress = errors.New("round in progress")
	ErrNoRound         = errors.New("no round in progress")
)

// Session ties one connected player to their board and current round.
// Round ticks run on a dedicated goroutine; the mutex covers everything
// the tick loop and the message handlers both touch.
type Session struct {
	ID       string
	Nickname string

	client *ws.Client
	hub    *ws.Hub
	store  store.ScoreStore

	cfg    game.Config
	layout *game.Layout
	round  *game.Round
	tick   time.Duration

	stopCh  chan struct{}
	pending *game.Cell

	mu sync.Mutex
}

// New creates a session for a joined client.
func New(id, nickname string, client *ws.Client, hub *ws.Hub, st store.ScoreStore, cfg game.Config, layout *game.Layout, tick time.Duration) *Session {
	return &Session{
		ID:       id,
		Nickname: nickname,
		client:   client,
		hub:      hub,
		store:    st,
		cfg:      cfg,
		layout:   layout,
		tick:     tick,
	}
}

// Config returns the round configuration in effect.
func (s *Session) Config() game.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Layout returns the current board.
func (s *Session) Layout() *game.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Regenerate replaces the board with a fresh one built from cfg. A zero
// seed draws a random board; any other value reproduces that board.
func (s *Session) Regenerate(cfg game.Config, seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundRunningLocked() {
		return ErrRoundInProgress
	}

	layout, err := game.RandomLayout{Seed: seed}.Layout(cfg)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.layout = layout
	s.round = nil
	return nil
}

// PlaceIntruder sets the intruder start cell, building a fresh round on
// the current board if the previous one already finished.
func (s *Session) PlaceIntruder(c game.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundRunningLocked() {
		return ErrRoundInProgress
	}
	if s.round == nil || s.round.Phase() != game.PhaseIdle {
		s.round = game.NewRound(s.layout, s.cfg.Schedule())
	}
	return s.round.PlaceIntruder(c)
}

// StartRound starts the prepared round and its tick loop.
func (s *Session) StartRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundRunningLocked() {
		return ErrRoundInProgress
	}
	if s.round == nil {
		return game.ErrIntruderNotPlaced
	}
	if err := s.round.Start(); err != nil {
		return err
	}

	s.pending = nil
	s.stopCh = make(chan struct{})
	go s.loop(s.round, s.stopCh)

	slog.Info("round started", "session", s.ID, "nickname", s.Nickname, "seed", s.layout.Seed)
	return nil
}

// Move queues an intruder step for the next tick. Only the latest move
// within a tick counts; walkability is settled when the tick applies it.
func (s *Session) Move(d game.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roundRunningLocked() {
		return ErrNoRound
	}
	target := s.round.Intruder().Step(d)
	s.pending = &target
	return nil
}

// StopRound abandons the current round. The score is discarded.
func (s *Session) StopRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil {
		return
	}
	s.round.Stop()
	s.closeLoopLocked()
}

// SendState pushes a round state snapshot to the session's client.
func (s *Session) SendState() {
	s.mu.Lock()
	if s.round == nil {
		s.mu.Unlock()
		return
	}
	state := s.stateLocked()
	s.mu.Unlock()

	msg, err := ws.NewMessage(ws.TypeRoundState, state)
	if err != nil {
		slog.Error("failed to build round state", "session", s.ID, "error", err)
		return
	}
	s.client.SendMessage(msg)
}

// Close stops any running round. Called when the client disconnects.
func (s *Session) Close() {
	s.StopRound()
}

// roundRunningLocked reports whether a round is ticking. Caller must
// hold s.mu.
func (s *Session) roundRunningLocked() bool {
	return s.round != nil && s.round.Phase() == game.PhaseRunning
}

// closeLoopLocked signals the tick loop to exit. Caller must hold s.mu.
func (s *Session) closeLoopLocked() {
	if s.stopCh == nil {
		return
	}
	select {
	case <-s.stopCh:
		// Already closed
	default:
		close(s.stopCh)
	}
}

// stateLocked builds a snapshot of the current round. Caller must hold
// s.mu with a non-nil round.
func (s *Session) stateLocked() roundStateMessage {
	r := s.round
	state := roundStateMessage{
		Phase:    r.Phase(),
		Clock:    r.Clock(),
		Speed:    r.Speed(),
		Pursuers: r.PursuerCells(),
	}
	if r.IntruderPlaced() {
		c := r.Intruder()
		state.Intruder = &c
	}
	if r.Phase() == game.PhaseCaptured {
		captor := r.CapturedBy()
		state.CapturedBy = &captor
	}
	return state
}

// loop drives the round at the session's tick interval until it stops
// or the intruder is caught.
func (s *Session) loop(r *game.Round, stopCh chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			if r.Phase() != game.PhaseRunning {
				s.mu.Unlock()
				return
			}
			intent := s.pending
			s.pending = nil
			phase := r.Tick(intent)
			state := s.stateLocked()
			s.mu.Unlock()

			if msg, err := ws.NewMessage(ws.TypeRoundState, state); err == nil {
				s.client.SendMessage(msg)
			}

			if phase == game.PhaseCaptured {
				s.finishCapture(r)
				return
			}
		}
	}
}

// finishCapture records the score and reports the outcome. The round is
// terminal by now, so it is safe to read without the lock.
func (s *Session) finishCapture(r *game.Round) {
	steps := r.Score()
	slog.Info("intruder captured",
		"session", s.ID, "nickname", s.Nickname, "steps", steps, "pursuer", r.CapturedBy())

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	best := steps
	if prev, err := s.store.Best(ctx, s.Nickname); err != nil {
		slog.Error("failed to load best score", "session", s.ID, "error", err)
	} else if prev != nil && prev.Steps > best {
		best = prev.Steps
	}

	entry := score.NewEntry(s.Nickname, steps)
	if err := s.store.Submit(ctx, entry); err != nil {
		slog.Error("failed to submit score", "session", s.ID, "error", err)
	}

	top, err := s.store.Top(ctx, leaderboardSize)
	if err != nil {
		slog.Error("failed to load leaderboard", "session", s.ID, "error", err)
	}
	if top == nil {
		top = []*score.Entry{}
	}

	if msg, err := ws.NewMessage(ws.TypeGameOver, gameOverMessage{
		Score:       steps,
		Best:        best,
		Leaderboard: top,
	}); err == nil {
		s.client.SendMessage(msg)
	}

	// A run that cracked the top list is news for everyone.
	for _, e := range top {
		if e.ID != entry.ID {
			continue
		}
		msg, err := ws.NewMessage(ws.TypeLeaderboard, leaderboardMessage{Entries: top})
		if err != nil {
			break
		}
		data, err := json.Marshal(msg)
		if err != nil {
			break
		}
		s.hub.Broadcast(data)
		slog.Info("leaderboard entry", "session", s.ID, "nickname", s.Nickname, "steps", steps)
		break
	}
}

type roundStateMessage struct {
	Phase      game.Phase  `json:"phase"`
	Clock      int         `json:"clock"`
	Speed      float64     `json:"speed"`
	Intruder   *game.Cell  `json:"intruder,omitempty"`
	Pursuers   []game.Cell `json:"pursuers"`
	CapturedBy *int        `json:"captured_by,omitempty"`
}

type gameOverMessage struct {
	Score       int            `json:"score"`
	Best        int            `json:"best"`
	Leaderboard []*score.Entry `json:"leaderboard"`
}

type leaderboardMessage struct {
	Entries []*score.Entry `json:"entries"`
}
