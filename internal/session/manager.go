package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/store"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

// Manager tracks the session of every connected client.
type Manager struct {
	hub   *ws.Hub
	store store.ScoreStore
	cfg   game.Config
	tick  time.Duration

	sessions map[string]*Session // client ID -> session
	mu       sync.RWMutex
}

// NewManager creates a session manager. cfg is the board every new
// session starts with; tick is the round tick interval.
func NewManager(hub *ws.Hub, st store.ScoreStore, cfg game.Config, tick time.Duration) *Manager {
	return &Manager{
		hub:      hub,
		store:    st,
		cfg:      cfg,
		tick:     tick,
		sessions: make(map[string]*Session),
	}
}

// Create builds a session with a freshly generated board and registers
// it under the client's ID.
func (m *Manager) Create(client *ws.Client, nickname string) (*Session, error) {
	layout, err := game.RandomLayout{}.Layout(m.cfg)
	if err != nil {
		return nil, err
	}

	s := New(uuid.New().String(), nickname, client, m.hub, m.store, m.cfg, layout, m.tick)

	m.mu.Lock()
	m.sessions[client.ID] = s
	m.mu.Unlock()

	slog.Info("session created", "session", s.ID, "client", client.ID, "nickname", nickname)
	return s, nil
}

// Get returns the session for a client ID, or nil.
func (m *Manager) Get(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[clientID]
}

// Remove drops a client's session and stops any round it was running.
func (m *Manager) Remove(clientID string) {
	m.mu.Lock()
	s := m.sessions[clientID]
	delete(m.sessions, clientID)
	m.mu.Unlock()

	if s == nil {
		return
	}
	s.Close()
	slog.Info("session removed", "session", s.ID, "client", clientID)
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
