package score

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one finished round on the leaderboard. Steps is the tick
// count the intruder survived before capture.
type Entry struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry creates a leaderboard entry for a captured round.
func NewEntry(nickname string, steps int) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Nickname:  nickname,
		Steps:     steps,
		CreatedAt: time.Now(),
	}
}

// RanksAbove reports whether e sorts before other on the leaderboard.
// Longer survival wins; equal survivals keep the earlier run first.
func (e *Entry) RanksAbove(other *Entry) bool {
	if e.Steps != other.Steps {
		return e.Steps > other.Steps
	}
	return e.CreatedAt.Before(other.CreatedAt)
}
