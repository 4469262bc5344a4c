package store

import (
	"context"

	"github.com/ecliptor/intruder-escape-server/internal/score"
)

// ScoreStore defines the interface for persistent leaderboard storage.
type ScoreStore interface {
	// Submit records a finished round.
	Submit(ctx context.Context, e *score.Entry) error
	// Top returns the highest-ranked entries, best first.
	Top(ctx context.Context, limit int) ([]*score.Entry, error)
	// Best returns a player's highest-ranked entry, or nil when the
	// player has none.
	Best(ctx context.Context, nickname string) (*score.Entry, error)
	// Close releases storage resources.
	Close() error
}
