package store

import (
	"context"
	"errors"

	"github.com/ecliptor/intruder-escape-server/internal/score"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    steps INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(steps DESC, created_at ASC);
`

// PostgresStore implements ScoreStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Submit records a finished round.
func (s *PostgresStore) Submit(ctx context.Context, e *score.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scores (id, nickname, steps, created_at)
		 VALUES ($1, $2, $3, $4)`,
		e.ID, e.Nickname, e.Steps, e.CreatedAt)
	return err
}

// Top returns the highest-ranked entries, best first.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]*score.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, nickname, steps, created_at
		 FROM scores ORDER BY steps DESC, created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*score.Entry
	for rows.Next() {
		var e score.Entry
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Steps, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Best returns a player's highest-ranked entry, or nil when the player
// has none.
func (s *PostgresStore) Best(ctx context.Context, nickname string) (*score.Entry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nickname, steps, created_at
		 FROM scores WHERE nickname = $1
		 ORDER BY steps DESC, created_at ASC LIMIT 1`, nickname)

	var e score.Entry
	err := row.Scan(&e.ID, &e.Nickname, &e.Steps, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
