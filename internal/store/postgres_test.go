package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecliptor/intruder-escape-server/internal/score"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up scores table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM scores")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore_SubmitAndTop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Submit(ctx, score.NewEntry("kim", 30)))
	require.NoError(t, s.Submit(ctx, score.NewEntry("lee", 90)))
	require.NoError(t, s.Submit(ctx, score.NewEntry("park", 60)))

	top, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "lee", top[0].Nickname)
	assert.Equal(t, 90, top[0].Steps)
	assert.Equal(t, "park", top[1].Nickname)
	assert.Equal(t, "kim", top[2].Nickname)
}

func TestPostgresStore_TopLimit(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Submit(ctx, score.NewEntry("p", i*10)))
	}

	top, err := s.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 50, top[0].Steps)
	assert.Equal(t, 40, top[1].Steps)
}

func TestPostgresStore_TopEmpty(t *testing.T) {
	s := setupTestStore(t)

	top, err := s.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestPostgresStore_TieBreakByCreatedAt(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := score.NewEntry("first", 50)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := score.NewEntry("second", 50)

	require.NoError(t, s.Submit(ctx, newer))
	require.NoError(t, s.Submit(ctx, older))

	top, err := s.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Nickname)
}

func TestPostgresStore_Best(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Submit(ctx, score.NewEntry("kim", 30)))
	require.NoError(t, s.Submit(ctx, score.NewEntry("kim", 80)))
	require.NoError(t, s.Submit(ctx, score.NewEntry("lee", 100)))

	best, err := s.Best(ctx, "kim")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 80, best.Steps)
}

func TestPostgresStore_Best_NotFound(t *testing.T) {
	s := setupTestStore(t)

	best, err := s.Best(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, best)
}
