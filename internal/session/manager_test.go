package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecliptor/intruder-escape-server/internal/game"
	"github.com/ecliptor/intruder-escape-server/internal/ws"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(ws.NewHub(), &mockScoreStore{}, game.DefaultConfig(), testTick)
}

// findFreeCell returns the first walkable cell with no pursuer on it.
func findFreeCell(t *testing.T, l *game.Layout) game.Cell {
	t.Helper()
	taken := make(map[game.Cell]bool)
	for _, c := range l.Pursuers {
		taken[c] = true
	}
	for r := 0; r < l.Grid.Rows(); r++ {
		for c := 0; c < l.Grid.Cols(); c++ {
			cell := game.Cell{Row: r, Col: c}
			if l.Grid.Walkable(cell) && !taken[cell] {
				return cell
			}
		}
	}
	t.Fatal("no free cell on board")
	return game.Cell{}
}

func TestManagerCreateAndGet(t *testing.T) {
	m := newTestManager(t)
	client, _ := newTestClient("client-1")

	s, err := m.Create(client, "kim")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "kim", s.Nickname)

	cfg := game.DefaultConfig()
	l := s.Layout()
	assert.Equal(t, cfg.Rows, l.Grid.Rows())
	assert.Equal(t, cfg.Cols, l.Grid.Cols())
	assert.Len(t, l.Grid.BlockedCells(), cfg.ObstacleCount)
	assert.Len(t, l.Pursuers, cfg.PursuerCount)
	assert.Nil(t, l.Intruder)

	assert.Same(t, s, m.Get("client-1"))
	assert.Equal(t, 1, m.Count())
}

func TestManagerGetUnknown(t *testing.T) {
	m := newTestManager(t)
	assert.Nil(t, m.Get("nobody"))
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(t)
	client, _ := newTestClient("client-1")

	_, err := m.Create(client, "kim")
	require.NoError(t, err)

	m.Remove("client-1")
	assert.Nil(t, m.Get("client-1"))
	assert.Equal(t, 0, m.Count())

	// Removing an unknown client is a no-op
	m.Remove("client-1")
}

func TestManagerRemoveStopsRound(t *testing.T) {
	m := newTestManager(t)
	client, _ := newTestClient("client-1")

	s, err := m.Create(client, "kim")
	require.NoError(t, err)

	require.NoError(t, s.PlaceIntruder(findFreeCell(t, s.Layout())))
	require.NoError(t, s.StartRound())

	m.Remove("client-1")
	assert.ErrorIs(t, s.Move(game.DirUp), ErrNoRound)
}

func TestManagerCountsSessions(t *testing.T) {
	m := newTestManager(t)
	for i, id := range []string{"a", "b", "c"} {
		client, _ := newTestClient(id)
		_, err := m.Create(client, "player")
		require.NoError(t, err)
		assert.Equal(t, i+1, m.Count())
	}

	m.Remove("b")
	assert.Equal(t, 2, m.Count())
}

// Distinct sessions draw distinct boards when the seed is left to the
// clock. Two identical 15x15 boards in a row would mean the generator
// reused a seed.
func TestManagerBoardsVary(t *testing.T) {
	m := newTestManager(t)

	c1, _ := newTestClient("client-1")
	c2, _ := newTestClient("client-2")
	s1, err := m.Create(c1, "kim")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	s2, err := m.Create(c2, "lee")
	require.NoError(t, err)

	assert.NotEqual(t, s1.Layout().Seed, s2.Layout().Seed)
}
