package game

import (
	"math/rand"
	"time"
)

// LayoutSource produces layouts for new rounds.
type LayoutSource interface {
	Layout(cfg Config) (*Layout, error)
}

// RandomLayout scatters obstacles and pursuer starts uniformly over the
// grid by rejection sampling. A zero Seed draws one from the clock; the
// seed actually used is recorded on the returned Layout so a board can
// be reproduced.
type RandomLayout struct {
	Seed int64
}

// Layout generates a board for the given configuration. The intruder is
// left unplaced.
func (rl RandomLayout) Layout(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := rl.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	taken := make(map[Cell]bool, cfg.ObstacleCount+cfg.PursuerCount)
	sample := func() Cell {
		for {
			c := Cell{Row: rng.Intn(cfg.Rows), Col: rng.Intn(cfg.Cols)}
			if !taken[c] {
				taken[c] = true
				return c
			}
		}
	}

	blocked := make([]Cell, 0, cfg.ObstacleCount)
	for i := 0; i < cfg.ObstacleCount; i++ {
		blocked = append(blocked, sample())
	}

	pursuers := make([]Cell, 0, cfg.PursuerCount)
	for i := 0; i < cfg.PursuerCount; i++ {
		pursuers = append(pursuers, sample())
	}

	return &Layout{
		Grid:     NewGrid(cfg.Rows, cfg.Cols, blocked),
		Pursuers: pursuers,
		Seed:     seed,
	}, nil
}
