package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Rows)
	assert.Equal(t, 15, cfg.Cols)
	assert.Equal(t, 30, cfg.ObstacleCount)
	assert.Equal(t, 4, cfg.PursuerCount)
	assert.InDelta(t, 1.0, cfg.BaseSpeed, 0.0001)
	assert.InDelta(t, 0.1, cfg.SpeedIncrement, 0.0001)
	assert.Equal(t, 100, cfg.SpeedInterval)
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative cols", func(c *Config) { c.Cols = -3 }},
		{"negative obstacles", func(c *Config) { c.ObstacleCount = -1 }},
		{"no pursuers", func(c *Config) { c.PursuerCount = 0 }},
		{"board too crowded", func(c *Config) { c.Rows, c.Cols, c.ObstacleCount = 3, 3, 8 }},
		{"base speed below one", func(c *Config) { c.BaseSpeed = 0.5 }},
		{"negative increment", func(c *Config) { c.SpeedIncrement = -0.1 }},
		{"zero interval", func(c *Config) { c.SpeedInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigValidateExactFit(t *testing.T) {
	// 2x2 board, one obstacle, two pursuers, one intruder cell: full.
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 2, 2
	cfg.ObstacleCount = 1
	cfg.PursuerCount = 2

	assert.NoError(t, cfg.Validate())

	cfg.ObstacleCount = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestConfigSchedule(t *testing.T) {
	cfg := Config{BaseSpeed: 1.2, SpeedIncrement: 0.3, SpeedInterval: 50}
	sched := cfg.Schedule()

	assert.InDelta(t, 1.2, sched.At(0), 0.0001)
	assert.InDelta(t, 1.5, sched.At(50), 0.0001)
}
