package game

import (
	"errors"
	"fmt"
)

const (
	DefaultRows           = 15
	DefaultCols           = 15
	DefaultObstacleCount  = 30
	DefaultPursuerCount   = 4
	DefaultBaseSpeed      = 1.0
	DefaultSpeedIncrement = 0.1
	DefaultSpeedInterval  = 100
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the tunable parameters of a round. A Config is only a
// request; Validate must pass before a layout is generated from it.
type Config struct {
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	ObstacleCount  int     `json:"obstacle_count"`
	PursuerCount   int     `json:"pursuer_count"`
	BaseSpeed      float64 `json:"base_speed"`
	SpeedIncrement float64 `json:"speed_increment"`
	SpeedInterval  int     `json:"speed_interval"`
}

// DefaultConfig returns the standard round setup.
func DefaultConfig() Config {
	return Config{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		ObstacleCount:  DefaultObstacleCount,
		PursuerCount:   DefaultPursuerCount,
		BaseSpeed:      DefaultBaseSpeed,
		SpeedIncrement: DefaultSpeedIncrement,
		SpeedInterval:  DefaultSpeedInterval,
	}
}

// Validate reports whether the configuration can produce a playable
// round. The free-cell check reserves one cell for the intruder on top
// of the obstacles and pursuers.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.ObstacleCount < 0 {
		return fmt.Errorf("%w: obstacle count must not be negative, got %d", ErrInvalidConfig, c.ObstacleCount)
	}
	if c.PursuerCount < 1 {
		return fmt.Errorf("%w: at least one pursuer required, got %d", ErrInvalidConfig, c.PursuerCount)
	}
	if c.ObstacleCount+c.PursuerCount+1 > c.Rows*c.Cols {
		return fmt.Errorf("%w: %d obstacles and %d pursuers do not fit a %dx%d grid",
			ErrInvalidConfig, c.ObstacleCount, c.PursuerCount, c.Rows, c.Cols)
	}
	if c.BaseSpeed < 1.0 {
		return fmt.Errorf("%w: base speed must be at least 1.0, got %g", ErrInvalidConfig, c.BaseSpeed)
	}
	if c.SpeedIncrement < 0 {
		return fmt.Errorf("%w: speed increment must not be negative, got %g", ErrInvalidConfig, c.SpeedIncrement)
	}
	if c.SpeedInterval < 1 {
		return fmt.Errorf("%w: speed interval must be at least 1, got %d", ErrInvalidConfig, c.SpeedInterval)
	}
	return nil
}

// Schedule builds the speed schedule described by the difficulty
// parameters.
func (c Config) Schedule() SpeedSchedule {
	return SpeedSchedule{Base: c.BaseSpeed, Increment: c.SpeedIncrement, Interval: c.SpeedInterval}
}
