package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedScheduleAt(t *testing.T) {
	sched := SpeedSchedule{Base: 1.0, Increment: 0.1, Interval: 100}

	tests := []struct {
		name     string
		step     int
		expected float64
	}{
		{"step zero", 0, 1.0},
		{"just before first boundary", 99, 1.0},
		{"first boundary", 100, 1.1},
		{"mid second interval", 150, 1.1},
		{"second boundary", 200, 1.2},
		{"deep into round", 1000, 2.0},
		{"negative step clamps to base", -5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, sched.At(tt.step), 0.0001)
		})
	}
}

func TestSpeedScheduleNoRamp(t *testing.T) {
	sched := SpeedSchedule{Base: 1.5, Increment: 0.5, Interval: 0}

	assert.InDelta(t, 1.5, sched.At(0), 0.0001)
	assert.InDelta(t, 1.5, sched.At(10000), 0.0001)
}

func TestSpeedScheduleMonotonic(t *testing.T) {
	sched := SpeedSchedule{Base: 1.0, Increment: 0.1, Interval: 7}

	prev := sched.At(0)
	for step := 1; step <= 500; step++ {
		cur := sched.At(step)
		assert.GreaterOrEqual(t, cur, prev, "speed decreased at step %d", step)
		prev = cur
	}
}
