package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	before := time.Now()
	e := NewEntry("runner", 42)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "runner", e.Nickname)
	assert.Equal(t, 42, e.Steps)
	assert.False(t, e.CreatedAt.Before(before))

	other := NewEntry("runner", 42)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestRanksAbove(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Minute)

	tests := []struct {
		name     string
		a, b     *Entry
		expected bool
	}{
		{
			"more steps wins",
			&Entry{Steps: 100, CreatedAt: now},
			&Entry{Steps: 50, CreatedAt: earlier},
			true,
		},
		{
			"fewer steps loses",
			&Entry{Steps: 50, CreatedAt: earlier},
			&Entry{Steps: 100, CreatedAt: now},
			false,
		},
		{
			"tie goes to the earlier run",
			&Entry{Steps: 75, CreatedAt: earlier},
			&Entry{Steps: 75, CreatedAt: now},
			true,
		},
		{
			"tie against an older run loses",
			&Entry{Steps: 75, CreatedAt: now},
			&Entry{Steps: 75, CreatedAt: earlier},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.RanksAbove(tt.b))
		})
	}
}
