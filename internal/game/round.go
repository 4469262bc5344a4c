package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Phase is the lifecycle state of a round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCaptured
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseCaptured:
		return "captured"
	case PhaseStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// MarshalJSON serializes Phase as a string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

var (
	ErrRoundActive       = errors.New("round already started")
	ErrIntruderNotPlaced = errors.New("intruder not placed")
	ErrInvalidPlacement  = errors.New("invalid intruder placement")
)

// Round drives one pursuit round to completion. It owns the clock, the
// pursuers and the intruder cell; callers feed it one intent per tick
// and read the resulting phase. Round is not safe for concurrent use.
type Round struct {
	grid     *Grid
	pursuers []*Pursuer
	sched    SpeedSchedule

	intruder Cell
	placed   bool

	phase  Phase
	clock  int
	captor int
}

// NewRound builds an idle round from a layout. A layout with a
// pre-placed intruder starts with the placement already done.
func NewRound(l *Layout, sched SpeedSchedule) *Round {
	pursuers := make([]*Pursuer, len(l.Pursuers))
	for i, c := range l.Pursuers {
		pursuers[i] = NewPursuer(i, c)
	}
	r := &Round{
		grid:     l.Grid,
		pursuers: pursuers,
		sched:    sched,
		captor:   -1,
	}
	if l.Intruder != nil {
		r.intruder = *l.Intruder
		r.placed = true
	}
	return r
}

// PlaceIntruder sets the intruder start cell. Only allowed while the
// round is idle; the cell must be walkable and free of pursuers.
func (r *Round) PlaceIntruder(c Cell) error {
	if r.phase != PhaseIdle {
		return ErrRoundActive
	}
	if !r.grid.Walkable(c) {
		return fmt.Errorf("%w: %s is not walkable", ErrInvalidPlacement, c)
	}
	for _, p := range r.pursuers {
		if p.Cell == c {
			return fmt.Errorf("%w: %s is occupied by pursuer %d", ErrInvalidPlacement, c, p.Index)
		}
	}
	r.intruder = c
	r.placed = true
	return nil
}

// Start moves the round from idle to running.
func (r *Round) Start() error {
	if r.phase != PhaseIdle {
		return ErrRoundActive
	}
	if !r.placed {
		return ErrIntruderNotPlaced
	}
	r.phase = PhaseRunning
	return nil
}

// Tick advances the round by one step and returns the resulting phase.
// intent is the cell the intruder wants to occupy this tick, or nil for
// no move; unwalkable intents are ignored rather than rejected.
//
// Within a tick the order is fixed: the intruder moves first, then the
// clock advances, then every pursuer replans against the settled
// intruder cell in index order, then capture is checked. The clock
// value at capture is the score.
func (r *Round) Tick(intent *Cell) Phase {
	if r.phase != PhaseRunning {
		return r.phase
	}

	if intent != nil && r.grid.Walkable(*intent) {
		r.intruder = *intent
	}

	r.clock++
	speed := r.sched.At(r.clock)

	for _, p := range r.pursuers {
		p.Cell = p.Advance(r.grid, r.intruder, speed)
	}

	for _, p := range r.pursuers {
		if p.Cell == r.intruder {
			r.phase = PhaseCaptured
			r.captor = p.Index
			break
		}
	}
	return r.phase
}

// Stop abandons the round. Captured rounds keep their outcome.
func (r *Round) Stop() {
	if r.phase == PhaseIdle || r.phase == PhaseRunning {
		r.phase = PhaseStopped
	}
}

func (r *Round) Phase() Phase { return r.phase }

// Clock returns the number of ticks survived so far.
func (r *Round) Clock() int { return r.clock }

// Speed returns the pursuer speed in effect for the current clock.
func (r *Round) Speed() float64 { return r.sched.At(r.clock) }

func (r *Round) Intruder() Cell { return r.intruder }

func (r *Round) IntruderPlaced() bool { return r.placed }

// PursuerCells returns the current pursuer positions in index order.
func (r *Round) PursuerCells() []Cell {
	cells := make([]Cell, len(r.pursuers))
	for i, p := range r.pursuers {
		cells[i] = p.Cell
	}
	return cells
}

// CapturedBy returns the index of the capturing pursuer, or -1 while no
// capture has happened.
func (r *Round) CapturedBy() int { return r.captor }

// Score is the tick count the intruder survived. Only meaningful once
// the round has been captured.
func (r *Round) Score() int { return r.clock }
