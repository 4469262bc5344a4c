package game

// Pursuer is a single chasing agent. It keeps a fractional movement
// budget across ticks so sub-cell speeds still translate into whole-cell
// moves over time: a speed of 1.5 yields one step, then two, then one.
type Pursuer struct {
	Index int  `json:"index"`
	Cell  Cell `json:"cell"`

	budget float64
}

// NewPursuer places a pursuer at the given cell.
func NewPursuer(index int, at Cell) *Pursuer {
	return &Pursuer{Index: index, Cell: at}
}

// Advance accrues one tick of speed, replans a path to the intruder and
// returns the cell the pursuer ends the tick on. It does not move the
// pursuer itself; the caller commits the returned cell so that every
// pursuer in a tick plans against the same intruder position.
//
// When no path exists the accrued budget is kept, so a pursuer freed
// from a dead end resumes at full banked speed.
func (p *Pursuer) Advance(g *Grid, intruder Cell, speed float64) Cell {
	p.budget += speed

	path, ok := FindPath(g, p.Cell, intruder)
	if !ok || len(path) < 2 {
		return p.Cell
	}

	steps := int(p.budget)
	if limit := len(path) - 1; steps > limit {
		steps = limit
	}
	if steps < 1 {
		return p.Cell
	}

	p.budget -= float64(steps)
	return path[steps]
}
