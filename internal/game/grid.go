package game

// Grid is an immutable obstacle map with fixed dimensions. Cells are either
// blocked or free; construction fixes the blocked set for the whole round.
type Grid struct {
	rows, cols int
	blocked    []bool
}

// NewGrid creates a grid of rows x cols with the given cells blocked.
// Blocked cells outside the bounds are ignored.
func NewGrid(rows, cols int, blocked []Cell) *Grid {
	g := &Grid{
		rows:    rows,
		cols:    cols,
		blocked: make([]bool, rows*cols),
	}
	for _, c := range blocked {
		if g.InBounds(c) {
			g.blocked[g.index(c)] = true
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether the cell lies on the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Walkable reports whether the cell is in bounds and not blocked.
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && !g.blocked[g.index(c)]
}

// Neighbors returns the in-bounds cells adjacent to c in the fixed order
// up, down, left, right. Blocked neighbors are included; walkability
// filtering is the caller's concern.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range directions {
		n := c.Step(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// BlockedCells returns every blocked cell in row-major order.
func (g *Grid) BlockedCells() []Cell {
	var out []Cell
	for i, b := range g.blocked {
		if b {
			out = append(out, g.cellAt(i))
		}
	}
	return out
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) cellAt(i int) Cell {
	return Cell{Row: i / g.cols, Col: i % g.cols}
}
