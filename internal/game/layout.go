package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout text markers. One rune per cell, one line per row.
const (
	markFree     = '.'
	markBlocked  = '#'
	markPursuer  = 'R'
	markIntruder = 'I'
)

// Layout is a fully placed board: the obstacle grid, the pursuer start
// cells in index order, and optionally a pre-placed intruder. Seed
// records the randomness that produced a generated layout; parsed
// layouts carry zero.
type Layout struct {
	Grid     *Grid
	Pursuers []Cell
	Intruder *Cell
	Seed     int64
}

// ParseLayout reads the textual form of a board. Rows must all have the
// same width, and at most one intruder marker may appear. Pursuer
// indices follow row-major scan order.
func ParseLayout(r io.Reader) (*Layout, error) {
	var (
		blocked  []Cell
		pursuers []Cell
		intruder *Cell
		rows     int
		cols     int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		row := rows

		n := 0
		for _, ch := range line {
			cell := Cell{Row: row, Col: n}
			switch ch {
			case markFree:
			case markBlocked:
				blocked = append(blocked, cell)
			case markPursuer:
				pursuers = append(pursuers, cell)
			case markIntruder:
				if intruder != nil {
					return nil, fmt.Errorf("layout has more than one intruder, second at %s", cell)
				}
				c := cell
				intruder = &c
			default:
				return nil, fmt.Errorf("unknown layout marker %q at row %d col %d", ch, row, n)
			}
			n++
		}

		if n == 0 {
			return nil, fmt.Errorf("layout row %d is empty", row)
		}
		if rows == 0 {
			cols = n
		} else if n != cols {
			return nil, fmt.Errorf("layout row %d has %d cells, want %d", row, n, cols)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}

	return &Layout{
		Grid:     NewGrid(rows, cols, blocked),
		Pursuers: pursuers,
		Intruder: intruder,
	}, nil
}

// String renders the layout back into its textual form without a
// trailing newline.
func (l *Layout) String() string {
	rows, cols := l.Grid.Rows(), l.Grid.Cols()
	buf := make([]rune, rows*cols)
	for i := range buf {
		buf[i] = markFree
	}
	place := func(c Cell, mark rune) {
		buf[c.Row*cols+c.Col] = mark
	}
	for _, c := range l.Grid.BlockedCells() {
		place(c, markBlocked)
	}
	for _, c := range l.Pursuers {
		place(c, markPursuer)
	}
	if l.Intruder != nil {
		place(*l.Intruder, markIntruder)
	}

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			sb.WriteRune(buf[r*cols+c])
		}
	}
	return sb.String()
}
