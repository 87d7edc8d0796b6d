package grid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Barrier is the terrain value reserved for impassable cells.
const Barrier = 9

// Grid is a rectangular terrain matrix.
// The zero value is not usable; construct grids with New.
type Grid struct {
	cells [][]int
	rows  int
	cols  int
}

// New validates values and returns a Grid that owns a copy of them.
// Every row must have the same, non-zero length and every value must be
// non-negative.
func New(values [][]int) (*Grid, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	cols := len(values[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrMalformedGrid)
	}

	cells := make([][]int, len(values))
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedGrid, r, len(row), cols)
		}
		for c, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: negative terrain value %d at %s", ErrMalformedGrid, v, At(r, c))
			}
		}
		cells[r] = slices.Clone(row)
	}

	return &Grid{cells: cells, rows: len(values), cols: cols}, nil
}

// MustNew is like New but panics on malformed input. Intended for fixtures.
func MustNew(values [][]int) *Grid {
	g, err := New(values)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Value returns the terrain value at c.
func (g *Grid) Value(c Cell) (int, error) {
	if !g.InBounds(c) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return g.cells[c.Row][c.Col], nil
}

// IsBarrier reports whether c is in bounds and impassable.
func (g *Grid) IsBarrier(c Cell) bool {
	return g.InBounds(c) && g.cells[c.Row][c.Col] == Barrier
}

// Traversable reports whether c is in bounds and not a barrier.
func (g *Grid) Traversable(c Cell) bool {
	return g.InBounds(c) && g.cells[c.Row][c.Col] != Barrier
}

// MarkBarrier permanently marks c as impassable.
// It reports whether the cell changed; marking an existing barrier is a no-op.
func (g *Grid) MarkBarrier(c Cell) (bool, error) {
	if !g.InBounds(c) {
		return false, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if g.cells[c.Row][c.Col] == Barrier {
		return false, nil
	}
	g.cells[c.Row][c.Col] = Barrier
	return true, nil
}

// Barriers returns every barrier cell in row-major order.
func (g *Grid) Barriers() []Cell {
	var out []Cell
	for r, row := range g.cells {
		for c, v := range row {
			if v == Barrier {
				out = append(out, At(r, c))
			}
		}
	}
	return out
}

// Values returns a deep copy of the terrain matrix.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r, row := range g.cells {
		out[r] = slices.Clone(row)
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{cells: g.Values(), rows: g.rows, cols: g.cols}
}

// String renders the grid one row per line, barriers as '#'.
func (g *Grid) String() string {
	var b strings.Builder
	for r, row := range g.cells {
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			if v == Barrier {
				b.WriteByte('#')
			} else {
				b.WriteString(strconv.Itoa(v))
			}
		}
		if r < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
