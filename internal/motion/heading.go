package motion

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/gridnav/internal/grid"
)

// Heading is one of the four cardinal directions.
type Heading int

// Headings in clockwise order. The numeric values are significant.
const (
	North Heading = iota
	East
	South
	West
)

var headingDeltas = [4][2]int{
	North: {-1, 0},
	East:  {0, 1},
	South: {1, 0},
	West:  {0, -1},
}

var headingNames = [4]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// Valid reports whether h is one of the four cardinal headings.
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// Delta returns the (row, col) unit vector of h, or (0, 0) if h is invalid.
func (h Heading) Delta() (int, int) {
	if !h.Valid() {
		return 0, 0
	}
	d := headingDeltas[h]
	return d[0], d[1]
}

// Ahead returns the cell one step from c in direction h.
func (h Heading) Ahead(c grid.Cell) grid.Cell {
	dr, dc := h.Delta()
	return c.Offset(dr, dc)
}

// Rotate returns h turned clockwise by steps quarter turns (negative is
// counter-clockwise).
func (h Heading) Rotate(steps int) Heading {
	return Heading(((int(h)+steps)%4 + 4) % 4)
}

func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingNames[h]
}

// MarshalText implements encoding.TextMarshaler.
func (h Heading) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeading, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHeading accepts compass names (north, east, ...) and screen names
// (up, right, ...), case-insensitively.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidHeading, s)
	}
}

// HeadingOf returns the heading of the unit step from -> to.
func HeadingOf(from, to grid.Cell) (Heading, error) {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	for h, d := range headingDeltas {
		if d[0] == dr && d[1] == dc {
			return Heading(h), nil
		}
	}
	return 0, fmt.Errorf("%w: %s -> %s", ErrDiscontinuousPath, from, to)
}
