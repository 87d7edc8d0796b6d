package grid

import "errors"

var (
	// ErrMalformedGrid indicates an empty, jagged or negative terrain matrix.
	ErrMalformedGrid = errors.New("malformed grid")

	// ErrOutOfBounds indicates a cell outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)
