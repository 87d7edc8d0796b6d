package motion

import "errors"

var (
	// ErrDiscontinuousPath indicates two consecutive path cells that are not
	// axis-aligned neighbors.
	ErrDiscontinuousPath = errors.New("discontinuous path")

	// ErrInvalidHeading indicates a value outside the four cardinal headings.
	ErrInvalidHeading = errors.New("invalid heading")
)
