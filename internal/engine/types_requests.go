package engine

import (
	"fmt"

	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/motion"
)

// NavigateRequest represents a request to drive the agent to a goal.
type NavigateRequest struct {
	// Grid is the known terrain; the engine works on a copy
	Grid *grid.Grid

	// Start is the agent's current cell
	Start grid.Cell

	// Goal is the target cell
	Goal grid.Cell

	// Heading is the direction the agent faces at Start
	Heading motion.Heading
}

// Validate checks the parts of the request the solver does not.
func (r *NavigateRequest) Validate() error {
	if r == nil || r.Grid == nil {
		return fmt.Errorf("%w: grid is required", ErrInvalidRequest)
	}
	if !r.Heading.Valid() {
		return fmt.Errorf("%w: heading %d", ErrInvalidRequest, int(r.Heading))
	}
	return nil
}
