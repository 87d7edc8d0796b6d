package engine

import (
	"errors"
	"time"

	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/solver"
)

// Status summarizes how a run ended.
type Status string

const (
	StatusReached         Status = "reached"
	StatusNoPath          Status = "no_path"
	StatusInvalidEndpoint Status = "invalid_endpoint"
	StatusReplanLimit     Status = "replan_limit"
	StatusFailed          Status = "failed"
)

// statusFor maps a run-ending error to its status.
func statusFor(err error) Status {
	switch {
	case err == nil:
		return StatusReached
	case errors.Is(err, solver.ErrNoPathFound):
		return StatusNoPath
	case errors.Is(err, solver.ErrInvalidEndpoint):
		return StatusInvalidEndpoint
	case errors.Is(err, ErrReplanLimit):
		return StatusReplanLimit
	default:
		return StatusFailed
	}
}

// Cycle records one plan and traversal attempt.
type Cycle struct {
	// Index is the zero-based cycle number; cycle 0 is the initial plan
	Index int `json:"index"`

	// Start is the cell the cycle planned from
	Start grid.Cell `json:"start"`

	// Heading is the agent's heading when the cycle began
	Heading motion.Heading `json:"heading"`

	// GridFingerprint identifies the grid snapshot the cycle planned on
	GridFingerprint string `json:"grid_fingerprint"`

	Path []grid.Cell `json:"path"`
	Cost int         `json:"cost"`

	Outcome motion.Outcome `json:"outcome"`

	// ObstructedAt is the segment index of the obstruction, or -1
	ObstructedAt int `json:"obstructed_at"`

	// Blocked is the cell turned into a barrier by this cycle
	Blocked *grid.Cell `json:"blocked,omitempty"`

	Commands []motion.Command `json:"commands"`

	// Moves is the number of cells actually entered
	Moves int `json:"moves"`

	// Traveled is the summed entry cost of the cells actually entered
	Traveled int `json:"traveled"`

	Duration time.Duration `json:"duration"`
}

// NavigateResult is the full record of a run. It is returned alongside any
// error so that partial progress can be inspected.
type NavigateResult struct {
	RunID    string          `json:"run_id"`
	Status   Status          `json:"status"`
	Strategy solver.Strategy `json:"strategy"`

	Start   grid.Cell      `json:"start"`
	Goal    grid.Cell      `json:"goal"`
	Heading motion.Heading `json:"initial_heading"`

	// Reached and FinalHeading are the agent's pose when the run ended
	Reached      grid.Cell      `json:"reached"`
	FinalHeading motion.Heading `json:"final_heading"`

	// Grid holds the final grid values, including discovered barriers
	Grid [][]int `json:"grid"`

	// Blocked lists the barriers added during the run, in discovery order
	Blocked []grid.Cell `json:"blocked"`

	Cycles        []Cycle `json:"cycles"`
	TotalCommands int     `json:"total_commands"`
	Traveled      int     `json:"traveled"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Error is the message of the error that ended the run, if any
	Error string `json:"error,omitempty"`
}

// Replans returns how many times the run replanned after an obstruction.
func (r *NavigateResult) Replans() int {
	if len(r.Cycles) == 0 {
		return 0
	}
	return len(r.Cycles) - 1
}

// Trail returns every cell the agent occupied, in order, starting with
// Start. A cell is repeated if the agent revisited it.
func (r *NavigateResult) Trail() []grid.Cell {
	trail := []grid.Cell{r.Start}
	for _, c := range r.Cycles {
		for i := 1; i <= c.Moves && i < len(c.Path); i++ {
			trail = append(trail, c.Path[i])
		}
	}
	return trail
}

// FinalGrid rebuilds the final grid from the recorded values.
func (r *NavigateResult) FinalGrid() (*grid.Grid, error) {
	return grid.New(r.Grid)
}

// Succeeded reports whether the agent reached the goal.
func (r *NavigateResult) Succeeded() bool {
	return r.Status == StatusReached
}
