package state

import (
	"time"

	"github.com/danieljhkim/gridnav/internal/engine"
	"github.com/danieljhkim/gridnav/internal/grid"
)

// ReportVersion is the schema version written into new reports.
const ReportVersion = 1

// RunReport is the persisted record of one run.
type RunReport struct {
	// Version is the report schema version
	Version int `json:"version"`

	// Scenario is the name of the scenario that was run
	Scenario string `json:"scenario"`

	// ScenarioDigest is the SHA-256 of the scenario file; empty for the demo
	ScenarioDigest string `json:"scenario_digest,omitempty"`

	// Obstacles are the hidden obstacles the simulated world contained
	Obstacles []grid.Cell `json:"hidden_obstacles,omitempty"`

	// Result is the navigate result, including every cycle
	Result *engine.NavigateResult `json:"result"`
}

// NewRunReport wraps a result for persistence.
func NewRunReport(scenario string, obstacles []grid.Cell, result *engine.NavigateResult) *RunReport {
	return &RunReport{
		Version:   ReportVersion,
		Scenario:  scenario,
		Obstacles: obstacles,
		Result:    result,
	}
}

// ID returns the run ID of the wrapped result.
func (r *RunReport) ID() string {
	if r.Result == nil {
		return ""
	}
	return r.Result.RunID
}

// RunSummary is a condensed view of a report.
type RunSummary struct {
	ID         string        `json:"id"`
	Scenario   string        `json:"scenario"`
	Status     engine.Status `json:"status"`
	Start      grid.Cell     `json:"start"`
	Goal       grid.Cell     `json:"goal"`
	Cycles     int           `json:"cycles"`
	Blocked    int           `json:"blocked"`
	Commands   int           `json:"commands"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Summary condenses the report.
func (r *RunReport) Summary() RunSummary {
	s := RunSummary{ID: r.ID(), Scenario: r.Scenario}
	if res := r.Result; res != nil {
		s.Status = res.Status
		s.Start = res.Start
		s.Goal = res.Goal
		s.Cycles = len(res.Cycles)
		s.Blocked = len(res.Blocked)
		s.Commands = res.TotalCommands
		s.FinishedAt = res.FinishedAt
	}
	return s
}
