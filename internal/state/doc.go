// Package state persists run reports.
//
// Every gridnav run can be saved as a JSON report under the runs directory
// (default ~/.gridnav/runs/<run-id>.json). Reports are written atomically and
// can be listed or read back later.
//
// Key concepts:
//   - RunReport: the scenario name, hidden obstacles and full navigate result
//   - RunSummary: the one-line view used by listings
//   - RunStore: interface for saving, loading, listing and deleting reports
package state
