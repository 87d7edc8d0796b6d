package solver

import "errors"

var (
	// ErrInvalidEndpoint indicates the start or goal is not a graph node
	// (off-grid or on a barrier).
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrNoPathFound indicates the search exhausted the frontier without
	// reaching the goal.
	ErrNoPathFound = errors.New("no path found")

	// ErrUnknownStrategy indicates an unsupported strategy name.
	ErrUnknownStrategy = errors.New("unknown solver strategy")

	// ErrInvalidPath indicates a path that is not a walk over graph edges.
	ErrInvalidPath = errors.New("invalid path")
)
