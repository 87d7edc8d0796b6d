package engine

import "errors"

var (
	// ErrInvalidRequest indicates a navigate request is missing its grid or
	// carries an invalid heading.
	ErrInvalidRequest = errors.New("invalid navigate request")

	// ErrReplanLimit indicates the run gave up after the configured number
	// of replans.
	ErrReplanLimit = errors.New("replan limit reached")
)
