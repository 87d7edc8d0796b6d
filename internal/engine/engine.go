// Package engine runs the plan, traverse and replan loop that drives an
// agent across a grid.
//
// The engine owns a private copy of the grid. Each cycle it rebuilds the
// graph from the current snapshot, solves for a path, and hands the path to a
// motion.Translator. An obstruction turns the blocked cell into a barrier and
// starts the next cycle from the last cell the agent reached.
//
// Key components:
//   - Engine: orchestrator configured with functional options
//   - NavigateRequest/NavigateResult: input and full record of a run
//   - Cycle: one plan and traversal attempt
package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danieljhkim/gridnav/internal/clock"
	"github.com/danieljhkim/gridnav/internal/hash"
	"github.com/danieljhkim/gridnav/internal/metrics"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/solver"
)

// Engine orchestrates planning and motion for one agent.
type Engine struct {
	actuator motion.Actuator
	sensor   motion.Sensor

	logger  zerolog.Logger
	metrics *metrics.Recorder
	clock   clock.Clock
	hasher  hash.Hasher
	newID   func() string

	strategy   solver.Strategy
	clearance  motion.Reading
	reorient   *motion.Heading
	maxReplans int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for cycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics sets the recorder that receives plan and motion counters.
// A nil recorder disables metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// WithClock sets the clock used for timestamps and cycle durations.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithHasher sets the hasher used to fingerprint each grid snapshot.
func WithHasher(h hash.Hasher) Option {
	return func(e *Engine) {
		e.hasher = h
	}
}

// WithStrategy selects the path search used each cycle.
func WithStrategy(s solver.Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithClearance sets the sensor distance below which the path is blocked.
func WithClearance(mm motion.Reading) Option {
	return func(e *Engine) {
		e.clearance = mm
	}
}

// WithReorient sets the heading the agent turns to after an obstruction.
// A nil heading leaves the agent facing the obstruction.
func WithReorient(h *motion.Heading) Option {
	return func(e *Engine) {
		if h == nil {
			e.reorient = nil
			return
		}
		v := *h
		e.reorient = &v
	}
}

// WithMaxReplans caps the number of replans in one run. Zero means no cap.
func WithMaxReplans(n int) Option {
	return func(e *Engine) {
		e.maxReplans = n
	}
}

// WithIDGenerator overrides how run IDs are produced.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New creates an Engine driving the given actuator and sensor.
func New(actuator motion.Actuator, sensor motion.Sensor, opts ...Option) *Engine {
	east := motion.East
	e := &Engine{
		actuator:  actuator,
		sensor:    sensor,
		logger:    zerolog.Nop(),
		clock:     clock.RealClock{},
		hasher:    hash.NewSHA256Hasher(),
		newID:     uuid.NewString,
		strategy:  solver.StrategyDijkstra,
		clearance: motion.DefaultClearance,
		reorient:  &east,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the configured search strategy.
func (e *Engine) Strategy() solver.Strategy {
	return e.strategy
}

func (e *Engine) translator() *motion.Translator {
	opts := []motion.Option{motion.WithClearance(e.clearance)}
	if e.reorient != nil {
		opts = append(opts, motion.WithReorient(*e.reorient))
	} else {
		opts = append(opts, motion.WithoutReorient())
	}
	return motion.NewTranslator(e.actuator, e.sensor, opts...)
}
