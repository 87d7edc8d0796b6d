// Package robot provides a simulated agent that implements the motion
// actuator and sensor interfaces over a world with hidden obstacles.
package robot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/motion"
)

// ObstacleDistance is the reading reported when the cell ahead is blocked.
const ObstacleDistance motion.Reading = 50

// ErrCollision indicates a move into a blocked cell was attempted.
var ErrCollision = errors.New("collision")

// Sim is a simulated robot. Hidden obstacles are cells the planning grid
// considers traversable but that physically block the robot.
type Sim struct {
	world     *grid.Grid
	obstacles map[grid.Cell]bool
	pos       grid.Cell
	heading   motion.Heading
	delay     time.Duration
	logger    zerolog.Logger
	commands  []motion.Command
	senses    int
}

// Option configures a Sim.
type Option func(*Sim)

// WithObstacles hides obstacles at the given cells.
func WithObstacles(cells ...grid.Cell) Option {
	return func(s *Sim) {
		for _, c := range cells {
			s.obstacles[c] = true
		}
	}
}

// WithStepDelay makes every actuator command take d.
func WithStepDelay(d time.Duration) Option {
	return func(s *Sim) {
		s.delay = d
	}
}

// WithLogger sets the logger for actuator and sensor events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sim) {
		s.logger = l
	}
}

// NewSim places a robot on world at start facing heading.
func NewSim(world *grid.Grid, start grid.Cell, heading motion.Heading, opts ...Option) *Sim {
	s := &Sim{
		world:     world,
		obstacles: make(map[grid.Cell]bool),
		pos:       start,
		heading:   heading,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Position returns the robot's current cell.
func (s *Sim) Position() grid.Cell { return s.pos }

// Heading returns the robot's current heading.
func (s *Sim) Heading() motion.Heading { return s.heading }

// Commands returns a copy of every command executed so far.
func (s *Sim) Commands() []motion.Command {
	out := make([]motion.Command, len(s.commands))
	copy(out, s.commands)
	return out
}

// Senses returns how many sensor reads were taken.
func (s *Sim) Senses() int { return s.senses }

// Obstacles returns the hidden obstacle cells in row-major order.
func (s *Sim) Obstacles() []grid.Cell {
	out := make([]grid.Cell, 0, len(s.obstacles))
	for c := range s.obstacles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// MoveForwardOneCell advances one cell along the current heading.
func (s *Sim) MoveForwardOneCell(ctx context.Context) error {
	next := s.heading.Ahead(s.pos)
	if s.blocked(next) {
		return fmt.Errorf("%w: %s is blocked ahead of %s", ErrCollision, next, s.pos)
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.logger.Debug().Stringer("from", s.pos).Stringer("to", next).Msg("move forward")
	s.pos = next
	s.commands = append(s.commands, motion.MoveForward)
	return nil
}

// TurnLeft90 rotates the robot a quarter turn counterclockwise.
func (s *Sim) TurnLeft90(ctx context.Context) error {
	return s.turn(ctx, -1, motion.TurnLeft)
}

// TurnRight90 rotates the robot a quarter turn clockwise.
func (s *Sim) TurnRight90(ctx context.Context) error {
	return s.turn(ctx, 1, motion.TurnRight)
}

func (s *Sim) turn(ctx context.Context, steps int, cmd motion.Command) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	next := s.heading.Rotate(steps)
	s.logger.Debug().Stringer("from", s.heading).Stringer("to", next).Msg(string(cmd))
	s.heading = next
	s.commands = append(s.commands, cmd)
	return nil
}

// SenseObstruction reports ObstacleDistance when the cell ahead is a hidden
// obstacle, a barrier or off the world, and motion.NoReading otherwise.
func (s *Sim) SenseObstruction(ctx context.Context) (motion.Reading, error) {
	if err := ctx.Err(); err != nil {
		return motion.NoReading, err
	}
	s.senses++
	ahead := s.heading.Ahead(s.pos)
	if s.blocked(ahead) {
		s.logger.Debug().Stringer("ahead", ahead).Float64("mm", float64(ObstacleDistance)).Msg("obstruction sensed")
		return ObstacleDistance, nil
	}
	return motion.NoReading, nil
}

func (s *Sim) blocked(c grid.Cell) bool {
	return !s.world.InBounds(c) || s.world.IsBarrier(c) || s.obstacles[c]
}

func (s *Sim) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
