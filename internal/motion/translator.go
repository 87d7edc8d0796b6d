package motion

import (
	"context"
	"fmt"

	"github.com/danieljhkim/gridnav/internal/grid"
)

// Outcome classifies how a traversal ended.
type Outcome string

const (
	// OutcomeCompleted means every segment was traversed.
	OutcomeCompleted Outcome = "completed"

	// OutcomeObstructed means the sensor reported a blockage and the agent
	// stopped without entering the next cell.
	OutcomeObstructed Outcome = "obstructed"

	// OutcomeTrivial means the path had fewer than two cells; nothing ran.
	OutcomeTrivial Outcome = "trivial"
)

// Traversal is the record of one traversal attempt.
type Traversal struct {
	// Outcome is how the attempt ended
	Outcome Outcome `json:"outcome"`

	// Index is the segment (path[Index] -> path[Index+1]) at which an
	// obstructed traversal stopped; -1 otherwise
	Index int `json:"index"`

	// Commands lists every command issued, in order
	Commands []Command `json:"commands"`

	// Heading is the agent's heading after the last command
	Heading Heading `json:"heading"`

	// Reached is the last cell the agent occupied
	Reached grid.Cell `json:"reached"`

	// Moves is the number of cells advanced
	Moves int `json:"moves"`
}

// Translator turns paths into actuator commands while tracking heading.
type Translator struct {
	actuator  Actuator
	sensor    Sensor
	clearance Reading
	reorient  *Heading
}

// Option configures a Translator.
type Option func(*Translator)

// WithClearance sets the distance below which a sensor reading is blocked.
func WithClearance(mm Reading) Option {
	return func(t *Translator) {
		t.clearance = mm
	}
}

// WithReorient sets the heading the agent turns back to after stopping at an
// obstruction.
func WithReorient(h Heading) Option {
	return func(t *Translator) {
		t.reorient = &h
	}
}

// WithoutReorient leaves the agent facing the obstruction when it stops.
func WithoutReorient() Option {
	return func(t *Translator) {
		t.reorient = nil
	}
}

// NewTranslator creates a Translator. By default the clearance is
// DefaultClearance and the agent reorients to East after an obstruction.
func NewTranslator(actuator Actuator, sensor Sensor, opts ...Option) *Translator {
	east := East
	t := &Translator{
		actuator:  actuator,
		sensor:    sensor,
		clearance: DefaultClearance,
		reorient:  &east,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Traverse drives the agent along path starting from the initial heading.
//
// A path shorter than two cells yields OutcomeTrivial without issuing any
// command. The path is validated before the first command, so a
// discontinuous path never causes partial motion. Collaborator errors abort
// the traversal; the returned Traversal still describes what was executed.
func (t *Translator) Traverse(ctx context.Context, path []grid.Cell, initial Heading) (Traversal, error) {
	if !initial.Valid() {
		return Traversal{}, fmt.Errorf("%w: %d", ErrInvalidHeading, int(initial))
	}

	tr := Traversal{Outcome: OutcomeTrivial, Index: -1, Heading: initial}
	if len(path) > 0 {
		tr.Reached = path[0]
	}
	if len(path) < 2 {
		return tr, nil
	}

	wants := make([]Heading, len(path)-1)
	for i := range wants {
		h, err := HeadingOf(path[i], path[i+1])
		if err != nil {
			return tr, err
		}
		wants[i] = h
	}

	for i, want := range wants {
		if err := t.issueAll(ctx, &tr, Turns(tr.Heading, want)); err != nil {
			return tr, err
		}
		tr.Heading = want

		reading, err := t.sensor.SenseObstruction(ctx)
		if err != nil {
			return tr, fmt.Errorf("motion: failed to sense at %s: %w", path[i], err)
		}
		if reading.Blocked(t.clearance) {
			if t.reorient != nil {
				if err := t.issueAll(ctx, &tr, Turns(tr.Heading, *t.reorient)); err != nil {
					return tr, err
				}
				tr.Heading = *t.reorient
			}
			tr.Outcome = OutcomeObstructed
			tr.Index = i
			return tr, nil
		}

		if err := t.issue(ctx, &tr, MoveForward); err != nil {
			return tr, err
		}
		tr.Moves++
		tr.Reached = path[i+1]
	}

	tr.Outcome = OutcomeCompleted
	return tr, nil
}

func (t *Translator) issueAll(ctx context.Context, tr *Traversal, cmds []Command) error {
	for _, cmd := range cmds {
		if err := t.issue(ctx, tr, cmd); err != nil {
			return err
		}
	}
	return nil
}

// issue runs a single command and records it once it has completed.
func (t *Translator) issue(ctx context.Context, tr *Traversal, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch cmd {
	case MoveForward:
		err = t.actuator.MoveForwardOneCell(ctx)
	case TurnLeft:
		err = t.actuator.TurnLeft90(ctx)
	case TurnRight:
		err = t.actuator.TurnRight90(ctx)
	default:
		return fmt.Errorf("motion: unknown command %q", cmd)
	}
	if err != nil {
		return fmt.Errorf("motion: failed to %s: %w", cmd, err)
	}

	tr.Commands = append(tr.Commands, cmd)
	return nil
}

// Plan returns the commands needed to traverse path assuming nothing blocks
// the way, and the final heading. It does not drive any hardware.
func Plan(path []grid.Cell, initial Heading) ([]Command, Heading, error) {
	tr, err := NewTranslator(nopActuator{}, clearSensor{}).Traverse(context.Background(), path, initial)
	if err != nil {
		return nil, initial, err
	}
	return tr.Commands, tr.Heading, nil
}
