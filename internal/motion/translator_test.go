package motion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/gridnav/internal/grid"
)

// fakeRig implements Actuator and Sensor and records every call in order.
type fakeRig struct {
	calls    []string
	blockAt  map[int]bool // sense call index -> blocked
	senses   int
	failOn   string
	senseErr error
}

func newFakeRig() *fakeRig {
	return &fakeRig{blockAt: make(map[int]bool)}
}

func (r *fakeRig) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.failOn {
		return errors.New("motor stalled")
	}
	return nil
}

func (r *fakeRig) MoveForwardOneCell(context.Context) error { return r.record("move") }
func (r *fakeRig) TurnLeft90(context.Context) error         { return r.record("left") }
func (r *fakeRig) TurnRight90(context.Context) error        { return r.record("right") }

func (r *fakeRig) SenseObstruction(context.Context) (Reading, error) {
	r.calls = append(r.calls, "sense")
	if r.senseErr != nil {
		return NoReading, r.senseErr
	}
	idx := r.senses
	r.senses++
	if r.blockAt[idx] {
		return 120, nil
	}
	return NoReading, nil
}

func cells(pairs ...[2]int) []grid.Cell {
	out := make([]grid.Cell, len(pairs))
	for i, p := range pairs {
		out[i] = grid.At(p[0], p[1])
	}
	return out
}

func TestTraverse_StraightLine(t *testing.T) {
	rig := newFakeRig()
	tr, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), East)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, tr.Outcome)
	assert.Equal(t, -1, tr.Index)
	assert.Equal(t, []Command{MoveForward, MoveForward}, tr.Commands)
	assert.Equal(t, []string{"sense", "move", "sense", "move"}, rig.calls)
	assert.Equal(t, East, tr.Heading)
	assert.Equal(t, grid.At(0, 2), tr.Reached)
	assert.Equal(t, 2, tr.Moves)
}

func TestTraverse_TurnsBeforeSensingAndMoving(t *testing.T) {
	rig := newFakeRig()
	path := cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 0}, [2]int{0, 0})

	tr, err := NewTranslator(rig, rig).Traverse(context.Background(), path, East)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, tr.Outcome)
	assert.Equal(t, []string{
		"sense", "move",
		"right", "sense", "move",
		"right", "sense", "move",
		"right", "sense", "move",
	}, rig.calls)
	assert.Equal(t, North, tr.Heading)
}

func TestTraverse_HalfTurn(t *testing.T) {
	rig := newFakeRig()
	tr, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{0, 1}, [2]int{0, 0}), East)
	require.NoError(t, err)

	assert.Equal(t, []Command{TurnRight, TurnRight, MoveForward}, tr.Commands)
	assert.Equal(t, West, tr.Heading)
}

func TestTraverse_LeftTurn(t *testing.T) {
	rig := newFakeRig()
	tr, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{1, 0}, [2]int{0, 0}), East)
	require.NoError(t, err)

	assert.Equal(t, []Command{TurnLeft, MoveForward}, tr.Commands)
	assert.Equal(t, North, tr.Heading)
}

func TestTraverse_TrivialPath(t *testing.T) {
	for _, path := range [][]grid.Cell{nil, cells([2]int{3, 3})} {
		rig := newFakeRig()
		tr, err := NewTranslator(rig, rig).Traverse(context.Background(), path, South)
		require.NoError(t, err, "a short path is not a navigation error")

		assert.Equal(t, OutcomeTrivial, tr.Outcome)
		assert.Empty(t, tr.Commands)
		assert.Empty(t, rig.calls)
		assert.Equal(t, South, tr.Heading)
	}
}

func TestTraverse_ObstructedReorientsToEast(t *testing.T) {
	rig := newFakeRig()
	rig.blockAt[1] = true
	path := cells([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})

	tr, err := NewTranslator(rig, rig).Traverse(context.Background(), path, East)
	require.NoError(t, err)

	assert.Equal(t, OutcomeObstructed, tr.Outcome)
	assert.Equal(t, 1, tr.Index)
	assert.Equal(t, grid.At(1, 0), tr.Reached)
	assert.Equal(t, 1, tr.Moves)
	// face south, move, face south again (no turn), blocked, turn back east
	assert.Equal(t, []string{"right", "sense", "move", "sense", "left"}, rig.calls)
	assert.Equal(t, East, tr.Heading)
}

func TestTraverse_ObstructedWithoutReorient(t *testing.T) {
	rig := newFakeRig()
	rig.blockAt[0] = true
	path := cells([2]int{0, 0}, [2]int{1, 0})

	tr, err := NewTranslator(rig, rig, WithoutReorient()).Traverse(context.Background(), path, East)
	require.NoError(t, err)

	assert.Equal(t, OutcomeObstructed, tr.Outcome)
	assert.Equal(t, 0, tr.Index)
	assert.Equal(t, grid.At(0, 0), tr.Reached)
	assert.Equal(t, []Command{TurnRight}, tr.Commands)
	assert.Equal(t, South, tr.Heading)
	assert.NotContains(t, rig.calls, "move")
}

func TestTraverse_CustomReorientHeading(t *testing.T) {
	rig := newFakeRig()
	rig.blockAt[0] = true

	tr, err := NewTranslator(rig, rig, WithReorient(West)).Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}), East)
	require.NoError(t, err)

	assert.Equal(t, []Command{TurnRight, TurnRight}, tr.Commands)
	assert.Equal(t, West, tr.Heading)
}

func TestTraverse_Clearance(t *testing.T) {
	tests := []struct {
		name      string
		reading   Reading
		clearance Reading
		want      Outcome
	}{
		{name: "no reading is clear", reading: NoReading, clearance: 200, want: OutcomeCompleted},
		{name: "far reading is clear", reading: 200, clearance: 200, want: OutcomeCompleted},
		{name: "near reading is blocked", reading: 199, clearance: 200, want: OutcomeObstructed},
		{name: "touching is blocked", reading: 0, clearance: 200, want: OutcomeObstructed},
		{name: "custom clearance", reading: 150, clearance: 100, want: OutcomeCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sensor := SensorFunc(func(context.Context) (Reading, error) { return tt.reading, nil })
			tr, err := NewTranslator(nopActuator{}, sensor, WithClearance(tt.clearance)).
				Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}), East)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Outcome)
		})
	}
}

func TestTraverse_DiscontinuousPathIssuesNothing(t *testing.T) {
	rig := newFakeRig()
	path := cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 2})

	_, err := NewTranslator(rig, rig).Traverse(context.Background(), path, East)
	assert.ErrorIs(t, err, ErrDiscontinuousPath)
	assert.Empty(t, rig.calls)
}

func TestTraverse_InvalidHeading(t *testing.T) {
	rig := newFakeRig()
	_, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}), Heading(7))
	assert.ErrorIs(t, err, ErrInvalidHeading)
}

func TestTraverse_CollaboratorErrors(t *testing.T) {
	t.Run("actuator", func(t *testing.T) {
		rig := newFakeRig()
		rig.failOn = "move"

		tr, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}), East)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "motor stalled")
		assert.Empty(t, tr.Commands, "a failed command is not recorded")
	})

	t.Run("sensor", func(t *testing.T) {
		rig := newFakeRig()
		sentinel := errors.New("sensor offline")
		rig.senseErr = sentinel

		_, err := NewTranslator(rig, rig).Traverse(context.Background(), cells([2]int{0, 0}, [2]int{0, 1}), East)
		assert.ErrorIs(t, err, sentinel)
	})
}

func TestTraverse_ContextCancelled(t *testing.T) {
	rig := newFakeRig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTranslator(rig, rig).Traverse(ctx, cells([2]int{0, 0}, [2]int{1, 0}), East)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, rig.calls, "right")
}

func TestPlan(t *testing.T) {
	path := cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{2, 2})

	cmds, final, err := Plan(path, East)
	require.NoError(t, err)

	assert.Equal(t, []Command{MoveForward, TurnRight, MoveForward, MoveForward, TurnLeft, MoveForward}, cmds)
	assert.Equal(t, East, final)

	_, _, err = Plan(cells([2]int{0, 0}, [2]int{2, 0}), East)
	assert.ErrorIs(t, err, ErrDiscontinuousPath)
}

func TestBoolSensor(t *testing.T) {
	blocked := BoolSensor(func(context.Context) (bool, error) { return true, nil })
	r, err := blocked.SenseObstruction(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Blocked(DefaultClearance))

	free := BoolSensor(func(context.Context) (bool, error) { return false, nil })
	r, err = free.SenseObstruction(context.Background())
	require.NoError(t, err)
	assert.False(t, r.Blocked(DefaultClearance))
}

func TestCountCommands(t *testing.T) {
	counts := CountCommands([]Command{MoveForward, TurnLeft, MoveForward})
	assert.Equal(t, 2, counts[MoveForward])
	assert.Equal(t, 1, counts[TurnLeft])
	assert.Equal(t, 0, counts[TurnRight])
}
