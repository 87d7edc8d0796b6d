package motion

import "context"

// Actuator drives the agent. Each call returns once the physical motion has
// completed.
type Actuator interface {
	// MoveForwardOneCell advances one cell along the current heading.
	MoveForwardOneCell(ctx context.Context) error

	// TurnLeft90 rotates a quarter turn counter-clockwise in place.
	TurnLeft90(ctx context.Context) error

	// TurnRight90 rotates a quarter turn clockwise in place.
	TurnRight90(ctx context.Context) error
}

// Sensor reports what lies directly ahead of the agent.
type Sensor interface {
	// SenseObstruction returns the distance to the nearest obstacle ahead.
	SenseObstruction(ctx context.Context) (Reading, error)
}

// Reading is a distance in millimetres. Negative values mean nothing was
// detected.
type Reading float64

// NoReading is returned when no obstacle is in range.
const NoReading Reading = -1

// DefaultClearance is the distance below which a reading counts as blocked.
const DefaultClearance Reading = 200

// Blocked reports whether r is a real reading closer than clearance.
func (r Reading) Blocked(clearance Reading) bool {
	return r >= 0 && r < clearance
}

// SensorFunc adapts a function to the Sensor interface.
type SensorFunc func(ctx context.Context) (Reading, error)

// SenseObstruction calls f.
func (f SensorFunc) SenseObstruction(ctx context.Context) (Reading, error) {
	return f(ctx)
}

// BoolSensor adapts a boolean obstruction probe to the Sensor interface.
// A blocked result reads as distance 0, clear as NoReading.
type BoolSensor func(ctx context.Context) (bool, error)

// SenseObstruction calls b and converts its answer to a Reading.
func (b BoolSensor) SenseObstruction(ctx context.Context) (Reading, error) {
	blocked, err := b(ctx)
	if err != nil {
		return NoReading, err
	}
	if blocked {
		return 0, nil
	}
	return NoReading, nil
}

// clearSensor never reports an obstruction.
type clearSensor struct{}

func (clearSensor) SenseObstruction(context.Context) (Reading, error) { return NoReading, nil }

// nopActuator accepts every command without side effects.
type nopActuator struct{}

func (nopActuator) MoveForwardOneCell(context.Context) error { return nil }
func (nopActuator) TurnLeft90(context.Context) error         { return nil }
func (nopActuator) TurnRight90(context.Context) error        { return nil }
