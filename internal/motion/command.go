package motion

// Command is a single actuator instruction.
type Command string

// Command kinds.
const (
	MoveForward Command = "move_forward"
	TurnLeft    Command = "turn_left"
	TurnRight   Command = "turn_right"
)

// Turns returns the shortest turn sequence from one heading to another.
// A half turn is always two right turns.
func Turns(from, to Heading) []Command {
	switch (int(to) - int(from) + 4) % 4 {
	case 1:
		return []Command{TurnRight}
	case 2:
		return []Command{TurnRight, TurnRight}
	case 3:
		return []Command{TurnLeft}
	default:
		return nil
	}
}

// CountCommands tallies commands by kind.
func CountCommands(cmds []Command) map[Command]int {
	out := make(map[Command]int, 3)
	for _, c := range cmds {
		out[c]++
	}
	return out
}
