// Package motion converts a planned cell path into actuator commands.
//
// The Translator owns the agent's heading for the duration of one traversal.
// Before every segment it emits the turns needed to face the next cell, asks
// the Sensor whether the way is clear, and only then moves forward. All
// collaborator calls block; a command is never issued before the previous one
// has returned.
//
// Turn rule: headings are numbered clockwise (North, East, South, West). The
// difference (want - current) mod 4 selects the turns: 1 is one right turn,
// 3 is one left turn, 2 is two right turns, 0 is none.
package motion
