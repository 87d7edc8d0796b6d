// Package grid holds the raw terrain model the planner works on.
//
// A Grid is a rectangular matrix of terrain values addressed by Cell. The value
// Barrier marks a cell as impassable; any other non-negative value is the cost
// charged for entering that cell.
//
// Key concepts:
//   - Cell: value-typed (row, column) coordinate, usable directly as a map key
//   - Grid: owned terrain matrix whose only mutation is MarkBarrier
//   - Barriers only accumulate; a cell is never unmarked
package grid
