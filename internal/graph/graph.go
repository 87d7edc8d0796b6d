// Package graph turns a grid snapshot into the adjacency structure searched by
// the solver.
//
// Build is a pure function of the grid it is given: the engine rebuilds the
// graph from scratch on every planning cycle rather than patching it.
package graph

import (
	"slices"

	"github.com/danieljhkim/gridnav/internal/grid"
)

// Edge is a directed connection to a neighboring cell.
// Cost is the terrain value of To, charged on entry.
type Edge struct {
	To   grid.Cell `json:"to"`
	Cost int       `json:"cost"`
}

// Graph maps every traversable cell to its traversable neighbors.
type Graph map[grid.Cell][]Edge

// neighborOffsets is the fixed enumeration order: up, down, left, right.
// Downstream tie-breaking depends on it.
var neighborOffsets = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Build returns the graph of g's traversable cells. Diagonal moves are not
// represented.
func Build(g *grid.Grid) Graph {
	out := make(Graph, g.Rows()*g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := grid.At(r, c)
			if !g.Traversable(cell) {
				continue
			}

			edges := make([]Edge, 0, len(neighborOffsets))
			for _, d := range neighborOffsets {
				next := cell.Offset(d[0], d[1])
				if !g.Traversable(next) {
					continue
				}
				cost, _ := g.Value(next)
				edges = append(edges, Edge{To: next, Cost: cost})
			}
			out[cell] = edges
		}
	}
	return out
}

// Has reports whether c is a node of the graph.
func (gr Graph) Has(c grid.Cell) bool {
	_, ok := gr[c]
	return ok
}

// Neighbors returns the outgoing edges of c in enumeration order.
func (gr Graph) Neighbors(c grid.Cell) []Edge {
	return gr[c]
}

// EdgeCost returns the cost of the edge from -> to, if it exists.
func (gr Graph) EdgeCost(from, to grid.Cell) (int, bool) {
	for _, e := range gr[from] {
		if e.To == to {
			return e.Cost, true
		}
	}
	return 0, false
}

// Cells returns the nodes of the graph in row-major order.
func (gr Graph) Cells() []grid.Cell {
	cells := make([]grid.Cell, 0, len(gr))
	for c := range gr {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b grid.Cell) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return cells
}

// EdgeCount returns the number of directed edges.
func (gr Graph) EdgeCount() int {
	n := 0
	for _, edges := range gr {
		n += len(edges)
	}
	return n
}
