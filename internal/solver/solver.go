package solver

import (
	"container/heap"
	"fmt"
	"slices"
	"strings"

	"github.com/danieljhkim/gridnav/internal/graph"
	"github.com/danieljhkim/gridnav/internal/grid"
)

// Result is a route from start to goal, both inclusive, and its total cost.
type Result struct {
	// Path is the ordered cell sequence; Path[0] is the start
	Path []grid.Cell `json:"path"`

	// Cost is the sum of the entry costs of every cell after the start
	Cost int `json:"cost"`
}

// Strategy selects a search algorithm.
type Strategy string

// Supported strategies.
const (
	StrategyDijkstra Strategy = "dijkstra"
	StrategyBFS      Strategy = "bfs"
)

// ParseStrategy converts a user-supplied name into a Strategy.
// An empty name selects StrategyDijkstra.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyDijkstra:
		return StrategyDijkstra, nil
	case StrategyBFS:
		return StrategyBFS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Solve dispatches to the search selected by s.
func Solve(s Strategy, g graph.Graph, start, goal grid.Cell) (Result, error) {
	switch s {
	case "", StrategyDijkstra:
		return Dijkstra(g, start, goal)
	case StrategyBFS:
		return BFS(g, start, goal)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(s))
	}
}

// Dijkstra returns the minimum-cost path from start to goal.
//
// The search stops as soon as the goal is extracted from the frontier, which
// is sound because edge costs are non-negative. Stale frontier entries left
// behind by later improvements are skipped on extraction.
func Dijkstra(g graph.Graph, start, goal grid.Cell) (Result, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return Result{}, err
	}
	if start == goal {
		return Result{Path: []grid.Cell{start}, Cost: 0}, nil
	}

	best := map[grid.Cell]int{start: 0}
	cameFrom := make(map[grid.Cell]grid.Cell)
	settled := make(map[grid.Cell]bool)

	var seq uint64
	pq := &frontier{{cell: start, cost: 0, seq: seq}}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(entry)
		if settled[cur.cell] {
			continue
		}
		settled[cur.cell] = true

		if cur.cell == goal {
			return Result{Path: reconstruct(cameFrom, start, goal), Cost: cur.cost}, nil
		}

		for _, e := range g.Neighbors(cur.cell) {
			if settled[e.To] {
				continue
			}
			next := cur.cost + e.Cost
			if known, ok := best[e.To]; ok && next >= known {
				continue
			}
			best[e.To] = next
			cameFrom[e.To] = cur.cell
			seq++
			heap.Push(pq, entry{cell: e.To, cost: next, seq: seq})
		}
	}

	return Result{}, fmt.Errorf("%w: %s -> %s", ErrNoPathFound, start, goal)
}

// BFS returns the path from start to goal with the fewest steps, ignoring
// terrain cost. Result.Cost is the number of steps.
func BFS(g graph.Graph, start, goal grid.Cell) (Result, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return Result{}, err
	}
	if start == goal {
		return Result{Path: []grid.Cell{start}, Cost: 0}, nil
	}

	cameFrom := map[grid.Cell]grid.Cell{start: start}
	queue := []grid.Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.Neighbors(cur) {
			if _, seen := cameFrom[e.To]; seen {
				continue
			}
			cameFrom[e.To] = cur
			if e.To == goal {
				path := reconstruct(cameFrom, start, goal)
				return Result{Path: path, Cost: len(path) - 1}, nil
			}
			queue = append(queue, e.To)
		}
	}

	return Result{}, fmt.Errorf("%w: %s -> %s", ErrNoPathFound, start, goal)
}

// PathCost validates that path walks graph edges and returns its total entry
// cost. A single-cell path costs 0.
func PathCost(g graph.Graph, path []grid.Cell) (int, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if !g.Has(path[0]) {
		return 0, fmt.Errorf("%w: %s is not traversable", ErrInvalidPath, path[0])
	}

	total := 0
	for i := 1; i < len(path); i++ {
		cost, ok := g.EdgeCost(path[i-1], path[i])
		if !ok {
			return 0, fmt.Errorf("%w: no edge %s -> %s", ErrInvalidPath, path[i-1], path[i])
		}
		total += cost
	}
	return total, nil
}

func checkEndpoints(g graph.Graph, start, goal grid.Cell) error {
	if !g.Has(start) {
		return fmt.Errorf("%w: start %s is off-grid or a barrier", ErrInvalidEndpoint, start)
	}
	if !g.Has(goal) {
		return fmt.Errorf("%w: goal %s is off-grid or a barrier", ErrInvalidEndpoint, goal)
	}
	return nil
}

// reconstruct walks predecessors from goal back to start.
func reconstruct(cameFrom map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Cell {
	path := []grid.Cell{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
