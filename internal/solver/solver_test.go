package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/gridnav/internal/graph"
	"github.com/danieljhkim/gridnav/internal/grid"
)

func solveGrid(t *testing.T, values [][]int, start, goal grid.Cell) (Result, error) {
	t.Helper()
	return Dijkstra(graph.Build(grid.MustNew(values)), start, goal)
}

func TestDijkstra_TwoByTwo(t *testing.T) {
	res, err := solveGrid(t, [][]int{{0, 1}, {9, 0}}, grid.At(0, 0), grid.At(1, 1))
	require.NoError(t, err)

	assert.Equal(t, []grid.Cell{grid.At(0, 0), grid.At(0, 1), grid.At(1, 1)}, res.Path)
	assert.Equal(t, 1, res.Cost)
}

func TestDijkstra_StartEqualsGoal(t *testing.T) {
	res, err := solveGrid(t, [][]int{{3, 4}, {5, 6}}, grid.At(1, 0), grid.At(1, 0))
	require.NoError(t, err)

	assert.Equal(t, []grid.Cell{grid.At(1, 0)}, res.Path)
	assert.Equal(t, 0, res.Cost)
}

func TestDijkstra_InvalidEndpoint(t *testing.T) {
	values := [][]int{
		{0, 1, 1},
		{1, 1, 9},
	}

	tests := []struct {
		name        string
		start, goal grid.Cell
	}{
		{name: "goal on barrier", start: grid.At(0, 0), goal: grid.At(1, 2)},
		{name: "start on barrier", start: grid.At(1, 2), goal: grid.At(0, 0)},
		{name: "goal off grid", start: grid.At(0, 0), goal: grid.At(5, 5)},
		{name: "start off grid", start: grid.At(-1, 0), goal: grid.At(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solveGrid(t, values, tt.start, tt.goal)
			assert.ErrorIs(t, err, ErrInvalidEndpoint)
		})
	}
}

func TestDijkstra_NoPathFound(t *testing.T) {
	values := [][]int{
		{0, 9, 1},
		{9, 9, 1},
		{1, 1, 1},
	}

	_, err := solveGrid(t, values, grid.At(0, 0), grid.At(2, 2))
	assert.ErrorIs(t, err, ErrNoPathFound)
	assert.NotErrorIs(t, err, ErrInvalidEndpoint)
}

func TestDijkstra_PrefersCheaperLongerRoute(t *testing.T) {
	values := [][]int{
		{0, 8, 0},
		{1, 9, 1},
		{1, 1, 1},
	}

	res, err := solveGrid(t, values, grid.At(0, 0), grid.At(0, 2))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Cost)
	assert.Len(t, res.Path, 7)
}

func TestDijkstra_TieBreakIsInsertionOrder(t *testing.T) {
	values := [][]int{{0, 0}, {0, 0}}

	first, err := solveGrid(t, values, grid.At(0, 0), grid.At(1, 1))
	require.NoError(t, err)

	// "down" is enumerated before "right", so it enters the frontier first
	assert.Equal(t, []grid.Cell{grid.At(0, 0), grid.At(1, 0), grid.At(1, 1)}, first.Path)

	for range 10 {
		again, err := solveGrid(t, values, grid.At(0, 0), grid.At(1, 1))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDijkstra_OriginalDemoGrid(t *testing.T) {
	values := [][]int{
		{0, 1, 1, 9, 1, 1, 1, 3, 1},
		{1, 9, 1, 9, 1, 9, 1, 3, 1},
		{5, 9, 1, 9, 1, 9, 1, 3, 1},
		{6, 9, 1, 9, 1, 9, 1, 3, 1},
		{2, 9, 1, 1, 1, 9, 1, 3, 3},
		{2, 9, 9, 9, 9, 9, 1, 1, 1},
		{3, 5, 2, 6, 1, 4, 3, 2, 1},
	}
	g := graph.Build(grid.MustNew(values))

	res, err := Dijkstra(g, grid.At(0, 0), grid.At(6, 8))
	require.NoError(t, err)

	cost, err := PathCost(g, res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, cost)
	assert.Equal(t, grid.At(0, 0), res.Path[0])
	assert.Equal(t, grid.At(6, 8), res.Path[len(res.Path)-1])
	assert.Equal(t, bruteForceCost(g, grid.At(0, 0), grid.At(6, 8)), res.Cost)
}

func TestDijkstra_RandomGridsAreOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		rows, cols := 2+rng.Intn(3), 2+rng.Intn(3)
		values := make([][]int, rows)
		for r := range values {
			values[r] = make([]int, cols)
			for c := range values[r] {
				if rng.Intn(5) == 0 {
					values[r][c] = grid.Barrier
				} else {
					values[r][c] = rng.Intn(6)
				}
			}
		}
		start, goal := grid.At(0, 0), grid.At(rows-1, cols-1)
		values[0][0], values[rows-1][cols-1] = 0, 1
		g := graph.Build(grid.MustNew(values))

		want := bruteForceCost(g, start, goal)
		res, err := Dijkstra(g, start, goal)
		if want < 0 {
			assert.ErrorIs(t, err, ErrNoPathFound, "grid %v", values)
			continue
		}
		require.NoError(t, err, "grid %v", values)
		assert.Equal(t, want, res.Cost, "grid %v", values)

		cost, err := PathCost(g, res.Path)
		require.NoError(t, err, "every step must be a graph edge")
		assert.Equal(t, res.Cost, cost, "reported cost must equal the sum of entry costs")
	}
}

func TestBFS_FewestSteps(t *testing.T) {
	values := [][]int{
		{0, 8, 0},
		{1, 9, 1},
		{1, 1, 1},
	}
	g := graph.Build(grid.MustNew(values))

	res, err := BFS(g, grid.At(0, 0), grid.At(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{grid.At(0, 0), grid.At(0, 1), grid.At(0, 2)}, res.Path)
	assert.Equal(t, 2, res.Cost)

	res, err = BFS(g, grid.At(2, 2), grid.At(2, 2))
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{grid.At(2, 2)}, res.Path)

	_, err = BFS(g, grid.At(1, 1), grid.At(0, 0))
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}

func TestBFS_MatchesDijkstraOnUniformTerrain(t *testing.T) {
	values := [][]int{
		{1, 1, 1, 1},
		{1, 9, 9, 1},
		{1, 1, 9, 1},
		{9, 1, 1, 1},
	}
	g := graph.Build(grid.MustNew(values))

	d, err := Dijkstra(g, grid.At(0, 0), grid.At(3, 3))
	require.NoError(t, err)
	b, err := BFS(g, grid.At(0, 0), grid.At(3, 3))
	require.NoError(t, err)

	assert.Equal(t, len(d.Path), len(b.Path))
	assert.Equal(t, d.Cost, b.Cost)
}

func TestSolve_Strategies(t *testing.T) {
	g := graph.Build(grid.MustNew([][]int{{0, 5, 0}}))

	for _, s := range []Strategy{"", StrategyDijkstra, StrategyBFS} {
		res, err := Solve(s, g, grid.At(0, 0), grid.At(0, 2))
		require.NoError(t, err, "strategy %q", s)
		assert.Len(t, res.Path, 3)
	}

	_, err := Solve("astar", g, grid.At(0, 0), grid.At(0, 2))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "", want: StrategyDijkstra},
		{in: "Dijkstra", want: StrategyDijkstra},
		{in: " bfs ", want: StrategyBFS},
		{in: "greedy", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownStrategy)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPathCost_RejectsInvalidPaths(t *testing.T) {
	g := graph.Build(grid.MustNew([][]int{{0, 1}, {9, 2}}))

	_, err := PathCost(g, nil)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = PathCost(g, []grid.Cell{grid.At(1, 0)})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = PathCost(g, []grid.Cell{grid.At(0, 0), grid.At(1, 1)})
	assert.ErrorIs(t, err, ErrInvalidPath)

	cost, err := PathCost(g, []grid.Cell{grid.At(0, 0), grid.At(0, 1), grid.At(1, 1)})
	require.NoError(t, err)
	assert.Equal(t, 3, cost)
}

// bruteForceCost enumerates every simple path and returns the cheapest cost,
// or -1 when goal is unreachable. Only usable on tiny graphs.
func bruteForceCost(g graph.Graph, start, goal grid.Cell) int {
	best := -1
	visited := map[grid.Cell]bool{start: true}

	var walk func(cur grid.Cell, cost int)
	walk = func(cur grid.Cell, cost int) {
		if best >= 0 && cost >= best {
			return
		}
		if cur == goal {
			best = cost
			return
		}
		for _, e := range g.Neighbors(cur) {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			walk(e.To, cost+e.Cost)
			visited[e.To] = false
		}
	}
	walk(start, 0)
	return best
}
