package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/gridnav/internal/grid"
)

func TestBuild_NodesAreTraversableCells(t *testing.T) {
	g := grid.MustNew([][]int{
		{0, 1, 9},
		{9, 2, 3},
	})

	gr := Build(g)

	assert.Equal(t, []grid.Cell{
		grid.At(0, 0), grid.At(0, 1),
		grid.At(1, 1), grid.At(1, 2),
	}, gr.Cells())
	assert.False(t, gr.Has(grid.At(0, 2)))
	assert.False(t, gr.Has(grid.At(1, 0)))
}

func TestBuild_NeighborOrderAndEntryCost(t *testing.T) {
	g := grid.MustNew([][]int{
		{5, 1, 5},
		{2, 0, 3},
		{5, 4, 5},
	})

	gr := Build(g)

	// up, down, left, right; cost is the neighbor's terrain value
	assert.Equal(t, []Edge{
		{To: grid.At(0, 1), Cost: 1},
		{To: grid.At(2, 1), Cost: 4},
		{To: grid.At(1, 0), Cost: 2},
		{To: grid.At(1, 2), Cost: 3},
	}, gr.Neighbors(grid.At(1, 1)))
}

func TestBuild_SkipsBarriersAndOutOfBounds(t *testing.T) {
	g := grid.MustNew([][]int{
		{0, 9},
		{1, 0},
	})

	gr := Build(g)

	assert.Equal(t, []Edge{{To: grid.At(1, 0), Cost: 1}}, gr.Neighbors(grid.At(0, 0)))
	assert.Equal(t, []Edge{{To: grid.At(1, 0), Cost: 1}}, gr.Neighbors(grid.At(1, 1)))
	assert.Equal(t, 4, gr.EdgeCount())
}

func TestBuild_IsolatedCellHasNoEdges(t *testing.T) {
	g := grid.MustNew([][]int{
		{9, 9, 9},
		{9, 0, 9},
		{9, 9, 9},
	})

	gr := Build(g)

	require.True(t, gr.Has(grid.At(1, 1)))
	assert.Empty(t, gr.Neighbors(grid.At(1, 1)))
}

func TestBuild_PureFunctionOfSnapshot(t *testing.T) {
	g := grid.MustNew([][]int{
		{0, 1, 1},
		{1, 1, 1},
	})

	first := Build(g)
	assert.Equal(t, first, Build(g))

	_, err := g.MarkBarrier(grid.At(0, 1))
	require.NoError(t, err)
	second := Build(g)

	assert.True(t, first.Has(grid.At(0, 1)), "earlier graph must not observe later mutations")
	assert.False(t, second.Has(grid.At(0, 1)))
	_, ok := second.EdgeCost(grid.At(0, 0), grid.At(0, 1))
	assert.False(t, ok)
}

func TestEdgeCost(t *testing.T) {
	gr := Build(grid.MustNew([][]int{{0, 7}}))

	cost, ok := gr.EdgeCost(grid.At(0, 0), grid.At(0, 1))
	assert.True(t, ok)
	assert.Equal(t, 7, cost)

	cost, ok = gr.EdgeCost(grid.At(0, 1), grid.At(0, 0))
	assert.True(t, ok)
	assert.Equal(t, 0, cost)
}
