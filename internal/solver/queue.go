package solver

import "github.com/danieljhkim/gridnav/internal/grid"

// entry is a frontier element. seq records insertion order so that entries
// of equal cost pop first-in first-out.
type entry struct {
	cell grid.Cell
	cost int
	seq  uint64
}

// frontier is a min-heap of entries ordered by (cost, seq).
// It implements container/heap.Interface.
type frontier []entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(entry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
