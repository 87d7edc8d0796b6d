// Package solver computes minimum-cost routes over a graph.Graph.
//
// Dijkstra is the default strategy because terrain values encode per-cell
// entry cost. BFS ignores terrain and minimizes the number of steps; it is
// only equivalent when every terrain value is uniform.
//
// Both strategies are deterministic for identical input: frontier ties are
// broken by insertion order, and neighbors are visited in the graph's fixed
// enumeration order.
package solver
