package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/gridnav/internal/graph"
	"github.com/danieljhkim/gridnav/internal/grid"
)

type graphNode struct {
	Cell  grid.Cell    `json:"cell"`
	Edges []graph.Edge `json:"edges"`
}

type graphOutput struct {
	Scenario string      `json:"scenario"`
	Nodes    int         `json:"nodes"`
	Edges    int         `json:"edges"`
	Graph    []graphNode `json:"graph"`
}

var graphCmd = &cobra.Command{
	Use:   "graph [scenario-file]",
	Short: "Print the adjacency list built from a scenario's grid",
	Long: `Print every traversable cell with its neighbors and the cost of entering
each neighbor, in the order the solver explores them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScenario(args)
		if err != nil {
			return err
		}
		world, err := s.World()
		if err != nil {
			return err
		}

		g := graph.Build(world)
		output := graphOutput{
			Scenario: s.Name,
			Nodes:    len(g),
			Edges:    g.EdgeCount(),
			Graph:    make([]graphNode, 0, len(g)),
		}
		for _, c := range g.Cells() {
			edges := g.Neighbors(c)
			if edges == nil {
				edges = []graph.Edge{}
			}
			output.Graph = append(output.Graph, graphNode{Cell: c, Edges: edges})
		}

		if jsonOutput {
			return outputJSON(output)
		}

		PrintSection(fmt.Sprintf("Graph for %s", output.Scenario))
		PrintLabelValue("Nodes", fmt.Sprintf("%d", output.Nodes))
		PrintLabelValue("Edges", fmt.Sprintf("%d", output.Edges))
		fmt.Fprintln(out)
		for _, n := range output.Graph {
			parts := make([]string, len(n.Edges))
			for i, e := range n.Edges {
				parts[i] = fmt.Sprintf("%s:%d", e.To, e.Cost)
			}
			adj := strings.Join(parts, " ")
			if adj == "" {
				adj = "(isolated)"
			}
			fmt.Fprintf(out, "  %-8s %s\n", n.Cell, adj)
		}
		return nil
	},
}
