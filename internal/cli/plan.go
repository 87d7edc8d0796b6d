package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/gridnav/internal/graph"
	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/hash"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/solver"
)

// planOutput is the JSON shape of gridnav plan.
type planOutput struct {
	Scenario        string           `json:"scenario"`
	Strategy        solver.Strategy  `json:"strategy"`
	GridFingerprint string           `json:"grid_fingerprint"`
	Start           grid.Cell        `json:"start"`
	Goal            grid.Cell        `json:"goal"`
	Heading         motion.Heading   `json:"heading"`
	Path            []grid.Cell      `json:"path"`
	Cost            int              `json:"cost"`
	Commands        []motion.Command `json:"commands"`
	FinalHeading    motion.Heading   `json:"final_heading"`
}

var planCmd = &cobra.Command{
	Use:   "plan [scenario-file]",
	Short: "Solve a scenario once and show the path and commands without moving",
	Long: `Plan a route on the known grid and translate it into robot commands,
assuming nothing blocks the way. Hidden obstacles are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScenario(args)
		if err != nil {
			return err
		}
		if err := applyScenarioFlags(cmd, s); err != nil {
			return err
		}
		world, err := s.World()
		if err != nil {
			return err
		}

		res, err := solver.Solve(s.Strategy, graph.Build(world), s.Start, s.Goal)
		if err != nil {
			return fmt.Errorf("failed to plan: %w", err)
		}
		commands, final, err := motion.Plan(res.Path, s.Heading)
		if err != nil {
			return fmt.Errorf("failed to translate path: %w", err)
		}

		output := planOutput{
			Scenario:        s.Name,
			Strategy:        s.Strategy,
			GridFingerprint: hash.NewSHA256Hasher().HashGrid(world),
			Start:           s.Start,
			Goal:            s.Goal,
			Heading:         s.Heading,
			Path:            res.Path,
			Cost:            res.Cost,
			Commands:        commands,
			FinalHeading:    final,
		}
		if output.Commands == nil {
			output.Commands = []motion.Command{}
		}
		if jsonOutput {
			return outputJSON(output)
		}

		PrintSection("Dry Run")
		PrintLabelValue("Scenario", output.Scenario)
		PrintLabelValue("Strategy", string(output.Strategy))
		PrintLabelValue("Cost", fmt.Sprintf("%d", output.Cost))
		PrintLabelValue("Path", FormatCells(output.Path, " -> "))
		PrintLabelValue("Final heading", output.FinalHeading.String())
		fmt.Fprintln(out)

		PrintSubsection(fmt.Sprintf("Would issue %s:", PrintCount(len(commands), "command", "commands")))
		PrintList(summarizeCommands(commands), 1)
		fmt.Fprintln(out)

		PrintSubsection("Route:")
		PrintGrid(world, s.Start, s.Goal, res.Path, nil)
		return nil
	},
}

// summarizeCommands collapses runs of the same command, e.g. "move_forward x3".
func summarizeCommands(cmds []motion.Command) []string {
	var lines []string
	for i := 0; i < len(cmds); {
		j := i
		for j < len(cmds) && cmds[j] == cmds[i] {
			j++
		}
		line := string(cmds[i])
		if n := j - i; n > 1 {
			line = fmt.Sprintf("%s x%d", line, n)
		}
		lines = append(lines, line)
		i = j
	}
	if len(lines) == 0 {
		return []string{"(none)"}
	}
	return lines
}

func init() {
	addScenarioFlags(planCmd)
}
