package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved run reports",
	Long:  `List, show and delete the run reports saved by gridnav run.`,
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newRunStore()
		if err != nil {
			return err
		}
		runs, err := store.List()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(runs)
		}

		PrintSection("Runs")
		if len(runs) == 0 {
			PrintEmptyState("No runs saved yet")
			return nil
		}
		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				r.ID,
				r.Scenario,
				string(r.Status),
				strconv.Itoa(r.Cycles),
				strconv.Itoa(r.Blocked),
				strconv.Itoa(r.Commands),
				r.FinishedAt.Local().Format(time.DateTime),
			})
		}
		PrintTable([]string{"ID", "SCENARIO", "STATUS", "CYCLES", "BLOCKED", "COMMANDS", "FINISHED"}, rows)
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a saved run report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newRunStore()
		if err != nil {
			return err
		}
		report, err := store.Load(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(report)
		}
		if report.Result == nil {
			return fmt.Errorf("run report %s has no result", args[0])
		}
		printRun(report)
		if len(report.Obstacles) > 0 {
			PrintLabelValue("Hidden obstacles", FormatCells(report.Obstacles, ", "))
		}
		return nil
	},
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <run-id>...",
	Short: "Delete saved run reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newRunStore()
		if err != nil {
			return err
		}
		for _, id := range args {
			if err := store.Delete(id); err != nil {
				return err
			}
		}

		if jsonOutput {
			return outputJSON(map[string][]string{"deleted": args})
		}
		PrintSuccess(fmt.Sprintf("Deleted %s", PrintCount(len(args), "run", "runs")))
		return nil
	},
}

func init() {
	runsCmd.AddCommand(runsLsCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRmCmd)
}
