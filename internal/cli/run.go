package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/gridnav/internal/config"
	"github.com/danieljhkim/gridnav/internal/engine"
	"github.com/danieljhkim/gridnav/internal/hash"
	"github.com/danieljhkim/gridnav/internal/metrics"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/robot"
	"github.com/danieljhkim/gridnav/internal/solver"
	"github.com/danieljhkim/gridnav/internal/state"
)

var (
	runStrategy   string
	runHeading    string
	runClearance  float64
	runReorient   string
	runMaxReplans int
	runStepDelay  time.Duration
	runNoSave     bool
	runMetrics    bool
)

// runOutput is the JSON shape of gridnav run.
type runOutput struct {
	Report  *state.RunReport `json:"report"`
	SavedTo string           `json:"saved_to,omitempty"`
	Metrics []metrics.Sample `json:"metrics,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run [scenario-file]",
	Short: "Drive the simulated robot to the goal, replanning around obstacles",
	Long: `Run a scenario end to end against the simulated robot.

The scenario file may be TOML or YAML. Without a file the built-in demo grid is
used. Each run is saved as a report under ~/.gridnav/runs unless --no-save is
given.`,
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

		logger, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		rec := metrics.New()
		sim := robot.NewSim(world, s.Start, s.Heading,
			robot.WithObstacles(s.Obstacles...),
			robot.WithStepDelay(s.StepDelay),
			robot.WithLogger(logger.With().Str("component", "robot").Logger()),
		)
		eng := engine.New(sim, sim,
			engine.WithLogger(logger.With().Str("component", "engine").Logger()),
			engine.WithMetrics(rec),
			engine.WithStrategy(s.Strategy),
			engine.WithClearance(s.Clearance),
			engine.WithReorient(s.Reorient),
			engine.WithMaxReplans(s.MaxReplans),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		result, navErr := eng.Navigate(ctx, &engine.NavigateRequest{
			Grid:    world,
			Start:   s.Start,
			Goal:    s.Goal,
			Heading: s.Heading,
		})
		if result == nil {
			return navErr
		}

		report := state.NewRunReport(s.Name, s.Obstacles, result)
		if len(args) > 0 {
			digest, err := hash.NewSHA256Hasher().HashFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash scenario file: %w", err)
			}
			report.ScenarioDigest = digest
		}
		output := runOutput{Report: report}
		if !runNoSave {
			store, err := newRunStore()
			if err == nil {
				err = store.Save(report)
			}
			if err != nil {
				logger.Error().Err(err).Str("run_id", result.RunID).Msg("failed to save run report")
				if navErr == nil {
					return err
				}
			} else {
				output.SavedTo = result.RunID
			}
		}
		if runMetrics {
			samples, err := rec.Snapshot()
			if err != nil {
				return fmt.Errorf("failed to gather metrics: %w", err)
			}
			output.Metrics = samples
		}

		if jsonOutput {
			if err := outputJSON(output); err != nil {
				return err
			}
			return navErr
		}

		printRun(report)
		if output.SavedTo != "" {
			PrintLabelValue("Report", output.SavedTo)
		}
		if runMetrics {
			PrintSection("Metrics")
			PrintMetrics(output.Metrics)
		}
		return navErr
	},
}

// applyScenarioFlags overrides scenario fields with the flags the user set.
func applyScenarioFlags(cmd *cobra.Command, s *config.Scenario) error {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		strategy, err := solver.ParseStrategy(runStrategy)
		if err != nil {
			return err
		}
		s.Strategy = strategy
	}
	if flags.Changed("heading") {
		h, err := motion.ParseHeading(runHeading)
		if err != nil {
			return err
		}
		s.Heading = h
	}
	if flags.Changed("clearance") {
		s.Clearance = motion.Reading(runClearance)
	}
	if flags.Changed("reorient") {
		if strings.EqualFold(runReorient, "none") {
			s.Reorient = nil
		} else {
			h, err := motion.ParseHeading(runReorient)
			if err != nil {
				return err
			}
			s.Reorient = &h
		}
	}
	if flags.Changed("max-replans") {
		s.MaxReplans = runMaxReplans
	}
	if flags.Changed("step-delay") {
		s.StepDelay = runStepDelay
	}
	return s.Validate()
}

func printRun(report *state.RunReport) {
	res := report.Result

	PrintSection(fmt.Sprintf("Run %s", res.RunID))
	PrintLabelValue("Scenario", report.Scenario)
	PrintLabelValue("Strategy", string(res.Strategy))
	PrintLabelValue("Start", fmt.Sprintf("%s facing %s", res.Start, res.Heading))
	PrintLabelValue("Goal", res.Goal.String())
	fmt.Fprintln(out)

	if len(res.Cycles) > 0 {
		rows := make([][]string, 0, len(res.Cycles))
		for _, c := range res.Cycles {
			blocked := "-"
			if c.Blocked != nil {
				blocked = c.Blocked.String()
			}
			rows = append(rows, []string{
				strconv.Itoa(c.Index),
				c.Start.String(),
				strconv.Itoa(c.Cost),
				strconv.Itoa(len(c.Path)),
				string(c.Outcome),
				strconv.Itoa(len(c.Commands)),
				blocked,
			})
		}
		PrintTable([]string{"CYCLE", "FROM", "COST", "CELLS", "OUTCOME", "COMMANDS", "BLOCKED"}, rows)
		fmt.Fprintln(out)
	}

	if final, err := res.FinalGrid(); err == nil {
		PrintSubsection("Route driven:")
		PrintGrid(final, res.Start, res.Goal, res.Trail(), res.Blocked)
		fmt.Fprintln(out)
	}

	summary := fmt.Sprintf("%s after %s and %s (entry cost %d)",
		res.Reached, PrintCount(len(res.Cycles), "cycle", "cycles"),
		PrintCount(res.TotalCommands, "command", "commands"), res.Traveled)
	if res.Succeeded() {
		PrintSuccess("Reached goal " + summary)
	} else {
		PrintWarning(fmt.Sprintf("Stopped (%s) at %s", res.Status, summary))
	}
}

func init() {
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&runClearance, "clearance", float64(motion.DefaultClearance), "Sensor distance in mm below which the way is blocked")
	runCmd.Flags().StringVar(&runReorient, "reorient", "east", "Heading to face after an obstruction, or none")
	runCmd.Flags().IntVar(&runMaxReplans, "max-replans", 0, "Give up after this many replans (0 means no limit)")
	runCmd.Flags().DurationVar(&runStepDelay, "step-delay", 0, "Simulated duration of each robot command")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not save a run report")
	runCmd.Flags().BoolVar(&runMetrics, "metrics", false, "Print the metrics gathered during the run")
}

// addScenarioFlags registers the flags shared by commands that solve a
// scenario.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runStrategy, "strategy", "s", string(solver.StrategyDijkstra), "Search strategy (dijkstra or bfs)")
	cmd.Flags().StringVar(&runHeading, "heading", "east", "Initial heading (north, east, south, west)")
}
