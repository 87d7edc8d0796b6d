package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/gridnav/internal/grid"
	"github.com/danieljhkim/gridnav/internal/motion"
	"github.com/danieljhkim/gridnav/internal/solver"
)

// ErrInvalidScenario indicates a scenario file could not be turned into a
// runnable scenario.
var ErrInvalidScenario = errors.New("invalid scenario")

// reorientNone disables reorientation after an obstruction.
const reorientNone = "none"

// Scenario is everything needed to run the agent once.
type Scenario struct {
	Name    string
	Grid    [][]int
	Start   grid.Cell
	Goal    grid.Cell
	Heading motion.Heading

	// Obstacles are hidden from the planner and only seen by the sensor
	Obstacles []grid.Cell

	Clearance motion.Reading
	Strategy  solver.Strategy

	// Reorient is the heading taken after an obstruction; nil disables it
	Reorient *motion.Heading

	MaxReplans int
	StepDelay  time.Duration
}

// fileScenario is the on-disk shape shared by TOML and YAML scenarios.
// Cells are written as [row, col] pairs.
type fileScenario struct {
	Name        string  `toml:"name" yaml:"name"`
	Grid        [][]int `toml:"grid" yaml:"grid"`
	Start       []int   `toml:"start" yaml:"start"`
	Goal        []int   `toml:"goal" yaml:"goal"`
	Heading     string  `toml:"heading" yaml:"heading"`
	Obstacles   [][]int `toml:"obstacles" yaml:"obstacles"`
	ClearanceMM float64 `toml:"clearance_mm" yaml:"clearance_mm"`
	Strategy    string  `toml:"strategy" yaml:"strategy"`
	Reorient    string  `toml:"reorient" yaml:"reorient"`
	MaxReplans  int     `toml:"max_replans" yaml:"max_replans"`
	StepDelay   string  `toml:"step_delay" yaml:"step_delay"`
}

// Demo returns the built-in scenario: a 7x9 grid crossed by barrier walls,
// with two obstacles the planner does not know about.
func Demo() *Scenario {
	s := defaults()
	s.Name = "demo"
	s.Grid = [][]int{
		{0, 1, 1, 9, 1, 1, 1, 3, 1},
		{1, 9, 1, 9, 1, 9, 1, 3, 1},
		{5, 9, 1, 9, 1, 9, 1, 3, 1},
		{6, 9, 1, 9, 1, 9, 1, 3, 1},
		{2, 9, 1, 1, 1, 9, 1, 3, 3},
		{2, 9, 9, 9, 9, 9, 1, 1, 1},
		{3, 5, 2, 6, 1, 4, 3, 2, 1},
	}
	s.Start = grid.At(0, 0)
	s.Goal = grid.At(6, 8)
	s.Obstacles = []grid.Cell{grid.At(2, 2), grid.At(5, 7)}
	return s
}

func defaults() *Scenario {
	east := motion.East
	return &Scenario{
		Heading:   motion.East,
		Clearance: motion.DefaultClearance,
		Strategy:  solver.StrategyDijkstra,
		Reorient:  &east,
	}
}

// Load reads a scenario from a .toml, .yaml or .yml file. Keys missing
// from the file keep their defaults.
func Load(path string) (*Scenario, error) {
	var (
		raw     fileScenario
		defined func(key string) bool
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
		}
		defined = func(key string) bool { return meta.IsDefined(key) }
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
		}
		var keys map[string]any
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
		}
		defined = func(key string) bool {
			_, ok := keys[key]
			return ok
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidScenario, ext)
	}

	s, err := raw.scenario(defined)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// scenario overlays the keys present in the file onto the defaults.
func (f *fileScenario) scenario(defined func(string) bool) (*Scenario, error) {
	s := defaults()
	s.Name = strings.TrimSpace(f.Name)
	s.Grid = f.Grid

	var err error
	if s.Start, err = cellFrom("start", f.Start); err != nil {
		return nil, err
	}
	if s.Goal, err = cellFrom("goal", f.Goal); err != nil {
		return nil, err
	}
	for i, raw := range f.Obstacles {
		c, err := cellFrom(fmt.Sprintf("obstacles[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		s.Obstacles = append(s.Obstacles, c)
	}

	if defined("heading") {
		if s.Heading, err = motion.ParseHeading(f.Heading); err != nil {
			return nil, fmt.Errorf("%w: heading: %v", ErrInvalidScenario, err)
		}
	}
	if defined("clearance_mm") {
		s.Clearance = motion.Reading(f.ClearanceMM)
	}
	if defined("strategy") {
		if s.Strategy, err = solver.ParseStrategy(f.Strategy); err != nil {
			return nil, fmt.Errorf("%w: strategy: %v", ErrInvalidScenario, err)
		}
	}
	if defined("reorient") {
		if s.Reorient, err = parseReorient(f.Reorient); err != nil {
			return nil, err
		}
	}
	if defined("max_replans") {
		s.MaxReplans = f.MaxReplans
	}
	if defined("step_delay") {
		if s.StepDelay, err = time.ParseDuration(strings.TrimSpace(f.StepDelay)); err != nil {
			return nil, fmt.Errorf("%w: step_delay: %v", ErrInvalidScenario, err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func cellFrom(field string, v []int) (grid.Cell, error) {
	if len(v) != 2 {
		return grid.Cell{}, fmt.Errorf("%w: %s must be a [row, col] pair", ErrInvalidScenario, field)
	}
	return grid.At(v[0], v[1]), nil
}

func parseReorient(v string) (*motion.Heading, error) {
	if strings.EqualFold(strings.TrimSpace(v), reorientNone) {
		return nil, nil
	}
	h, err := motion.ParseHeading(v)
	if err != nil {
		return nil, fmt.Errorf("%w: reorient: %v", ErrInvalidScenario, err)
	}
	return &h, nil
}

// Validate checks the scenario is internally consistent. Endpoints are only
// checked for bounds; whether they are barriers is for the solver to report.
func (s *Scenario) Validate() error {
	world, err := s.World()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if !world.InBounds(s.Start) {
		return fmt.Errorf("%w: start %s is outside the %dx%d grid", ErrInvalidScenario, s.Start, world.Rows(), world.Cols())
	}
	if !world.InBounds(s.Goal) {
		return fmt.Errorf("%w: goal %s is outside the %dx%d grid", ErrInvalidScenario, s.Goal, world.Rows(), world.Cols())
	}
	for _, c := range s.Obstacles {
		if !world.InBounds(c) {
			return fmt.Errorf("%w: obstacle %s is outside the grid", ErrInvalidScenario, c)
		}
	}
	if !s.Heading.Valid() {
		return fmt.Errorf("%w: heading %d", ErrInvalidScenario, int(s.Heading))
	}
	if s.Clearance <= 0 {
		return fmt.Errorf("%w: clearance_mm must be positive", ErrInvalidScenario)
	}
	if s.MaxReplans < 0 {
		return fmt.Errorf("%w: max_replans must not be negative", ErrInvalidScenario)
	}
	if s.StepDelay < 0 {
		return fmt.Errorf("%w: step_delay must not be negative", ErrInvalidScenario)
	}
	return nil
}

// World builds the planning grid.
func (s *Scenario) World() (*grid.Grid, error) {
	return grid.New(s.Grid)
}
