package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/gridnav/internal/config"
	"github.com/danieljhkim/gridnav/internal/fsops"
	"github.com/danieljhkim/gridnav/internal/logging"
	"github.com/danieljhkim/gridnav/internal/state"
)

// loadScenario loads the scenario file named by args, or the demo scenario
// when no file is given.
func loadScenario(args []string) (*config.Scenario, error) {
	if len(args) == 0 {
		return config.Demo(), nil
	}
	s, err := config.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return s, nil
}

// newLogger builds the runtime logger, honoring --log-level over the
// GRIDNAV_LOG_* environment.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	cfg := logging.DefaultConfig(logging.ProfileRuntime)
	logging.ApplyEnvOverrides(&cfg)
	if logLevel != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		cfg.Level = lvl
	}
	return cfg.Build(w), nil
}

// newRunStore opens the run report store under the default paths.
func newRunStore() (*state.FileRunStore, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	return state.NewFileRunStore(fsops.NewRealFS(), paths.Runs), nil
}

// loadEnvFiles loads ./.env, then the .env under the gridnav root, which
// may itself have been moved by GRIDNAV_ROOT in ./.env.
func loadEnvFiles() error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		// no home directory, so no root .env either
		return nil
	}
	return config.LoadEnv(paths.Env)
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
