// Package logging builds the zerolog loggers used across gridnav.
//
// Defaults depend on the profile (runtime or test) and can be overridden with
// environment variables:
//   - GRIDNAV_LOG_LEVEL: trace, debug, info, warn, error, disabled
//   - GRIDNAV_LOG_TIMESTAMP: include timestamps (bool)
//   - GRIDNAV_LOG_NOCOLOR: disable ANSI colors in console output (bool)
//   - GRIDNAV_LOG_FORMAT: console (default) or json
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "GRIDNAV_LOG_LEVEL"
	EnvLogTimestamp = "GRIDNAV_LOG_TIMESTAMP"
	EnvLogNoColor   = "GRIDNAV_LOG_NOCOLOR"
	EnvLogFormat    = "GRIDNAV_LOG_FORMAT"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logger configuration.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	JSON      bool
}

// New returns a logger for profile writing to out, after applying
// environment overrides.
func New(profile Profile, out io.Writer) zerolog.Logger {
	cfg := DefaultConfig(profile)
	ApplyEnvOverrides(&cfg)
	return cfg.Build(out)
}

func DefaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.DebugLevel, Timestamp: false, NoColor: true}
	default:
		return Config{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

// Build constructs the logger described by c.
func (c Config) Build(out io.Writer) zerolog.Logger {
	w := out
	if !c.JSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    c.NoColor,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(w).Level(c.Level).With()
	if c.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", "gridnav").Logger()
}

func ApplyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogFormat))) {
	case "json":
		cfg.JSON = true
	case "console":
		cfg.JSON = false
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
