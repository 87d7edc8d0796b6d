// Package config manages gridnav configuration: scenario files, environment
// loading and filesystem paths.
//
// The default data root is ~/.gridnav/ containing runs/ (saved run reports)
// and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by gridnav.
type Paths struct {
	// Root is the base directory for all gridnav data (default: ~/.gridnav)
	Root string

	// Runs is the directory containing saved run reports
	Runs string

	// Env is the path to the optional .env file under Root
	Env string
}

// DefaultPaths returns the default paths for gridnav.
// Paths can be overridden with environment variables:
// - GRIDNAV_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("GRIDNAV_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".gridnav")
	}

	return &Paths{
		Root: root,
		Runs: filepath.Join(root, "runs"),
		Env:  filepath.Join(root, ".env"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Runs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
