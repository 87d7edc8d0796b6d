package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/gridnav/internal/fsops"
)

// ErrRunNotFound indicates no report exists for a run ID.
var ErrRunNotFound = errors.New("run not found")

// RunStore provides an interface for persisting run reports.
type RunStore interface {
	// Save writes the report atomically, keyed by its run ID.
	Save(report *RunReport) error

	// Load reads the report for the given run ID.
	// Returns ErrRunNotFound if the report doesn't exist.
	Load(id string) (*RunReport, error)

	// List returns summaries of every saved report, newest first.
	List() ([]RunSummary, error)

	// Delete removes the report for the given run ID.
	Delete(id string) error
}

// FileRunStore implements RunStore using JSON files on disk.
type FileRunStore struct {
	fs      fsops.FS
	runsDir string
}

// NewFileRunStore creates a new FileRunStore.
func NewFileRunStore(fs fsops.FS, runsDir string) *FileRunStore {
	return &FileRunStore{
		fs:      fs,
		runsDir: runsDir,
	}
}

func (s *FileRunStore) path(id string) (string, error) {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return "", err
	}
	return filepath.Join(s.runsDir, id+".json"), nil
}

// Save writes the report atomically, keyed by its run ID.
func (s *FileRunStore) Save(report *RunReport) error {
	path, err := s.path(report.ID())
	if err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	return nil
}

// Load reads the report for the given run ID.
func (s *FileRunStore) Load(id string) (*RunReport, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run report: %w", err)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to read run report: %w", err)
	}

	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report %s: %w", id, err)
	}

	return &report, nil
}

// List returns summaries of every saved report, newest first. A missing
// runs directory yields an empty list.
func (s *FileRunStore) List() ([]RunSummary, error) {
	exists, err := s.fs.Exists(s.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to check runs directory: %w", err)
	}
	if !exists {
		return []RunSummary{}, nil
	}

	entries, err := s.fs.ReadDir(s.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]RunSummary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		report, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, report.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].FinishedAt.Equal(summaries[j].FinishedAt) {
			return summaries[i].FinishedAt.After(summaries[j].FinishedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// Delete removes the report for the given run ID.
func (s *FileRunStore) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return fmt.Errorf("failed to delete run report: %w", err)
	}

	if err := s.fs.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return fmt.Errorf("failed to delete run report: %w", err)
	}

	return nil
}
