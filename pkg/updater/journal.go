package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Journal is the persisted record of one update cycle.
//
// It is written before the upgrade phase mutates the environment and
// finalized when the cycle ends, so a crash leaves an in_progress entry
// pointing at the snapshot needed for manual recovery.
type Journal struct {
	// CycleID identifies the cycle this journal belongs to.
	CycleID string `json:"cycle_id"`

	// StartedAt is when the cycle began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the cycle ended, nil while in progress.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// ManifestPath is the snapshot taken at the start of the cycle.
	ManifestPath string `json:"manifest_path"`

	// Targets is the requested package subset, empty for a full cycle.
	Targets []string `json:"targets,omitempty"`

	// Status is one of in_progress, completed, failed, rolled_back.
	Status string `json:"status"`
}

// ReadJournal loads the cycle journal from disk.
//
// Parameters:
//   - path: The journal file path
//
// Returns:
//   - *Journal: the journal, nil when the file does not exist
//   - error: read or decode errors
func ReadJournal(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return &j, nil
}

// WriteJournal persists the cycle journal atomically.
//
// The journal is written to a temporary file first and renamed into place so
// readers never observe a partial write.
//
// Parameters:
//   - path: The journal file path
//   - j: The journal to persist
//
// Returns:
//   - error: encode or write errors
func WriteJournal(path string, j *Journal) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// ClearJournal removes the cycle journal. A missing file is not an error.
//
// Parameters:
//   - path: The journal file path
//
// Returns:
//   - error: removal errors other than the file not existing
func ClearJournal(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}
