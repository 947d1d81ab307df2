package updater

import (
	"github.com/oklog/ulid/v2"

	"github.com/ajxudir/envup/pkg/scan"
)

// Phase identifies where an update cycle currently is.
type Phase string

// Cycle phases in execution order.
const (
	// PhaseIdle means no cycle is running.
	PhaseIdle Phase = "idle"

	// PhaseSnapshot means the installed state is being captured.
	PhaseSnapshot Phase = "snapshot"

	// PhaseScan means the outdated report is being collected.
	PhaseScan Phase = "scan"

	// PhaseUpgrade means per-package upgrades are running.
	PhaseUpgrade Phase = "upgrade"

	// PhaseRollback means the cycle snapshot is being restored.
	PhaseRollback Phase = "rollback"

	// PhaseDone means the cycle finished.
	PhaseDone Phase = "done"
)

// PackageFailure records one failed upgrade invocation.
type PackageFailure struct {
	// Name is the package whose upgrade failed.
	Name string `json:"name"`

	// Reason is the failure message from the tool invocation.
	Reason string `json:"reason"`
}

// CycleResult is the outcome of one update cycle.
//
// A cycle accumulates per-package outcomes instead of aborting on the first
// failed upgrade, so Upgraded and Failed can both be non-empty.
type CycleResult struct {
	// CycleID uniquely identifies the cycle across the journal and audit log.
	CycleID string `json:"cycle_id"`

	// Success is true when every targeted upgrade succeeded.
	Success bool `json:"success"`

	// Upgraded lists packages upgraded in this cycle, in upgrade order.
	Upgraded []string `json:"upgraded"`

	// Failed lists packages whose upgrade invocation failed, with reasons.
	Failed []PackageFailure `json:"failed"`

	// Skipped lists packages excluded from the upgrade phase, with reasons.
	Skipped []scan.Skipped `json:"skipped,omitempty"`

	// RolledBack is true when the cycle snapshot was restored.
	RolledBack bool `json:"rolled_back"`

	// ManifestPath is the snapshot written at the start of the cycle.
	ManifestPath string `json:"manifest_path,omitempty"`

	// Candidates holds the scanned entries the upgrade phase ran over,
	// kept for version-aware reporting.
	Candidates []scan.Entry `json:"-"`
}

// Candidate returns the scanned entry for a package, if the cycle had one.
//
// Parameters:
//   - name: The package name to look up
//
// Returns:
//   - scan.Entry: The matching entry
//   - bool: false when the package was not an upgrade candidate
func (r *CycleResult) Candidate(name string) (scan.Entry, bool) {
	for _, entry := range r.Candidates {
		if entry.Name == name {
			return entry, true
		}
	}
	return scan.Entry{}, false
}

// FailedNames returns the names of the packages whose upgrade failed.
//
// Returns:
//   - []string: failed package names in upgrade order
func (r *CycleResult) FailedNames() []string {
	names := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		names = append(names, f.Name)
	}
	return names
}

// newCycleID generates a unique cycle identifier. It is a variable so tests
// can produce deterministic IDs.
var newCycleID = func() string {
	return ulid.Make().String()
}
