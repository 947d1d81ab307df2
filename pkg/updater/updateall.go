package updater

import (
	"fmt"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/scan"
)

// UpdateAll runs one full update cycle: snapshot, scan, upgrade, and
// rollback when upgrades failed and auto-rollback is enabled.
//
// It performs the following operations:
//   - Warns about an unfinished journal left by a crashed cycle
//   - Snapshots the installed state to a timestamped manifest
//   - Scans for outdated packages and filters them by targets and holds
//   - Writes the cycle journal before the first upgrade mutates anything
//   - Upgrades each candidate, accumulating failures instead of aborting
//   - Restores the cycle snapshot when any upgrade failed and auto-rollback
//     is enabled, at most once per cycle
//
// Per-package upgrade failures are captured in the result, never returned
// as an error. Snapshot, scan, journal, and rollback failures are returned.
//
// Parameters:
//   - targets: Package names to restrict the cycle to, empty for all
//
// Returns:
//   - *CycleResult: the cycle outcome, nil when no phase completed
//   - error: terminal errors that stopped the cycle
func (m *Manager) UpdateAll(targets []string) (*CycleResult, error) {
	result := &CycleResult{CycleID: newCycleID()}
	started := nowFunc()
	journalPath := m.cfg.ResolvePath(m.cfg.JournalFile)

	if prev, err := ReadJournal(journalPath); err == nil && prev != nil && prev.Status == constants.CycleInProgress {
		m.sink.Warnf("previous cycle %s did not finish; its snapshot is %s", prev.CycleID, prev.ManifestPath)
	}

	audit.PhaseStarted(m.sink, result.CycleID, string(PhaseSnapshot))
	mani, manifestPath, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	result.ManifestPath = manifestPath
	audit.PhaseCompleted(m.sink, result.CycleID, string(PhaseSnapshot),
		fmt.Sprintf("%d packages pinned to %s", mani.Len(), manifestPath))

	audit.PhaseStarted(m.sink, result.CycleID, string(PhaseScan))
	entries, err := m.Scan()
	if err != nil {
		return nil, err
	}
	candidates, skipped := scan.Filter(entries, targets, m.cfg.IsHeld)
	result.Skipped = skipped
	result.Candidates = candidates
	audit.PhaseCompleted(m.sink, result.CycleID, string(PhaseScan),
		fmt.Sprintf("%d candidate(s), %d skipped", len(candidates), len(skipped)))

	if len(candidates) == 0 {
		result.Success = true
		m.phase = PhaseDone
		m.sink.Infof("nothing to upgrade")
		return result, nil
	}

	journal := &Journal{
		CycleID:      result.CycleID,
		StartedAt:    started,
		ManifestPath: manifestPath,
		Targets:      targets,
		Status:       constants.CycleInProgress,
	}
	if err := WriteJournal(journalPath, journal); err != nil {
		return nil, err
	}

	audit.PhaseStarted(m.sink, result.CycleID, string(PhaseUpgrade))
	result.Upgraded, result.Failed = m.Upgrade(candidates)
	audit.PhaseCompleted(m.sink, result.CycleID, string(PhaseUpgrade),
		fmt.Sprintf("%d upgraded, %d failed", len(result.Upgraded), len(result.Failed)))

	if len(result.Failed) == 0 {
		result.Success = true
		m.finishJournal(journalPath, journal, constants.CycleCompleted)
		m.phase = PhaseDone
		return result, nil
	}

	if !m.cfg.AutoRollbackEnabled() {
		m.sink.Warnf("%d upgrade(s) failed; auto-rollback disabled, environment left as-is", len(result.Failed))
		m.finishJournal(journalPath, journal, constants.CycleFailed)
		m.phase = PhaseDone
		return result, nil
	}

	audit.PhaseStarted(m.sink, result.CycleID, string(PhaseRollback))
	if err := m.Restore(manifestPath); err != nil {
		m.sink.Errorf("rollback failed: %v", err)
		m.finishJournal(journalPath, journal, constants.CycleFailed)
		m.phase = PhaseDone
		return result, err
	}
	result.RolledBack = true
	m.finishJournal(journalPath, journal, constants.CycleRolledBack)
	audit.PhaseCompleted(m.sink, result.CycleID, string(PhaseRollback), "environment restored")
	m.phase = PhaseDone
	return result, nil
}

// finishJournal stamps the journal with its final status and end time.
// Finalize failures are logged, not returned: the cycle outcome stands
// regardless of journal bookkeeping.
func (m *Manager) finishJournal(path string, j *Journal, status string) {
	now := nowFunc()
	j.FinishedAt = &now
	j.Status = status
	if err := WriteJournal(path, j); err != nil {
		m.sink.Warnf("journal update failed: %v", err)
	}
}
