package updater

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/cmdexec"
	"github.com/ajxudir/envup/pkg/constants"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/manifest"
	"github.com/ajxudir/envup/pkg/scan"
)

// readJournal loads the journal the cycle wrote, failing the test on errors.
func readJournal(t *testing.T, path string) *Journal {
	t.Helper()
	j, err := ReadJournal(path)
	require.NoError(t, err)
	return j
}

// TestUpdateAllSuccess tests the behavior of UpdateAll when every upgrade
// succeeds.
//
// It verifies:
//   - The result reports success with all packages upgraded in report order
//   - A snapshot manifest exists for the cycle
//   - The journal ends in the completed status with a finish time
//   - No restore invocation happens
func TestUpdateAllSuccess(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\nflask==2.0.0\n",
		outdated:  pipOutdatedJSON,
	}
	fake.install(t)

	cfg := testConfig(t)
	rec := audit.NewRecorder()
	mgr := New(cfg, rec)

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"requests", "flask"}, result.Upgraded)
	assert.Empty(t, result.Failed)
	assert.False(t, result.RolledBack)
	assert.NotEmpty(t, result.CycleID)
	assert.Equal(t, PhaseDone, mgr.Phase())

	onDisk, err := manifest.ReadFile(result.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, 2, onDisk.Len())

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, result.CycleID, journal.CycleID)
	assert.Equal(t, constants.CycleCompleted, journal.Status)
	assert.Equal(t, result.ManifestPath, journal.ManifestPath)
	require.NotNil(t, journal.FinishedAt)

	assert.Empty(t, fake.restoreCalls())
	assert.True(t, rec.Contains("phase started: snapshot"))
	assert.True(t, rec.Contains("phase completed: upgrade"))
}

// TestUpdateAllPartialFailureRollsBack tests the behavior of UpdateAll when
// one upgrade fails and auto-rollback is enabled.
//
// It verifies:
//   - Remaining upgrades still run before the rollback
//   - The cycle snapshot is restored exactly once
//   - The result carries both the upgraded and the failed packages
//   - The journal ends in the rolled_back status
func TestUpdateAllPartialFailureRollsBack(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\nflask==2.0.0\n",
		outdated:  pipOutdatedJSON,
		failing:   map[string]string{"flask": "ERROR: no matching distribution"},
	}
	fake.install(t)

	cfg := testConfig(t)
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Success)
	assert.Equal(t, []string{"requests"}, result.Upgraded)
	assert.Equal(t, []string{"flask"}, result.FailedNames())
	assert.True(t, result.RolledBack)

	restores := fake.restoreCalls()
	require.Len(t, restores, 1)
	assert.Equal(t, result.ManifestPath, restores[0].replacements["manifest"])

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, constants.CycleRolledBack, journal.Status)
}

// TestUpdateAllNoRollbackWhenDisabled tests the behavior of UpdateAll when
// upgrades fail but auto-rollback is turned off.
//
// It verifies:
//   - No restore invocation happens
//   - The result reports the failure without a rollback
//   - The journal ends in the failed status
func TestUpdateAllNoRollbackWhenDisabled(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\nflask==2.0.0\n",
		outdated:  pipOutdatedJSON,
		failing:   map[string]string{"flask": "ERROR: build failed"},
	}
	fake.install(t)

	cfg := testConfig(t)
	disabled := false
	cfg.AutoRollback = &disabled
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Success)
	assert.False(t, result.RolledBack)
	assert.Equal(t, []string{"flask"}, result.FailedNames())
	assert.Empty(t, fake.restoreCalls())

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, constants.CycleFailed, journal.Status)
}

// TestUpdateAllZeroOutdated tests the behavior of UpdateAll when nothing is
// outdated.
//
// It verifies:
//   - The cycle succeeds with no upgrade invocations
//   - No journal is written because nothing was mutated
func TestUpdateAllZeroOutdated(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.32.3\n",
		outdated:  "[]",
	}
	fake.install(t)

	cfg := testConfig(t)
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.Empty(t, result.Upgraded)
	assert.Empty(t, result.Failed)
	assert.False(t, result.RolledBack)
	assert.Empty(t, fake.upgradeCalls())
	assert.Equal(t, PhaseDone, mgr.Phase())

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	assert.Nil(t, journal)
}

// TestUpdateAllSnapshotFailure tests the behavior of UpdateAll when the
// snapshot phase fails.
//
// It verifies:
//   - The cycle stops before any upgrade runs
//   - The tool error is returned with no result
func TestUpdateAllSnapshotFailure(t *testing.T) {
	orig := cmdexec.Execute
	cmdexec.Execute = func(commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
		return nil, errors.NewToolInvocationError(commands, 127, "pip: command not found", fmt.Errorf("exit status 127"))
	}
	t.Cleanup(func() { cmdexec.Execute = orig })

	mgr := New(testConfig(t), audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var toolErr *errors.ToolInvocationError
	assert.True(t, stderrors.As(err, &toolErr))
}

// TestUpdateAllScanFailure tests the behavior of UpdateAll when the scan
// phase fails after a successful snapshot.
//
// It verifies:
//   - The snapshot file from the failed cycle is kept on disk
//   - The parse error is returned with no result
func TestUpdateAllScanFailure(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\n",
		outdated:  "not json at all",
	}
	fake.install(t)

	cfg := testConfig(t)
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var parseErr *errors.ParseError
	assert.True(t, stderrors.As(err, &parseErr))

	snapshots, err := manifest.ListSnapshots(cfg.ResolvePath(cfg.SnapshotDir))
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

// TestUpdateAllRollbackFailure tests the behavior of UpdateAll when the
// rollback itself fails.
//
// It verifies:
//   - The restore error is returned together with the partial result
//   - The result does not claim a rollback happened
//   - The journal ends in the failed status
func TestUpdateAllRollbackFailure(t *testing.T) {
	fake := &fakeTool{
		installed:  "requests==2.31.0\nflask==2.0.0\n",
		outdated:   pipOutdatedJSON,
		failing:    map[string]string{"flask": "ERROR: build failed"},
		restoreErr: errors.NewToolInvocationError("pip install -r", 1, "ERROR: network down", fmt.Errorf("exit status 1")),
	}
	fake.install(t)

	cfg := testConfig(t)
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.Error(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Success)
	assert.False(t, result.RolledBack)
	assert.Equal(t, []string{"flask"}, result.FailedNames())

	var toolErr *errors.ToolInvocationError
	require.True(t, stderrors.As(err, &toolErr))
	assert.Contains(t, toolErr.Stderr, "network down")

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, constants.CycleFailed, journal.Status)
}

// TestUpdateAllHeldPackages tests the behavior of UpdateAll with packages on
// the hold list.
//
// It verifies:
//   - Held packages are skipped with the hold reason
//   - Only unheld packages are upgraded
func TestUpdateAllHeldPackages(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\nflask==2.0.0\n",
		outdated:  pipOutdatedJSON,
	}
	fake.install(t)

	cfg := testConfig(t)
	cfg.Hold = []string{"flask"}
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"requests"}, result.Upgraded)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "flask", result.Skipped[0].Name)
	assert.Equal(t, scan.ReasonHeld, result.Skipped[0].Reason)
	assert.Len(t, fake.upgradeCalls(), 1)
}

// TestUpdateAllTargetSubset tests the behavior of UpdateAll when targets
// restrict the cycle.
//
// It verifies:
//   - Only targeted packages are upgraded
//   - Untargeted outdated packages are skipped with the target reason
//   - Unknown targets are recorded as not outdated
//   - The journal records the requested targets
func TestUpdateAllTargetSubset(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\nflask==2.0.0\n",
		outdated:  pipOutdatedJSON,
	}
	fake.install(t)

	cfg := testConfig(t)
	mgr := New(cfg, audit.NewRecorder())

	result, err := mgr.UpdateAll([]string{"requests", "numpy"})
	require.NoError(t, err)

	assert.Equal(t, []string{"requests"}, result.Upgraded)

	reasons := map[string]string{}
	for _, s := range result.Skipped {
		reasons[s.Name] = s.Reason
	}
	assert.Equal(t, scan.ReasonNotTargeted, reasons["flask"])
	assert.Equal(t, scan.ReasonNotOutdated, reasons["numpy"])

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, []string{"requests", "numpy"}, journal.Targets)
}

// TestUpdateAllStaleJournalWarning tests the behavior of UpdateAll when a
// previous cycle left an in_progress journal behind.
//
// It verifies:
//   - The unfinished cycle is reported through the audit sink
//   - The new cycle still runs and overwrites the journal
func TestUpdateAllStaleJournalWarning(t *testing.T) {
	fake := &fakeTool{
		installed: "requests==2.31.0\n",
		outdated:  pipOutdatedJSON,
	}
	fake.install(t)

	cfg := testConfig(t)
	journalPath := cfg.ResolvePath(cfg.JournalFile)
	stale := &Journal{
		CycleID:      "01HSTALECYCLEID0000000000",
		StartedAt:    time.Now().Add(-time.Hour),
		ManifestPath: filepath.Join(cfg.WorkingDir, "snapshots", "env_snapshot_20240101_120000.txt"),
		Status:       constants.CycleInProgress,
	}
	require.NoError(t, WriteJournal(journalPath, stale))

	rec := audit.NewRecorder()
	mgr := New(cfg, rec)

	result, err := mgr.UpdateAll(nil)
	require.NoError(t, err)

	assert.True(t, rec.Contains("did not finish"))
	assert.True(t, rec.Contains("01HSTALECYCLEID0000000000"))

	journal := readJournal(t, cfg.ResolvePath(cfg.JournalFile))
	require.NotNil(t, journal)
	assert.Equal(t, result.CycleID, journal.CycleID)
}
