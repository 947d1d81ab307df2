package updater

import (
	"os"
	"path/filepath"

	"github.com/ajxudir/envup/pkg/cmdexec"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/manifest"
	"github.com/ajxudir/envup/pkg/scan"
)

// Snapshot captures the installed state into a restorable manifest file.
//
// It performs the following operations:
//   - Runs the configured list_installed command
//   - Parses its output into a manifest (name==version per line)
//   - Writes the manifest to a timestamped file under the snapshot directory
//
// An empty environment produces an empty, still restorable manifest.
//
// Returns:
//   - *manifest.Manifest: the captured package pins
//   - string: the path the manifest was written to
//   - error: tool, parse, or persistence errors
func (m *Manager) Snapshot() (*manifest.Manifest, string, error) {
	m.phase = PhaseSnapshot

	output, err := m.run(m.cfg.Commands.ListInstalled, nil)
	if err != nil {
		return nil, "", err
	}

	mani, err := manifest.Parse(output)
	if err != nil {
		return nil, "", err
	}

	dir := m.cfg.ResolvePath(m.cfg.SnapshotDir)
	path := filepath.Join(dir, manifest.SnapshotFileName(nowFunc()))
	if err := manifest.WriteFile(mani, path); err != nil {
		return nil, "", err
	}

	m.sink.Infof("snapshot written: %s (%d packages)", path, mani.Len())
	return mani, path, nil
}

// Scan collects the outdated report from the wrapped tool.
//
// It performs the following operations:
//   - Runs the configured list_outdated command
//   - Parses the JSON report using the configured key mapping
//
// An empty report means the environment is fully up to date.
//
// Returns:
//   - []scan.Entry: outdated packages with current and latest versions
//   - error: tool or parse errors
func (m *Manager) Scan() ([]scan.Entry, error) {
	m.phase = PhaseScan

	output, err := m.run(m.cfg.Commands.ListOutdated, nil)
	if err != nil {
		return nil, err
	}

	entries, err := scan.ParseReport(output, m.reportKeys())
	if err != nil {
		return nil, err
	}

	m.sink.Infof("scan found %d outdated package(s)", len(entries))
	return entries, nil
}

// Upgrade runs the configured upgrade command once per entry, pinning each
// package to its latest reported version.
//
// A failed invocation is recorded and the remaining entries still run; one
// broken package never aborts the phase.
//
// Parameters:
//   - entries: The packages to upgrade, with their target versions
//
// Returns:
//   - []string: names upgraded successfully, in invocation order
//   - []PackageFailure: failed upgrades with their reasons
func (m *Manager) Upgrade(entries []scan.Entry) ([]string, []PackageFailure) {
	m.phase = PhaseUpgrade

	var upgraded []string
	var failed []PackageFailure
	for i, entry := range entries {
		m.sink.Infof("upgrading %s %s -> %s", entry.Name, entry.Current, entry.Latest)

		_, err := m.run(m.cfg.Commands.Upgrade, cmdexec.UpgradeReplacements(entry.Name, entry.Latest))
		if err != nil {
			m.sink.Warnf("upgrade failed for %s: %v", entry.Name, err)
			failed = append(failed, PackageFailure{Name: entry.Name, Reason: err.Error()})
		} else {
			upgraded = append(upgraded, entry.Name)
		}

		if m.progress != nil {
			m.progress(i+1, len(entries), entry.Name)
		}
	}
	return upgraded, failed
}

// Restore reinstalls the exact versions pinned in a manifest file.
//
// It performs the following operations:
//   - Reads and validates the manifest (a missing file is a persistence error)
//   - Decompresses xz snapshots to a temporary file for the tool to consume
//   - Runs the configured restore command with the manifest path substituted
//
// Parameters:
//   - path: The manifest file to restore from
//
// Returns:
//   - error: persistence, parse, or tool errors
func (m *Manager) Restore(path string) error {
	m.phase = PhaseRollback

	mani, err := manifest.ReadFile(path)
	if err != nil {
		return err
	}

	effective := path
	if manifest.IsCompressed(path) {
		tmp, err := os.CreateTemp("", "envup-restore-*"+manifest.SnapshotExt)
		if err != nil {
			return errors.NewPersistenceError("write", os.TempDir(), err)
		}
		name := tmp.Name()
		_ = tmp.Close()
		if err := manifest.WriteFile(mani, name); err != nil {
			_ = os.Remove(name)
			return err
		}
		defer func() { _ = os.Remove(name) }()
		effective = name
	}

	if _, err := m.run(m.cfg.Commands.Restore, cmdexec.RestoreReplacements(effective)); err != nil {
		return err
	}

	m.sink.Infof("environment restored from %s (%d packages)", path, mani.Len())
	return nil
}
