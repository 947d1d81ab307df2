package updater

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ajxudir/envup/pkg/manifest"
)

// HistoryEntry describes one snapshot on disk.
type HistoryEntry struct {
	// Name is the snapshot file name.
	Name string

	// Path is the absolute or config-relative snapshot path.
	Path string

	// Time is when the snapshot was taken, from the file name.
	Time time.Time

	// Packages is the number of pins in the manifest.
	Packages int

	// Size is the on-disk file size in bytes.
	Size int64

	// Compressed is true for xz-compressed snapshots.
	Compressed bool
}

// History lists the snapshots in the manager's snapshot directory,
// newest first.
//
// It performs the following operations:
//   - Lists snapshot files in the configured directory
//   - Reads each manifest for its package count, decompressing as needed
//   - Falls back to the file modification time when the name has no timestamp
//
// Returns:
//   - []HistoryEntry: snapshot metadata, newest first
//   - error: listing or read errors
func (m *Manager) History() ([]HistoryEntry, error) {
	dir := m.cfg.ResolvePath(m.cfg.SnapshotDir)
	names, err := manifest.ListSnapshots(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)

		entry := HistoryEntry{
			Name:       name,
			Path:       path,
			Compressed: manifest.IsCompressed(name),
		}

		if ts, err := manifest.SnapshotTime(name); err == nil {
			entry.Time = ts
		} else if info, statErr := os.Stat(path); statErr == nil {
			entry.Time = info.ModTime()
		}

		if info, err := os.Stat(path); err == nil {
			entry.Size = info.Size()
		}

		mani, err := manifest.ReadFile(path)
		if err != nil {
			return nil, err
		}
		entry.Packages = mani.Len()

		entries = append(entries, entry)
	}
	return entries, nil
}

// Prune compresses snapshots beyond the configured retention count.
//
// The newest keep_snapshots uncompressed snapshots stay as they are; older
// uncompressed snapshots are xz-compressed in place. Already compressed
// snapshots are never touched, so pruning is idempotent.
//
// Returns:
//   - []string: paths of the snapshots compressed by this call
//   - error: listing or compression errors
func (m *Manager) Prune() ([]string, error) {
	dir := m.cfg.ResolvePath(m.cfg.SnapshotDir)
	names, err := manifest.ListSnapshots(dir)
	if err != nil {
		return nil, err
	}

	keep := m.cfg.KeepSnapshots
	if keep < 0 {
		keep = 0
	}

	var compressed []string
	uncompressed := 0
	for _, name := range names {
		if manifest.IsCompressed(name) {
			continue
		}
		uncompressed++
		if uncompressed <= keep {
			continue
		}

		path := filepath.Join(dir, name)
		target, err := manifest.Compress(path)
		if err != nil {
			return compressed, err
		}
		m.sink.Infof("compressed snapshot %s", name)
		compressed = append(compressed, target)
	}
	return compressed, nil
}
