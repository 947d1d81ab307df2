package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/ajxudir/envup/pkg/errors"
)

const (
	// SnapshotPrefix starts every snapshot manifest filename.
	SnapshotPrefix = "env_snapshot_"

	// SnapshotExt is the extension of uncompressed snapshot manifests.
	SnapshotExt = ".txt"

	// CompressedExt is appended to snapshot manifests compressed by prune.
	CompressedExt = ".xz"

	// snapshotTimeLayout orders snapshot filenames chronologically when
	// sorted lexically.
	snapshotTimeLayout = "20060102_150405"
)

// SnapshotFileName builds the manifest filename for a snapshot taken at ts.
//
// Parameters:
//   - ts: The snapshot timestamp
//
// Returns:
//   - string: Filename like env_snapshot_20250101_120000.txt
func SnapshotFileName(ts time.Time) string {
	return SnapshotPrefix + ts.Format(snapshotTimeLayout) + SnapshotExt
}

// IsSnapshotFile reports whether a filename looks like a snapshot manifest.
//
// Both plain and xz-compressed snapshot names match.
//
// Parameters:
//   - name: The bare filename to check
//
// Returns:
//   - bool: true for env_snapshot_*.txt and env_snapshot_*.txt.xz names
func IsSnapshotFile(name string) bool {
	if !strings.HasPrefix(name, SnapshotPrefix) {
		return false
	}
	return strings.HasSuffix(name, SnapshotExt) || strings.HasSuffix(name, SnapshotExt+CompressedExt)
}

// IsCompressed reports whether a manifest path points at an xz-compressed file.
//
// Parameters:
//   - path: The manifest path to check
//
// Returns:
//   - bool: true if the path has the .xz extension
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// SnapshotTime extracts the timestamp from a snapshot filename.
//
// Parameters:
//   - name: The bare snapshot filename
//
// Returns:
//   - time.Time: The embedded timestamp
//   - error: Error if the name does not carry a parseable timestamp
func SnapshotTime(name string) (time.Time, error) {
	trimmed := strings.TrimPrefix(name, SnapshotPrefix)
	trimmed = strings.TrimSuffix(trimmed, CompressedExt)
	trimmed = strings.TrimSuffix(trimmed, SnapshotExt)
	return time.Parse(snapshotTimeLayout, trimmed)
}

// WriteFile writes the manifest to path atomically.
//
// It performs the following operations:
//   - Creates the parent directory if it does not exist
//   - Writes the serialized manifest to a temp file in the target directory
//   - Renames the temp file over the target path
//
// Overwriting keeps the existing file's permissions; new files are 0644.
//
// Parameters:
//   - m: The manifest to persist
//   - path: The target file path
//
// Returns:
//   - error: *errors.PersistenceError on any filesystem failure
func WriteFile(m *Manifest, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewPersistenceError("write", path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return errors.NewPersistenceError("write", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(m.Serialize()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.NewPersistenceError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.NewPersistenceError("write", path, err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return errors.NewPersistenceError("write", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.NewPersistenceError("write", path, err)
	}

	return nil
}

// ReadFile reads and parses a manifest file.
//
// Compressed .xz manifests are decompressed transparently.
//
// Parameters:
//   - path: The manifest path to read
//
// Returns:
//   - *Manifest: The parsed manifest
//   - error: *errors.PersistenceError if the file cannot be read,
//     *errors.ParseError if the content is malformed
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewPersistenceError("read", path, err)
	}

	if IsCompressed(path) {
		reader, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewParseError("manifest", fmt.Sprintf("invalid xz data in %s", path), err)
		}
		data, err = io.ReadAll(reader)
		if err != nil {
			return nil, errors.NewParseError("manifest", fmt.Sprintf("invalid xz data in %s", path), err)
		}
	}

	return Parse(data)
}

// Compress rewrites an uncompressed manifest as <path>.xz and removes the
// original file.
//
// Parameters:
//   - path: The uncompressed manifest path
//
// Returns:
//   - string: The compressed file path
//   - error: *errors.PersistenceError on read, write, or remove failure
func Compress(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewPersistenceError("read", path, err)
	}

	target := path + CompressedExt

	var buf bytes.Buffer
	writer, err := xz.NewWriter(&buf)
	if err != nil {
		return "", errors.NewPersistenceError("write", target, err)
	}
	if _, err := writer.Write(data); err != nil {
		return "", errors.NewPersistenceError("write", target, err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.NewPersistenceError("write", target, err)
	}

	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return "", errors.NewPersistenceError("write", target, err)
	}

	if err := os.Remove(path); err != nil {
		_ = os.Remove(target)
		return "", errors.NewPersistenceError("write", path, err)
	}

	return target, nil
}

// ListSnapshots returns snapshot manifest filenames in dir, newest first.
//
// The timestamped naming scheme makes lexical order chronological, so the
// listing is sorted by name descending. A missing directory yields an empty
// list, not an error.
//
// Parameters:
//   - dir: The snapshot directory to list
//
// Returns:
//   - []string: Bare filenames of snapshot manifests, newest first
//   - error: *errors.PersistenceError if the directory cannot be read
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("list", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSnapshotFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Latest returns the path of the newest snapshot manifest in dir.
//
// Compressed snapshots count; ReadFile decompresses them transparently.
//
// Parameters:
//   - dir: The snapshot directory to search
//
// Returns:
//   - string: Full path of the newest snapshot manifest
//   - error: *errors.PersistenceError if the directory cannot be read or
//     no snapshot found in it
func Latest(dir string) (string, error) {
	names, err := ListSnapshots(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.NewPersistenceError("list", dir, fmt.Errorf("no snapshot found"))
	}
	return filepath.Join(dir, names[0]), nil
}
