package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajxudir/envup/pkg/manifest"
	"github.com/ajxudir/envup/pkg/scan"
)

// FreezeOutput builds the installed-package listing a tool's freeze
// command would print.
//
// Parameters:
//   - pins: Package pins in "name==version" form
//
// Returns:
//   - string: One pin per line with a trailing newline
func FreezeOutput(pins ...string) string {
	if len(pins) == 0 {
		return ""
	}
	return strings.Join(pins, "\n") + "\n"
}

// OutdatedJSON builds the JSON report a tool's outdated command would
// print for the given entries, using pip's key names.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - entries: The outdated packages to report
//
// Returns:
//   - string: A JSON array of outdated package objects
func OutdatedJSON(t *testing.T, entries ...scan.Entry) string {
	t.Helper()

	items := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]string{
			"name":           entry.Name,
			"version":        entry.Current,
			"latest_version": entry.Latest,
		})
	}

	data, err := json.Marshal(items)
	require.NoError(t, err)
	return string(data)
}

// WriteManifest writes a snapshot manifest for tests.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - path: Destination file path
//   - pins: Package pins in "name==version" form
//
// Returns:
//   - *manifest.Manifest: The parsed manifest that was written
func WriteManifest(t *testing.T, path string, pins ...string) *manifest.Manifest {
	t.Helper()

	m, err := manifest.Parse([]byte(FreezeOutput(pins...)))
	require.NoError(t, err)
	require.NoError(t, manifest.WriteFile(m, path))
	return m
}
