package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutdatedReport() *OutdatedReport {
	return &OutdatedReport{
		Summary: OutdatedSummary{
			Tool:          "pip",
			TotalOutdated: 2,
			Minor:         1,
			Major:         1,
		},
		Packages: []OutdatedPackage{
			{Name: "requests", Current: "2.31.0", Latest: "2.32.3", Severity: "minor", Status: "Outdated"},
			{Name: "flask", Current: "2.0.0", Latest: "3.0.0", Severity: "major", Status: "Outdated"},
		},
	}
}

// TestWriteOutdatedReport tests the behavior of WriteOutdatedReport.
//
// It verifies:
//   - JSON output round-trips the summary and packages
//   - CSV output has a header and one row per package
//   - XML output carries the root element
//   - The table format is rejected
func TestWriteOutdatedReport(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutdatedReport(&buf, FormatJSON, sampleOutdatedReport()))

		var decoded OutdatedReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "pip", decoded.Summary.Tool)
		assert.Equal(t, 2, decoded.Summary.TotalOutdated)
		require.Len(t, decoded.Packages, 2)
		assert.Equal(t, "requests", decoded.Packages[0].Name)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutdatedReport(&buf, FormatCSV, sampleOutdatedReport()))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "NAME,CURRENT,LATEST,SEVERITY,STATUS", lines[0])
		assert.Equal(t, "flask,2.0.0,3.0.0,major,Outdated", lines[2])
	})

	t.Run("xml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutdatedReport(&buf, FormatXML, sampleOutdatedReport()))

		out := buf.String()
		assert.Contains(t, out, "<outdatedReport>")
		assert.Contains(t, out, "<name>requests</name>")
	})

	t.Run("table rejected", func(t *testing.T) {
		err := WriteOutdatedReport(&bytes.Buffer{}, FormatTable, sampleOutdatedReport())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}

// TestWriteCycleReport tests the behavior of WriteCycleReport.
//
// It verifies:
//   - JSON output carries cycle metadata and package outcomes
//   - CSV rows include the failure message column
func TestWriteCycleReport(t *testing.T) {
	report := &CycleReport{
		Summary: CycleSummary{
			CycleID:    "01HXCYCLEID00000000000000",
			Success:    false,
			Total:      2,
			Upgraded:   1,
			Failed:     1,
			RolledBack: true,
		},
		Packages: []CyclePackage{
			{Name: "requests", Current: "2.31.0", Target: "2.32.3", Status: "Upgraded"},
			{Name: "flask", Current: "2.0.0", Target: "3.0.0", Status: "Failed", Error: "exit 1"},
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCycleReport(&buf, FormatJSON, report))

		var decoded CycleReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "01HXCYCLEID00000000000000", decoded.Summary.CycleID)
		assert.True(t, decoded.Summary.RolledBack)
		assert.Equal(t, "Failed", decoded.Packages[1].Status)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCycleReport(&buf, FormatCSV, report))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "NAME,CURRENT,TARGET,STATUS,ERROR", lines[0])
		assert.Equal(t, "flask,2.0.0,3.0.0,Failed,exit 1", lines[2])
	})
}

// TestWriteSnapshotReport tests the behavior of WriteSnapshotReport.
//
// It verifies:
//   - JSON and CSV outputs carry the path and package count
func TestWriteSnapshotReport(t *testing.T) {
	report := &SnapshotReport{
		Path:      "/env/.envup/snapshots/env_snapshot_20240301_120000.txt",
		Packages:  12,
		CreatedAt: "2024-03-01T12:00:00Z",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotReport(&buf, FormatJSON, report))
	assert.Contains(t, buf.String(), `"packages":12`)

	buf.Reset()
	require.NoError(t, WriteSnapshotReport(&buf, FormatCSV, report))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "PATH,PACKAGES,CREATED", lines[0])
	assert.Contains(t, lines[1], "env_snapshot_20240301_120000.txt,12,")
}

// TestWriteHistoryReport tests the behavior of WriteHistoryReport.
//
// It verifies:
//   - CSV rows carry sizes in bytes and the compressed flag
//   - JSON output round-trips the snapshot list
func TestWriteHistoryReport(t *testing.T) {
	report := &HistoryReport{
		Summary: HistorySummary{Total: 2, Compressed: 1},
		Snapshots: []HistorySnapshot{
			{Name: "env_snapshot_20240301_120000.txt", Created: "2024-03-01T12:00:00Z", Packages: 12, SizeBytes: 340},
			{Name: "env_snapshot_20240201_120000.txt.xz", Created: "2024-02-01T12:00:00Z", Packages: 11, SizeBytes: 128, Compressed: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryReport(&buf, FormatCSV, report))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME,CREATED,PACKAGES,SIZE_BYTES,COMPRESSED", lines[0])
	assert.Equal(t, "env_snapshot_20240201_120000.txt.xz,2024-02-01T12:00:00Z,11,128,true", lines[2])

	buf.Reset()
	require.NoError(t, WriteHistoryReport(&buf, FormatJSON, report))
	var decoded HistoryReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Summary.Total)
	assert.True(t, decoded.Snapshots[1].Compressed)
}
