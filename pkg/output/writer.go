package output

import (
	"fmt"
	"io"
	"strconv"
)

// WriteSnapshotReport writes a snapshot report in the specified format.
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - report: The snapshot report to write
//
// Returns:
//   - error: Unsupported format or underlying write errors
func WriteSnapshotReport(w io.Writer, format Format, report *SnapshotReport) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(report)
	case FormatXML:
		return formatter.WriteXML(report)
	case FormatCSV:
		headers := []string{"PATH", "PACKAGES", "CREATED"}
		rows := [][]string{{report.Path, strconv.Itoa(report.Packages), report.CreatedAt}}
		return formatter.WriteCSV(headers, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteOutdatedReport writes an outdated report in the specified format.
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - report: The outdated report to write
//
// Returns:
//   - error: Unsupported format or underlying write errors
func WriteOutdatedReport(w io.Writer, format Format, report *OutdatedReport) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(report)
	case FormatXML:
		return formatter.WriteXML(report)
	case FormatCSV:
		return writeOutdatedCSV(formatter, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeOutdatedCSV writes the outdated packages as CSV rows.
func writeOutdatedCSV(f *Formatter, report *OutdatedReport) error {
	headers := []string{"NAME", "CURRENT", "LATEST", "SEVERITY", "STATUS"}
	rows := make([][]string, 0, len(report.Packages))
	for _, pkg := range report.Packages {
		rows = append(rows, []string{pkg.Name, pkg.Current, pkg.Latest, pkg.Severity, pkg.Status})
	}
	return f.WriteCSV(headers, rows)
}

// WriteCycleReport writes an update cycle report in the specified format.
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - report: The cycle report to write
//
// Returns:
//   - error: Unsupported format or underlying write errors
func WriteCycleReport(w io.Writer, format Format, report *CycleReport) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(report)
	case FormatXML:
		return formatter.WriteXML(report)
	case FormatCSV:
		return writeCycleCSV(formatter, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeCycleCSV writes the cycle's per-package outcomes as CSV rows.
func writeCycleCSV(f *Formatter, report *CycleReport) error {
	headers := []string{"NAME", "CURRENT", "TARGET", "STATUS", "ERROR"}
	rows := make([][]string, 0, len(report.Packages))
	for _, pkg := range report.Packages {
		rows = append(rows, []string{pkg.Name, pkg.Current, pkg.Target, pkg.Status, pkg.Error})
	}
	return f.WriteCSV(headers, rows)
}

// WriteHistoryReport writes a snapshot history report in the specified format.
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - report: The history report to write
//
// Returns:
//   - error: Unsupported format or underlying write errors
func WriteHistoryReport(w io.Writer, format Format, report *HistoryReport) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(report)
	case FormatXML:
		return formatter.WriteXML(report)
	case FormatCSV:
		return writeHistoryCSV(formatter, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeHistoryCSV writes the snapshot list as CSV rows.
func writeHistoryCSV(f *Formatter, report *HistoryReport) error {
	headers := []string{"NAME", "CREATED", "PACKAGES", "SIZE_BYTES", "COMPRESSED"}
	rows := make([][]string, 0, len(report.Snapshots))
	for _, snap := range report.Snapshots {
		rows = append(rows, []string{
			snap.Name,
			snap.Created,
			strconv.Itoa(snap.Packages),
			strconv.FormatInt(snap.SizeBytes, 10),
			strconv.FormatBool(snap.Compressed),
		})
	}
	return f.WriteCSV(headers, rows)
}
