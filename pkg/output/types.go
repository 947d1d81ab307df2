package output

import "encoding/xml"

// SnapshotReport represents the output data for the snapshot command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Path: Where the manifest was written
//   - Packages: Number of package pins captured
//   - CreatedAt: Snapshot creation time in RFC 3339 form
type SnapshotReport struct {
	XMLName   xml.Name `json:"-" xml:"snapshotReport"`
	Path      string   `json:"path" xml:"path"`
	Packages  int      `json:"packages" xml:"packages"`
	CreatedAt string   `json:"created_at" xml:"createdAt"`
}

// OutdatedReport represents the output data for the outdated command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate counts by severity
//   - Packages: The outdated packages
//   - Warnings: Warning messages gathered during the scan (omitted if empty)
type OutdatedReport struct {
	XMLName  xml.Name          `json:"-" xml:"outdatedReport"`
	Summary  OutdatedSummary   `json:"summary" xml:"summary"`
	Packages []OutdatedPackage `json:"packages" xml:"packages>package"`
	Warnings []string          `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// OutdatedSummary holds aggregate statistics for the outdated report.
//
// Fields:
//   - Tool: The wrapped package manager
//   - TotalOutdated: Number of outdated packages
//   - Major/Minor/Patch/Unknown: Counts per severity class
//   - Held: Number of outdated packages excluded by the hold list
type OutdatedSummary struct {
	Tool          string `json:"tool" xml:"tool"`
	TotalOutdated int    `json:"total_outdated" xml:"totalOutdated"`
	Major         int    `json:"major" xml:"major"`
	Minor         int    `json:"minor" xml:"minor"`
	Patch         int    `json:"patch" xml:"patch"`
	Unknown       int    `json:"unknown" xml:"unknown"`
	Held          int    `json:"held" xml:"held"`
}

// OutdatedPackage represents one outdated package in the report.
//
// Fields:
//   - Name: Package name
//   - Current: Installed version
//   - Latest: Newest available version
//   - Severity: Version jump class (major, minor, patch, unknown)
//   - Status: Outdated, or Held when the hold list excludes it
type OutdatedPackage struct {
	Name     string `json:"name" xml:"name"`
	Current  string `json:"current" xml:"current"`
	Latest   string `json:"latest" xml:"latest"`
	Severity string `json:"severity" xml:"severity"`
	Status   string `json:"status" xml:"status"`
}

// CycleReport represents the output data for the update command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate cycle statistics
//   - Packages: Per-package outcomes
//   - Warnings: Warning messages gathered during the cycle (omitted if empty)
//   - Errors: Error messages gathered during the cycle (omitted if empty)
type CycleReport struct {
	XMLName  xml.Name       `json:"-" xml:"cycleReport"`
	Summary  CycleSummary   `json:"summary" xml:"summary"`
	Packages []CyclePackage `json:"packages" xml:"packages>package"`
	Warnings []string       `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
	Errors   []string       `json:"errors,omitempty" xml:"errors>error,omitempty"`
}

// CycleSummary holds aggregate statistics for one update cycle.
//
// Fields:
//   - CycleID: The cycle identifier
//   - Success: Whether every targeted upgrade succeeded
//   - Total: Number of upgrade candidates
//   - Upgraded: Number of successful upgrades
//   - Failed: Number of failed upgrades
//   - Skipped: Number of packages excluded from the upgrade phase
//   - RolledBack: Whether the cycle snapshot was restored
//   - DryRun: Whether this was a plan-only run
//   - ManifestPath: The cycle snapshot path (omitted if empty)
type CycleSummary struct {
	CycleID      string `json:"cycle_id" xml:"cycleId"`
	Success      bool   `json:"success" xml:"success"`
	Total        int    `json:"total" xml:"total"`
	Upgraded     int    `json:"upgraded" xml:"upgraded"`
	Failed       int    `json:"failed" xml:"failed"`
	Skipped      int    `json:"skipped" xml:"skipped"`
	RolledBack   bool   `json:"rolled_back" xml:"rolledBack"`
	DryRun       bool   `json:"dry_run" xml:"dryRun"`
	ManifestPath string `json:"manifest_path,omitempty" xml:"manifestPath,omitempty"`
}

// CyclePackage represents one package's outcome in a cycle.
//
// Fields:
//   - Name: Package name
//   - Current: Installed version before the cycle
//   - Target: Version the upgrade aimed for
//   - Status: Upgraded, Failed, Planned, or Skipped
//   - Error: Failure message (omitted if empty)
type CyclePackage struct {
	Name    string `json:"name" xml:"name"`
	Current string `json:"current" xml:"current"`
	Target  string `json:"target" xml:"target"`
	Status  string `json:"status" xml:"status"`
	Error   string `json:"error,omitempty" xml:"error,omitempty"`
}

// HistoryReport represents the output data for the history command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate snapshot statistics
//   - Snapshots: The snapshots on disk, newest first
type HistoryReport struct {
	XMLName   xml.Name          `json:"-" xml:"historyReport"`
	Summary   HistorySummary    `json:"summary" xml:"summary"`
	Snapshots []HistorySnapshot `json:"snapshots" xml:"snapshots>snapshot"`
}

// HistorySummary holds aggregate statistics for the snapshot history.
//
// Fields:
//   - Total: Number of snapshots on disk
//   - Compressed: How many of them are xz-compressed
type HistorySummary struct {
	Total      int `json:"total" xml:"total"`
	Compressed int `json:"compressed" xml:"compressed"`
}

// HistorySnapshot represents one snapshot in the history report.
//
// Fields:
//   - Name: Snapshot file name
//   - Created: Snapshot time in RFC 3339 form
//   - Packages: Number of package pins in the manifest
//   - SizeBytes: On-disk size
//   - Compressed: Whether the snapshot is xz-compressed
type HistorySnapshot struct {
	Name       string `json:"name" xml:"name"`
	Created    string `json:"created" xml:"created"`
	Packages   int    `json:"packages" xml:"packages"`
	SizeBytes  int64  `json:"size_bytes" xml:"sizeBytes"`
	Compressed bool   `json:"compressed" xml:"compressed"`
}
