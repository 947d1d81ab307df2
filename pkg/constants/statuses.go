// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Package status constants represent the state of a package during an update cycle.
const (
	// StatusUpToDate indicates the package is already at the latest version.
	StatusUpToDate = "UpToDate"

	// StatusUpgraded indicates the package was successfully upgraded.
	StatusUpgraded = "Upgraded"

	// StatusPlanned indicates the package upgrade is planned (dry-run mode).
	StatusPlanned = "Planned"

	// StatusFailed indicates the upgrade invocation failed.
	StatusFailed = "Failed"

	// StatusSkipped indicates the package was excluded from the upgrade phase.
	StatusSkipped = "Skipped"

	// StatusOutdated indicates a newer version is available for the package.
	StatusOutdated = "Outdated"

	// StatusHeld indicates the package is excluded by the configured hold list.
	StatusHeld = "Held"
)

// Cycle status constants represent the state of one update cycle, persisted
// in the cycle journal between phase transitions.
const (
	// CycleInProgress indicates the cycle has started mutating the environment.
	CycleInProgress = "in_progress"

	// CycleCompleted indicates every targeted upgrade succeeded.
	CycleCompleted = "completed"

	// CycleFailed indicates at least one upgrade failed and no rollback ran.
	CycleFailed = "failed"

	// CycleRolledBack indicates the environment was restored from the cycle manifest.
	CycleRolledBack = "rolled_back"
)

// Severity constants classify the size of a version jump between the
// installed and the latest available version.
const (
	// SeverityMajor indicates the latest version differs in the major component.
	SeverityMajor = "major"

	// SeverityMinor indicates the latest version differs in the minor component.
	SeverityMinor = "minor"

	// SeverityPatch indicates the latest version differs in the patch component.
	SeverityPatch = "patch"

	// SeverityUnknown indicates one of the versions could not be parsed.
	SeverityUnknown = "unknown"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Output format constants.
const (
	// FilterAll is the default filter value that matches all items.
	FilterAll = "all"
)

// Icon constants for status display.
// These provide visual indicators for package states in CLI output.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconInfo indicates informational or neutral state (blue circle).
	IconInfo = "🔵"

	// IconPending indicates a pending or planned state (yellow circle).
	IconPending = "🟡"

	// IconIgnored indicates a package is excluded from processing (no entry).
	IconIgnored = "🚫"

	// IconRollback indicates a restored state (counterclockwise arrows).
	IconRollback = "🔄"

	// IconCheckmark indicates a passed check (checkmark).
	IconCheckmark = "✓"

	// IconCross indicates a failed check (cross).
	IconCross = "✗"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)
