// Package constants provides centralized string constants used throughout the application.
package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusConstants tests the behavior of package status constants.
//
// It verifies:
//   - Status constants have the expected string values
//   - Prevents accidental changes to status constant values
func TestStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"StatusUpToDate", StatusUpToDate, "UpToDate"},
		{"StatusUpgraded", StatusUpgraded, "Upgraded"},
		{"StatusPlanned", StatusPlanned, "Planned"},
		{"StatusFailed", StatusFailed, "Failed"},
		{"StatusSkipped", StatusSkipped, "Skipped"},
		{"StatusOutdated", StatusOutdated, "Outdated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestCycleStatusConstants tests the behavior of cycle status constants.
//
// It verifies:
//   - Cycle status constants match the values persisted in the journal file
//   - Prevents accidental changes that would break journal compatibility
func TestCycleStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"CycleInProgress", CycleInProgress, "in_progress"},
		{"CycleCompleted", CycleCompleted, "completed"},
		{"CycleFailed", CycleFailed, "failed"},
		{"CycleRolledBack", CycleRolledBack, "rolled_back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestSeverityConstants tests the behavior of severity constants.
//
// It verifies:
//   - Severity constants have the expected lowercase values
func TestSeverityConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"SeverityMajor", SeverityMajor, "major"},
		{"SeverityMinor", SeverityMinor, "minor"},
		{"SeverityPatch", SeverityPatch, "patch"},
		{"SeverityUnknown", SeverityUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestPlaceholderConstants tests the behavior of placeholder constants.
//
// It verifies:
//   - PlaceholderNA has the expected "#N/A" value
func TestPlaceholderConstants(t *testing.T) {
	assert.Equal(t, "#N/A", PlaceholderNA, "PlaceholderNA should be '#N/A'")
}

// TestFilterConstants tests the behavior of filter constants.
//
// It verifies:
//   - FilterAll has the expected "all" value
func TestFilterConstants(t *testing.T) {
	assert.Equal(t, "all", FilterAll, "FilterAll should be 'all'")
}

// TestIconConstants tests the behavior of icon constants.
//
// It verifies:
//   - All icon constants are non-empty strings
//   - Icons are properly defined for use in CLI output
func TestIconConstants(t *testing.T) {
	icons := []struct {
		name     string
		constant string
	}{
		{"IconSuccess", IconSuccess},
		{"IconWarning", IconWarning},
		{"IconError", IconError},
		{"IconInfo", IconInfo},
		{"IconPending", IconPending},
		{"IconIgnored", IconIgnored},
		{"IconRollback", IconRollback},
		{"IconCheckmark", IconCheckmark},
		{"IconCross", IconCross},
		{"IconWarn", IconWarn},
		{"IconLightbulb", IconLightbulb},
	}

	for _, icon := range icons {
		t.Run(icon.name, func(t *testing.T) {
			assert.NotEmpty(t, icon.constant, "icon %s should not be empty", icon.name)
		})
	}
}

// TestIconsAreDistinct tests the behavior of icon uniqueness.
//
// It verifies:
//   - All status icons have distinct values
//   - No two icons share the same visual representation
func TestIconsAreDistinct(t *testing.T) {
	icons := map[string]string{
		"IconSuccess":  IconSuccess,
		"IconWarning":  IconWarning,
		"IconError":    IconError,
		"IconInfo":     IconInfo,
		"IconPending":  IconPending,
		"IconIgnored":  IconIgnored,
		"IconRollback": IconRollback,
	}

	// Check that all status icons are different
	seen := make(map[string]string)
	for name, icon := range icons {
		if existingName, exists := seen[icon]; exists {
			t.Errorf("Icon %s has same value as %s: %s", name, existingName, icon)
		}
		seen[icon] = name
	}
}
