package scan

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/envup/pkg/constants"
)

// ClassifySeverity labels the version jump between current and latest.
//
// It performs the following operations:
//   - Canonicalizes both versions to semver, padding missing components
//   - Compares major, then minor, then patch components
//
// Versions that cannot be canonicalized (date stamps, exotic schemes) are
// labeled unknown rather than dropped, so the entry still reaches the
// upgrade phase.
//
// Parameters:
//   - current: The installed version
//   - latest: The newest available version
//
// Returns:
//   - string: One of constants.SeverityMajor, SeverityMinor, SeverityPatch,
//     or SeverityUnknown
func ClassifySeverity(current, latest string) string {
	currentCanonical := canonicalSemver(current)
	latestCanonical := canonicalSemver(latest)
	if currentCanonical == "" || latestCanonical == "" {
		return constants.SeverityUnknown
	}

	curMajor, curMinor, curPatch := semverParts(currentCanonical)
	newMajor, newMinor, newPatch := semverParts(latestCanonical)

	switch {
	case curMajor != newMajor:
		return constants.SeverityMajor
	case curMinor != newMinor:
		return constants.SeverityMinor
	case curPatch != newPatch:
		return constants.SeverityPatch
	default:
		return constants.SeverityPatch
	}
}

// canonicalSemver converts a version string to canonical semver form.
//
// It performs the following operations:
//   - Adds the v prefix if missing
//   - Pads short versions (1 or 1.2) with zero components until valid
//
// Parameters:
//   - version: The version string to canonicalize
//
// Returns:
//   - string: Canonical semver like v1.2.3, or empty when not parseable
func canonicalSemver(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == constants.PlaceholderNA {
		return ""
	}

	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}

	trimmed := strings.TrimPrefix(cleaned, "v")
	parts := strings.Split(trimmed, ".")
	for len(parts) > 0 && len(parts) < 3 {
		candidate := "v" + strings.Join(parts, ".")
		if semver.IsValid(candidate) {
			return semver.Canonical(candidate)
		}
		parts = append(parts, "0")
	}

	if semver.IsValid(cleaned) {
		return semver.Canonical(cleaned)
	}

	return ""
}

// semverParts extracts the numeric components from a canonical semver string.
//
// Parameters:
//   - version: Canonical semver string with v prefix
//
// Returns:
//   - int: The major version number
//   - int: The minor version number
//   - int: The patch version number
func semverParts(version string) (int, int, int) {
	trimmed := strings.TrimPrefix(version, "v")
	if idx := strings.IndexAny(trimmed, "-+"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	parts := strings.SplitN(trimmed, ".", 3)

	major := parsePart(parts, 0)
	minor := parsePart(parts, 1)
	patch := parsePart(parts, 2)

	return major, minor, patch
}

// parsePart parses a single version part from a split version string.
//
// Parameters:
//   - parts: Array of version parts split by delimiter
//   - index: The index of the part to parse
//
// Returns:
//   - int: The parsed integer value, or 0 if index out of bounds or parsing fails
func parsePart(parts []string, index int) int {
	if index >= len(parts) {
		return 0
	}
	value, err := strconv.Atoi(parts[index])
	if err != nil {
		return 0
	}
	return value
}
