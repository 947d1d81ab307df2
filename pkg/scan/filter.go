package scan

import (
	"strings"
)

// Skipped records a package excluded from the upgrade phase and why.
type Skipped struct {
	// Name is the package name.
	Name string

	// Reason describes why the package was skipped.
	Reason string
}

// Skip reasons recorded by Filter.
const (
	// ReasonHeld marks packages excluded by the configured hold list.
	ReasonHeld = "held by configuration"

	// ReasonNotOutdated marks requested targets absent from the outdated set.
	ReasonNotOutdated = "not outdated or not installed"

	// ReasonNotTargeted marks outdated packages outside the requested targets.
	ReasonNotTargeted = "not in requested targets"
)

// Filter restricts the outdated entries to the upgrade candidates.
//
// It performs the following operations:
//   - When targets are given, keeps only entries whose name matches one
//     (case-insensitive); requested targets with no entry are recorded as
//     skipped, not treated as fatal
//   - Drops entries held by configuration, recording the hold as skipped
//
// Parameters:
//   - entries: The outdated entries from the report
//   - targets: Requested package names, empty means all
//   - isHeld: Reports whether a package is excluded by configuration, may be nil
//
// Returns:
//   - []Entry: Entries to upgrade, in report order
//   - []Skipped: Packages excluded from the upgrade with reasons
func Filter(entries []Entry, targets []string, isHeld func(string) bool) ([]Entry, []Skipped) {
	var kept []Entry
	var skipped []Skipped

	wanted := make(map[string]bool, len(targets))
	for _, target := range targets {
		wanted[strings.ToLower(strings.TrimSpace(target))] = false
	}

	for _, entry := range entries {
		key := strings.ToLower(entry.Name)

		if len(targets) > 0 {
			if _, ok := wanted[key]; !ok {
				skipped = append(skipped, Skipped{Name: entry.Name, Reason: ReasonNotTargeted})
				continue
			}
			wanted[key] = true
		}

		if isHeld != nil && isHeld(entry.Name) {
			skipped = append(skipped, Skipped{Name: entry.Name, Reason: ReasonHeld})
			continue
		}

		kept = append(kept, entry)
	}

	// Requested targets that never matched an entry
	for _, target := range targets {
		key := strings.ToLower(strings.TrimSpace(target))
		if seen, ok := wanted[key]; ok && !seen {
			skipped = append(skipped, Skipped{Name: target, Reason: ReasonNotOutdated})
			wanted[key] = true
		}
	}

	return kept, skipped
}
