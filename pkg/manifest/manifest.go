// Package manifest models the restorable environment snapshot for envup.
// A manifest is an ordered set of package pins, serialized as newline-delimited
// requirement lines that the wrapped tool can consume directly
// (e.g. pip install -r <file>). Most pins are name==version entries; packages
// installed from a URL or local path appear as "name @ ref" lines and editable
// installs as "-e ref" lines, both preserved so restore reinstalls them too.
package manifest

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/envup/pkg/errors"
)

// Pin is a single package pinned by the manifest.
//
// Exactly one of Version and Ref is set: Version for registry installs
// reported as name==version, Ref for direct references (URL or local path).
// Editable requirement lines carry their full "-e ref" text in Ref with an
// empty Name.
type Pin struct {
	// Name is the package name, empty for editable requirement lines.
	Name string

	// Version is the exact installed version for name==version pins.
	Version string

	// Ref is the direct reference for packages not installed from a registry.
	Ref string
}

// String returns the serialized requirement line for the pin.
//
// Returns:
//   - string: name==version, "name @ ref", or the verbatim editable line
func (p Pin) String() string {
	switch {
	case p.Ref != "" && p.Name != "":
		return p.Name + " @ " + p.Ref
	case p.Ref != "":
		return p.Ref
	default:
		return p.Name + "==" + p.Version
	}
}

// Manifest is an ordered collection of package pins, unique by name.
//
// Insertion order is preserved so the serialized file matches the order the
// tool reported the packages in. Setting an existing name updates the pin
// in place without moving the entry. Editable lines, which carry no name,
// are keyed by their full text.
type Manifest struct {
	pins *orderedmap.OrderedMap
}

// New creates an empty manifest.
//
// Returns:
//   - *Manifest: New manifest with no pins
func New() *Manifest {
	return &Manifest{pins: orderedmap.New()}
}

// Set adds or updates a versioned package pin.
//
// A repeated name keeps its original position but takes the new pin.
//
// Parameters:
//   - name: The package name
//   - version: The exact version to pin
func (m *Manifest) Set(name, version string) {
	m.pins.Set(name, Pin{Name: name, Version: version})
}

// SetRef adds or updates a direct-reference pin.
//
// Parameters:
//   - name: The package name
//   - ref: The URL or local path the package is installed from
func (m *Manifest) SetRef(name, ref string) {
	m.pins.Set(name, Pin{Name: name, Ref: ref})
}

// setLine preserves a requirement line that carries no parseable name,
// keyed by its full text.
func (m *Manifest) setLine(line string) {
	m.pins.Set(line, Pin{Ref: line})
}

// Get returns the pinned version for a package.
//
// Direct-reference pins report presence with an empty version.
//
// Parameters:
//   - name: The package name to look up
//
// Returns:
//   - string: The pinned version, empty if not present or pinned by reference
//   - bool: true if the package is pinned
func (m *Manifest) Get(name string) (string, bool) {
	value, ok := m.pins.Get(name)
	if !ok {
		return "", false
	}
	pin, ok := value.(Pin)
	return pin.Version, ok
}

// Has reports whether a package is pinned.
//
// Parameters:
//   - name: The package name to look up
//
// Returns:
//   - bool: true if the package is pinned
func (m *Manifest) Has(name string) bool {
	_, ok := m.pins.Get(name)
	return ok
}

// Len returns the number of pinned packages.
//
// Returns:
//   - int: Count of pins in the manifest
func (m *Manifest) Len() int {
	return len(m.pins.Keys())
}

// Pins returns all pins in insertion order.
//
// Returns:
//   - []Pin: Ordered slice of package pins
func (m *Manifest) Pins() []Pin {
	keys := m.pins.Keys()
	pins := make([]Pin, 0, len(keys))
	for _, key := range keys {
		value, _ := m.pins.Get(key)
		pin, _ := value.(Pin)
		pins = append(pins, pin)
	}
	return pins
}

// Parse parses newline-delimited freeze output into a manifest.
//
// It performs the following operations:
//   - Skips blank lines and lines starting with #
//   - Splits name==version lines at the first == into name and version
//   - Splits "name @ ref" lines into name and direct reference
//   - Preserves editable lines (-e / --editable prefix) verbatim
//   - Keeps the last pin for a name that appears more than once
//
// Direct references and editable lines are what the wrapped tool emits for
// VCS and local-path installs; they stay in the manifest because the restore
// command consumes the file as-is.
//
// Parameters:
//   - data: Raw manifest content (typically the wrapped tool's freeze output)
//
// Returns:
//   - *Manifest: The parsed manifest
//   - error: *errors.ParseError if a line matches no known requirement form
func Parse(data []byte) (*Manifest, error) {
	m := New()

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "-e ") || strings.HasPrefix(trimmed, "--editable ") {
			m.setLine(trimmed)
			continue
		}

		if name, version, found := strings.Cut(trimmed, "=="); found {
			name = strings.TrimSpace(name)
			version = strings.TrimSpace(version)
			if name == "" || version == "" {
				return nil, errors.NewParseError("manifest",
					fmt.Sprintf("line %d: expected name==version, got %q", i+1, trimmed), nil)
			}
			m.Set(name, version)
			continue
		}

		if name, ref, found := strings.Cut(trimmed, " @ "); found {
			name = strings.TrimSpace(name)
			ref = strings.TrimSpace(ref)
			if name != "" && ref != "" {
				m.SetRef(name, ref)
				continue
			}
		}

		return nil, errors.NewParseError("manifest",
			fmt.Sprintf("line %d: unrecognized requirement %q", i+1, trimmed), nil)
	}

	return m, nil
}

// Serialize returns the manifest as newline-delimited requirement lines.
//
// The output ends with a trailing newline and round-trips through Parse to
// the identical ordered set.
//
// Returns:
//   - []byte: Serialized manifest content, empty for an empty manifest
func (m *Manifest) Serialize() []byte {
	var sb strings.Builder
	for _, pin := range m.Pins() {
		sb.WriteString(pin.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
