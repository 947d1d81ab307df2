// Package scan parses the wrapped tool's outdated report for envup.
// The report is JSON, either an array of objects (pip style) or an object
// keyed by package name (npm style), with configurable key names for tools
// that spell the fields differently.
package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ajxudir/envup/pkg/errors"
)

// UTF-8 BOM bytes (EF BB BF)
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM removes UTF-8 BOM from the beginning of output if present.
//
// The UTF-8 BOM (Byte Order Mark) is a sequence of bytes (EF BB BF) that some
// tools add to the beginning of text output. This function detects and removes it.
//
// Parameters:
//   - output: Raw bytes that may start with a UTF-8 BOM
//
// Returns:
//   - []byte: The output with BOM removed if present, or unchanged output otherwise
func stripBOM(output []byte) []byte {
	if bytes.HasPrefix(output, utf8BOM) {
		return output[len(utf8BOM):]
	}
	return output
}

// Entry is one outdated package from the tool's report.
type Entry struct {
	// Name is the package name.
	Name string

	// Current is the installed version.
	Current string

	// Latest is the newest available version.
	Latest string

	// Severity classifies the version jump (major, minor, patch, unknown).
	Severity string
}

// String returns a compact representation of the entry.
//
// Returns:
//   - string: the entry as name current->latest
func (e Entry) String() string {
	return fmt.Sprintf("%s %s -> %s", e.Name, e.Current, e.Latest)
}

// Keys names the JSON fields of the outdated report.
type Keys struct {
	// Name is the JSON key holding the package name.
	Name string

	// Current is the JSON key holding the installed version.
	Current string

	// Latest is the JSON key holding the latest available version.
	Latest string
}

// DefaultKeys returns pip's field names for the outdated report.
//
// Returns:
//   - Keys: name, version, latest_version
func DefaultKeys() Keys {
	return Keys{Name: "name", Current: "version", Latest: "latest_version"}
}

// ParseReport parses the tool's outdated report into entries.
//
// It performs the following operations:
//   - Strips UTF-8 BOM if present
//   - Unmarshals the report as a JSON array of objects, or an object keyed
//     by package name
//   - Extracts name, current and latest version per entry using the
//     configured keys
//   - Classifies the severity of each version jump
//
// Empty output and an empty JSON array both yield an empty entry list,
// meaning everything is up to date.
//
// Parameters:
//   - output: Raw report bytes from the tool's outdated command
//   - keys: JSON key names for the report fields
//
// Returns:
//   - []Entry: Parsed entries in report order
//   - error: *errors.ParseError when the report is not valid JSON or an
//     entry lacks a required field
func ParseReport(output []byte, keys Keys) ([]Entry, error) {
	output = stripBOM(output)

	if len(bytes.TrimSpace(output)) == 0 {
		return []Entry{}, nil
	}

	var payload any
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, errors.NewParseError("outdated report", "invalid JSON", err)
	}

	switch node := payload.(type) {
	case []any:
		return parseEntryArray(node, keys)
	case map[string]any:
		return parseEntryMap(node, keys)
	default:
		return nil, errors.NewParseError("outdated report",
			fmt.Sprintf("expected JSON array or object, got %T", payload), nil)
	}
}

// parseEntryArray parses the pip-style array-of-objects report form.
//
// Parameters:
//   - items: Decoded JSON array elements
//   - keys: JSON key names for the report fields
//
// Returns:
//   - []Entry: Parsed entries in array order
//   - error: *errors.ParseError when an element is not an object or lacks a field
func parseEntryArray(items []any, keys Keys) ([]Entry, error) {
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.NewParseError("outdated report",
				fmt.Sprintf("entry %d: expected object, got %T", i, item), nil)
		}

		entry, err := entryFromObject(obj, keys, fmt.Sprintf("entry %d", i))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseEntryMap parses the npm-style object report form where keys are
// package names and values carry the versions.
//
// Names come from the object keys; a name field inside the value, if present,
// is ignored. Entries are returned in sorted name order since JSON objects
// carry no order.
//
// Parameters:
//   - items: Decoded JSON object
//   - keys: JSON key names for the report fields
//
// Returns:
//   - []Entry: Parsed entries sorted by name
//   - error: *errors.ParseError when a value is not an object or lacks a field
func parseEntryMap(items map[string]any, keys Keys) ([]Entry, error) {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		obj, ok := items[name].(map[string]any)
		if !ok {
			return nil, errors.NewParseError("outdated report",
				fmt.Sprintf("entry %q: expected object, got %T", name, items[name]), nil)
		}

		current, err := stringField(obj, keys.Current, name)
		if err != nil {
			return nil, err
		}
		latest, err := stringField(obj, keys.Latest, name)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			Name:     name,
			Current:  current,
			Latest:   latest,
			Severity: ClassifySeverity(current, latest),
		})
	}
	return entries, nil
}

// entryFromObject extracts one entry from a decoded report object.
//
// Parameters:
//   - obj: The decoded JSON object
//   - keys: JSON key names for the report fields
//   - where: Position description used in error messages
//
// Returns:
//   - Entry: The extracted entry with severity classified
//   - error: *errors.ParseError when a required field is missing or empty
func entryFromObject(obj map[string]any, keys Keys, where string) (Entry, error) {
	name, err := stringField(obj, keys.Name, where)
	if err != nil {
		return Entry{}, err
	}
	current, err := stringField(obj, keys.Current, where)
	if err != nil {
		return Entry{}, err
	}
	latest, err := stringField(obj, keys.Latest, where)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:     name,
		Current:  current,
		Latest:   latest,
		Severity: ClassifySeverity(current, latest),
	}, nil
}

// stringField reads a required string field from a report object.
//
// Numeric values are rendered as strings so reports that emit bare numbers
// for versions still parse.
//
// Parameters:
//   - obj: The decoded JSON object
//   - key: The field key to read
//   - where: Position description used in error messages
//
// Returns:
//   - string: The field value, trimmed
//   - error: *errors.ParseError when the field is missing or empty
func stringField(obj map[string]any, key, where string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", errors.NewParseError("outdated report",
			fmt.Sprintf("%s: missing field %q", where, key), nil)
	}

	value := strings.TrimSpace(fmt.Sprint(raw))
	if value == "" || raw == nil {
		return "", errors.NewParseError("outdated report",
			fmt.Sprintf("%s: empty field %q", where, key), nil)
	}

	return value, nil
}
