package utils

import "strings"

// ContainsIgnoreCase reports whether a slice contains a string, ignoring case.
//
// Package names from the wrapped tools compare case-insensitively, so hold
// and target lookups go through this instead of exact matching.
//
// Parameters:
//   - slice: The slice to search
//   - item: The string to look for
//
// Returns:
//   - bool: true if the item is present under case folding
func ContainsIgnoreCase(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
