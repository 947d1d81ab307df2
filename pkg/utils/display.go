// Package utils provides small helpers shared across envup packages.
package utils

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the display width of a string, accounting for unicode
// characters.
//
// Wide characters (CJK, emoji) occupy two terminal cells and are counted as
// such, so table columns line up regardless of package name alphabet.
//
// Parameters:
//   - val: The string to measure
//
// Returns:
//   - int: The display width in character cells
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads a string with spaces to a target display width.
//
// Strings already at or beyond the target width are returned unchanged.
//
// Parameters:
//   - val: The string to pad
//   - width: The target display width in character cells
//
// Returns:
//   - string: The padded string
func ToWidth(val string, width int) string {
	if width <= 0 {
		return val
	}
	current := DisplayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Max returns the maximum of the given integers, 0 when none are given.
//
// Parameters:
//   - values: Integers to compare
//
// Returns:
//   - int: The largest value
func Max(values ...int) int {
	m := 0
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// HumanSize formats a byte count for display.
//
// Sizes below 1 KiB are shown in bytes, then KiB and MiB with one decimal.
//
// Parameters:
//   - size: The size in bytes
//
// Returns:
//   - string: The formatted size (e.g. "312 B", "1.4 KiB", "2.0 MiB")
func HumanSize(size int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)
	switch {
	case size >= mib:
		return fmt.Sprintf("%.1f MiB", float64(size)/float64(mib))
	case size >= kib:
		return fmt.Sprintf("%.1f KiB", float64(size)/float64(kib))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
