// Package utils holds small text helpers shared by the report printers.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the display width of a string, accounting for unicode characters.
//
// Wide characters (CJK, emoji) count as two terminal cells.
//
// Parameters:
//   - val: The string to measure
//
// Returns:
//   - int: The display width in character cells
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth left-aligns val in a field of width cells.
//
// Strings already at or beyond width are returned unchanged, never cut.
//
// Parameters:
//   - val: The string to pad
//   - width: Target display width; values <= 0 leave val untouched
//
// Returns:
//   - string: val followed by padding spaces
func ToWidth(val string, width int) string {
	pad := padding(val, width)
	if pad == 0 {
		return val
	}
	return val + strings.Repeat(" ", pad)
}

// ToWidthRight right-aligns val in a field of width cells.
func ToWidthRight(val string, width int) string {
	pad := padding(val, width)
	if pad == 0 {
		return val
	}
	return strings.Repeat(" ", pad) + val
}

// Center centers val in a field of width cells.
//
// When the padding is odd the extra space goes to the right, matching
// Python's str.center-style "^" alignment used by the historical report.
func Center(val string, width int) string {
	pad := padding(val, width)
	if pad == 0 {
		return val
	}
	left := pad / 2
	return strings.Repeat(" ", left) + val + strings.Repeat(" ", pad-left)
}

func padding(val string, width int) int {
	if width <= 0 {
		return 0
	}
	current := DisplayWidth(val)
	if current >= width {
		return 0
	}
	return width - current
}
