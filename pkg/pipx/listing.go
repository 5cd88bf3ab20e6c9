package pipx

import "strings"

// ParseTopLevel extracts top-level package names from `pipx list` output.
//
// Only lines starting with TopLevelMarker are considered; app and dependency
// lines use a deeper indentation and are ignored. For each selected line the
// leading whitespace is stripped, the line is split on whitespace and the
// second token is the package name. Order follows the listing and duplicates
// are kept.
//
// A marker line without a name token cannot be interpreted; it is returned in
// skipped instead of aborting the parse.
//
// Parameters:
//   - lines: Raw output lines of `pipx list`
//
// Returns:
//   - names: Top-level package names in listing order
//   - skipped: Marker lines that had no name token
func ParseTopLevel(lines []string) (names []string, skipped []string) {
	names = []string{}
	for _, line := range lines {
		if !IsTopLevelLine(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			skipped = append(skipped, line)
			continue
		}
		names = append(names, fields[1])
	}
	return names, skipped
}

// IsTopLevelLine reports whether line is a top-level package entry.
func IsTopLevelLine(line string) bool {
	return strings.HasPrefix(line, TopLevelMarker)
}
