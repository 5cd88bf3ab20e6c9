package outdated

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode selects how a package's own line is found in pip's outdated listing.
type MatchMode string

const (
	// MatchSubstring picks the first line containing the package name anywhere.
	//
	// This is the historical behavior. It also matches distributions whose name
	// contains the package name: "foo" matches "foolib 1.0 2.0 wheel".
	MatchSubstring MatchMode = "substring"

	// MatchExact picks the first line whose first field is the package name,
	// compared after Python name normalization.
	MatchExact MatchMode = "exact"
)

// ParseMatchMode parses a match mode string.
//
// Parameters:
//   - s: "substring", "exact" or empty (substring)
//
// Returns:
//   - MatchMode: The parsed mode
//   - error: When s is not a known mode
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchExact:
		return MatchExact, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (expected %q or %q)", s, MatchSubstring, MatchExact)
	}
}

// MatchLine returns the first line of lines that belongs to pkg.
//
// Exact mode skips pip's column header and separator rows. Substring mode
// scans every line as-is.
//
// Parameters:
//   - pkg: Top-level package name
//   - lines: Output of `pip list -o` from the package's venv
//   - mode: Matching policy
//
// Returns:
//   - string: The matched line
//   - bool: false when no line matches
func MatchLine(pkg string, lines []string, mode MatchMode) (string, bool) {
	if pkg == "" {
		return "", false
	}
	want := NormalizeName(pkg)
	for _, line := range lines {
		switch mode {
		case MatchExact:
			if isPipHeader(line) {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) > 0 && NormalizeName(fields[0]) == want {
				return line, true
			}
		default:
			if strings.Contains(line, pkg) {
				return line, true
			}
		}
	}
	return "", false
}

// isPipHeader reports whether line is the "Package Version Latest Type"
// header or the dashed separator under it.
func isPipHeader(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	if len(fields) >= 3 && fields[0] == "Package" && fields[1] == "Version" && fields[2] == "Latest" {
		return true
	}
	for _, f := range fields {
		if strings.Trim(f, "-") != "" {
			return false
		}
	}
	return true
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the canonical form of a Python distribution name.
//
// Runs of "-", "_" and "." collapse to a single "-" and the result is
// lower-cased, so "Foo_Bar" and "foo-bar" compare equal.
func NormalizeName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(strings.TrimSpace(name), "-"))
}
