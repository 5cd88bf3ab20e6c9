package outdated

import (
	"errors"
	"fmt"
	"strings"
)

// Record describes one outdated top-level package.
//
// Fields:
//   - Package: The top-level package name as listed by pipx
//   - Distribution: First field of the matched pip line; differs from Package
//     when a substring match hit another distribution
//   - Current: Installed version
//   - Latest: Latest available version
//   - Kind: Distribution kind reported by pip (wheel, sdist)
//   - UpdateType: major, minor, patch, prerelease or unknown
type Record struct {
	Package      string `json:"package" yaml:"package"`
	Distribution string `json:"distribution" yaml:"distribution"`
	Current      string `json:"current" yaml:"current"`
	Latest       string `json:"latest" yaml:"latest"`
	Kind         string `json:"kind" yaml:"kind"`
	UpdateType   string `json:"update_type" yaml:"update_type"`
}

// MalformedLineError reports a matched line that lacks the expected fields.
type MalformedLineError struct {
	Package string
	Line    string
	Fields  int
}

// Error implements the error interface.
func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed outdated line for %s: expected 4 fields (name, version, latest, type), got %d: %q",
		e.Package, e.Fields, e.Line)
}

// IsMalformedLine reports whether err comes from an unparseable pip row.
func IsMalformedLine(err error) bool {
	var mle *MalformedLineError
	return errors.As(err, &mle)
}

// ParseRecord parses a `pip list -o` row into a Record.
//
// The row must carry at least four whitespace-separated fields: name,
// installed version, latest version and distribution kind. Extra trailing
// fields are ignored. The package name is taken from pkg, not from the row.
//
// Parameters:
//   - pkg: The top-level package being checked
//   - line: The matched row
//
// Returns:
//   - Record: Parsed record with UpdateType filled in
//   - error: *MalformedLineError when fewer than four fields are present
func ParseRecord(pkg, line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, &MalformedLineError{Package: pkg, Line: line, Fields: len(fields)}
	}
	rec := Record{
		Package:      pkg,
		Distribution: fields[0],
		Current:      fields[1],
		Latest:       fields[2],
		Kind:         fields[3],
	}
	rec.UpdateType = ClassifyUpdate(rec.Current, rec.Latest)
	return rec, nil
}
