// Package outdated decides whether a pipx-managed package has a newer version.
//
// For each top-level package it runs `pipx runpip <pkg> list -o`, picks the
// row that belongs to the package and turns it into a Record. The outcome is
// always one of three states: UpToDate, Outdated or CheckFailed.
package outdated

import (
	"context"
	"strings"

	"github.com/ajxudir/pipx-outdated/pkg/constants"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// Status is the outcome of checking one package.
type Status string

const (
	// StatusUpToDate means no row for the package was found.
	StatusUpToDate Status = constants.StatusUpToDate
	// StatusOutdated means a row was found and parsed.
	StatusOutdated Status = constants.StatusOutdated
	// StatusCheckFailed means the command failed or the row was malformed.
	StatusCheckFailed Status = constants.StatusCheckFailed
)

// Result is the tri-state outcome of Checker.Check.
//
// Fields:
//   - Package: The checked package
//   - Status: UpToDate, Outdated or CheckFailed
//   - Record: Set only when Status is StatusOutdated
//   - Err: Set only when Status is StatusCheckFailed
type Result struct {
	Package string
	Status  Status
	Record  *Record
	Err     error
}

// Failed reports whether the check could not produce an answer.
func (r Result) Failed() bool {
	return r.Status == StatusCheckFailed
}

// OutdatedSource lists the outdated distributions of one package's venv.
//
// *pipx.Client satisfies it.
type OutdatedSource interface {
	RunpipOutdated(ctx context.Context, pkg string) ([]string, error)
}

// Checker checks single packages.
//
// Fields:
//   - Source: Where pip's outdated listing comes from
//   - Mode: Line matching policy
//   - Logger: Destination for debug traces and warnings
type Checker struct {
	Source OutdatedSource
	Mode   MatchMode
	Logger *verbose.Logger
}

// NewChecker creates a Checker.
//
// Parameters:
//   - source: Outdated listing source
//   - mode: Matching policy; MatchSubstring when empty
//   - logger: Logger, may be nil
//
// Returns:
//   - *Checker: Ready for concurrent use
func NewChecker(source OutdatedSource, mode MatchMode, logger *verbose.Logger) *Checker {
	if mode == "" {
		mode = MatchSubstring
	}
	return &Checker{Source: source, Mode: mode, Logger: logger}
}

// Check runs the outdated listing for pkg and classifies the result.
//
// It performs the following operations:
//   - Step 1: Runs the listing; a command error yields CheckFailed
//   - Step 2: Finds the package's row; none yields UpToDate
//   - Step 3: Parses the row; a malformed row yields CheckFailed with a
//     warning and a *MalformedLineError, which callers skip rather than abort on
//   - Step 4: Returns Outdated with the parsed Record
//
// Parameters:
//   - ctx: Context for cancellation
//   - pkg: Top-level package name
//
// Returns:
//   - Result: Never panics on unexpected output
func (c *Checker) Check(ctx context.Context, pkg string) Result {
	logger := verbose.Or(c.Logger)

	lines, err := c.Source.RunpipOutdated(ctx, pkg)
	if err != nil {
		logger.Printf("Check failed for %s: %v", pkg, err)
		return Result{Package: pkg, Status: StatusCheckFailed, Err: err}
	}

	line, ok := MatchLine(pkg, lines, c.Mode)
	if !ok {
		logger.Printf("%s is up to date (%d outdated rows, none matched)", pkg, countRows(lines))
		return Result{Package: pkg, Status: StatusUpToDate}
	}

	rec, err := ParseRecord(pkg, line)
	if err != nil {
		logger.Warnf("%v", err)
		return Result{Package: pkg, Status: StatusCheckFailed, Err: err}
	}

	if NormalizeName(rec.Distribution) != NormalizeName(pkg) {
		logger.Printf("%s matched row for distribution %s", pkg, rec.Distribution)
	}
	logger.Printf("%s is outdated: %s -> %s (%s)", pkg, rec.Current, rec.Latest, rec.UpdateType)
	return Result{Package: pkg, Status: StatusOutdated, Record: &rec}
}

// countRows counts data rows, skipping blank lines and pip's header rows.
func countRows(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isPipHeader(line) {
			continue
		}
		n++
	}
	return n
}
