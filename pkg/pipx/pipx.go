// Package pipx wraps the pipx command line for pipx-outdated.
//
// It knows the two pipx invocations the checker needs, `pipx list` and
// `pipx runpip <package> list -o`, and how to read top-level package names
// out of the human-readable listing.
package pipx

import (
	"context"
	"strings"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// DefaultExecutable is the pipx program name resolved through PATH.
const DefaultExecutable = "pipx"

// TopLevelMarker prefixes every top-level entry of `pipx list`.
//
// pipx prints one "   package <name> <version>, installed using <python>"
// line per venv, followed by more deeply indented "    - <app>" lines for the
// exposed apps and injected dependencies.
const TopLevelMarker = "   package"

const (
	subcmdList   = "list"
	subcmdRunpip = "runpip"
	flagOutdated = "-o"
)

// ListArgs returns the arguments of the top-level listing command.
func ListArgs() []string {
	return []string{subcmdList}
}

// RunpipOutdatedArgs returns the arguments that list outdated distributions
// inside pkg's isolated environment.
//
// Parameters:
//   - pkg: Top-level package name
//
// Returns:
//   - []string: runpip <pkg> list -o
func RunpipOutdatedArgs(pkg string) []string {
	return []string{subcmdRunpip, pkg, subcmdList, flagOutdated}
}

// Client runs pipx commands through a cmdexec.Runner.
//
// Fields:
//   - Executable: pipx program name or path
//   - Runner: Command runner shared by all calls
//   - Logger: Destination for warnings about skipped lines
type Client struct {
	Executable string
	Runner     cmdexec.Runner
	Logger     *verbose.Logger
}

// NewClient creates a Client.
//
// Parameters:
//   - executable: pipx program; DefaultExecutable when empty
//   - runner: Command runner
//   - logger: Logger, may be nil
//
// Returns:
//   - *Client: Ready to use client
func NewClient(executable string, runner cmdexec.Runner, logger *verbose.Logger) *Client {
	if strings.TrimSpace(executable) == "" {
		executable = DefaultExecutable
	}
	return &Client{Executable: executable, Runner: runner, Logger: logger}
}

// ListTopLevel runs `pipx list` and returns the top-level package names.
//
// A command failure is returned unchanged so the caller can classify it with
// cmdexec.IsCommandError.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []string: Package names in listing order
//   - error: Command failure
func (c *Client) ListTopLevel(ctx context.Context) ([]string, error) {
	res, err := c.Runner.Run(ctx, c.Executable, ListArgs()...)
	if err != nil {
		return nil, err
	}

	names, skipped := ParseTopLevel(res.Lines)
	logger := verbose.Or(c.Logger)
	for _, line := range skipped {
		logger.Warnf("skipping malformed pipx list line: %q", line)
	}
	logger.Printf("Found %d top-level packages", len(names))
	return names, nil
}

// RunpipOutdated runs `pipx runpip <pkg> list -o` and returns its output lines.
//
// Parameters:
//   - ctx: Context for cancellation
//   - pkg: Top-level package name
//
// Returns:
//   - []string: Output lines of pip's outdated listing
//   - error: Command failure
func (c *Client) RunpipOutdated(ctx context.Context, pkg string) ([]string, error) {
	res, err := c.Runner.Run(ctx, c.Executable, RunpipOutdatedArgs(pkg)...)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}
