// Package cmdexec runs external programs for pipx-outdated.
//
// A command is executed directly (no shell), its standard output is split
// into ordered lines and its exit status is classified. A non-zero exit is
// returned to the caller as a *CommandError; this package never terminates
// the process, so the caller decides whether a failure aborts the batch.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// Result is the captured outcome of one command invocation.
//
// Fields:
//   - ExitCode: Process exit status; -1 when the process could not be started or was killed
//   - Lines: Standard output split into lines, in order
//   - Stderr: Raw standard error
type Result struct {
	ExitCode int
	Lines    []string
	Stderr   string
}

// Runner executes one external command to completion.
//
// Implementations must be safe for concurrent use: the scheduler calls Run
// from many goroutines at once.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (*Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return f(ctx, name, args...)
}

// CommandError reports a command that did not exit successfully.
//
// Fields:
//   - Name: Program that was executed
//   - Args: Arguments passed to the program
//   - ExitCode: Exit status, or -1 when the process never ran to completion
//   - Stderr: Captured standard error, trimmed
//   - Err: Underlying error from os/exec or the context
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
//
// The message carries the command line, the exit code and the first line of
// stderr, which is what pipx prints for unknown packages or broken venvs.
// ExecRunner logs the full stderr under --verbose.
//
// Returns:
//   - string: One-line description of the failure
func (e *CommandError) Error() string {
	cmd := verbose.JoinCommand(e.Name, e.Args)
	detail := firstLine(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %s", cmd, detail)
	}
	if detail == "" {
		return fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", cmd, e.ExitCode, detail)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError returns the *CommandError wrapped in err, if any.
func IsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ExecRunner runs programs with os/exec.
//
// Fields:
//   - Timeout: Maximum run time per command; zero means no timeout
//   - Env: Extra environment variables; values are expanded with os.ExpandEnv
//   - Logger: Destination for [DEBUG] command traces; the default logger when nil
type ExecRunner struct {
	Timeout time.Duration
	Env     map[string]string
	Logger  *verbose.Logger
}

// NewExecRunner creates an ExecRunner.
//
// Parameters:
//   - timeoutSeconds: Per-command timeout in seconds (0 for none)
//   - env: Extra environment variables, may be nil
//   - logger: Logger for command traces, may be nil
//
// Returns:
//   - *ExecRunner: Runner ready for concurrent use
func NewExecRunner(timeoutSeconds int, env map[string]string, logger *verbose.Logger) *ExecRunner {
	return &ExecRunner{
		Timeout: time.Duration(timeoutSeconds) * time.Second,
		Env:     env,
		Logger:  logger,
	}
}

// Run executes name with args and blocks until it exits.
//
// It performs the following operations:
//   - Step 1: Applies the configured timeout on top of ctx
//   - Step 2: Starts the program in its own process group
//   - Step 3: Captures stdout lines and stderr
//   - Step 4: Classifies the exit status
//
// Cancellation of ctx kills the whole process group.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Program to execute, resolved through PATH
//   - args: Program arguments
//
// Returns:
//   - *Result: Captured output; non-nil whenever the process was started
//   - error: *CommandError on non-zero exit, start failure, timeout or cancellation
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	logger := verbose.Or(r.Logger)
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty command")
	}
	if err := ctx.Err(); err != nil {
		return nil, &CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = buildEnv(r.Env)
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.CommandExec(name, args)
	runErr := cmd.Run()

	result := &Result{
		Lines:  SplitLines(stdout.String()),
		Stderr: stderr.String(),
	}
	display := verbose.JoinCommand(name, args)

	if runErr == nil {
		logger.CommandResult(display, 0, result.Lines)
		return result, nil
	}

	cmdErr := &CommandError{
		Name:     name,
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      runErr,
	}

	switch {
	case r.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded):
		cmdErr.Err = fmt.Errorf("command timed out after %s: %w", r.Timeout, context.DeadlineExceeded)
	case errors.Is(ctx.Err(), context.Canceled):
		cmdErr.Err = context.Canceled
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
	}

	result.ExitCode = cmdErr.ExitCode
	logger.CommandResult(display, cmdErr.ExitCode, result.Lines)
	logger.CommandStderr(cmdErr.Stderr)
	return result, cmdErr
}

// SplitLines splits command output into lines.
//
// CRLF line endings are normalized and the empty element produced by a
// trailing newline is dropped. Empty input yields an empty slice.
//
// Parameters:
//   - output: Raw command output
//
// Returns:
//   - []string: Lines in output order
func SplitLines(output string) []string {
	normalized := strings.ReplaceAll(output, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return []string{}
	}
	return strings.Split(normalized, "\n")
}

// buildEnv returns the process environment with extra variables appended.
func buildEnv(extra map[string]string) []string {
	environ := os.Environ()
	for key, value := range extra {
		environ = append(environ, fmt.Sprintf("%s=%s", key, os.ExpandEnv(value)))
	}
	return environ
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
