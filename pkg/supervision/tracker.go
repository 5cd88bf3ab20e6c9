package supervision

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
)

// FailureInfo holds one failed package check.
//
// Fields:
//   - Package: Top-level package name
//   - Reason: Human-readable explanation
//   - Err: The underlying error
type FailureInfo struct {
	Package string
	Reason  string
	Err     error
}

// FailureTracker collects failed checks.
//
// It is safe for concurrent use.
type FailureTracker struct {
	mu       sync.RWMutex
	failures []FailureInfo
}

// NewFailureTracker creates a new FailureTracker.
//
// Returns:
//   - *FailureTracker: Initialized tracker ready for use
func NewFailureTracker() *FailureTracker {
	return &FailureTracker{}
}

// Add records a failed check. A nil error is ignored.
//
// Parameters:
//   - pkg: Package whose check failed
//   - err: Failure cause
func (t *FailureTracker) Add(pkg string, err error) {
	if err == nil {
		return
	}
	info := FailureInfo{Package: pkg, Reason: DeriveFailureReason(err), Err: err}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = append(t.failures, info)
}

// Failures returns a snapshot sorted by package name.
//
// Returns:
//   - []FailureInfo: Copy of the tracked failures, or nil when empty
func (t *FailureTracker) Failures() []FailureInfo {
	t.mu.RLock()
	if len(t.failures) == 0 {
		t.mu.RUnlock()
		return nil
	}
	out := append([]FailureInfo(nil), t.failures...)
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Package < out[j].Package
	})
	return out
}

// Errors returns the underlying errors in Failures order.
func (t *FailureTracker) Errors() []error {
	failures := t.Failures()
	if failures == nil {
		return nil
	}
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Count returns the number of failed checks.
func (t *FailureTracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.failures)
}

// Messages returns one formatted line per failure.
//
// Parameters:
//   - prefix: Marker placed before each line (an icon on terminals, "-" otherwise)
//
// Returns:
//   - []string: "<prefix> <package>: <reason>" lines, or nil if nothing failed
//
// Example:
//
//	tracker.Messages("❌")
//	// ❌ black: pipx exited with status 1: Package black is not installed
func (t *FailureTracker) Messages(prefix string) []string {
	failures := t.Failures()
	if failures == nil {
		return nil
	}
	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, strings.TrimSpace(fmt.Sprintf("%s %s: %s", prefix, f.Package, f.Reason)))
	}
	return messages
}

// DeriveFailureReason turns a check error into a short explanation.
//
// Parameters:
//   - err: Error of a failed pipx command, usually a *cmdexec.CommandError
//
// Returns:
//   - string: Human-readable reason
func DeriveFailureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "check cancelled after an earlier failure"
	case errors.Is(err, context.DeadlineExceeded):
		return "pipx timed out"
	}

	if ce, ok := cmdexec.IsCommandError(err); ok {
		detail := ce.Stderr
		if i := strings.IndexByte(detail, '\n'); i >= 0 {
			detail = detail[:i]
		}
		if ce.ExitCode < 0 {
			return fmt.Sprintf("could not run %s: %v", ce.Name, ce.Err)
		}
		if detail == "" {
			return fmt.Sprintf("%s exited with status %d", ce.Name, ce.ExitCode)
		}
		return fmt.Sprintf("%s exited with status %d: %s", ce.Name, ce.ExitCode, strings.TrimSpace(detail))
	}
	return err.Error()
}
