package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
)

// Response is the scripted outcome of one command in a FakeRunner.
//
// Fields:
//   - Lines: Stdout lines returned to the caller
//   - ExitCode: Non-zero produces a *cmdexec.CommandError
//   - Stderr: Stderr text attached to the result and error
//   - Delay: Time the fake command "runs"; honors context cancellation
type Response struct {
	Lines    []string
	ExitCode int
	Stderr   string
	Delay    time.Duration
}

// FakeRunner is a scripted, concurrency-safe cmdexec.Runner.
//
// Commands are keyed by their display string ("pipx runpip foo list -o").
// Unscripted commands fail with exit code 127, like a shell would.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On scripts the response for name+args and returns the runner for chaining.
func (f *FakeRunner) On(resp Response, name string, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key(name, args)] = resp
	return f
}

// Run implements cmdexec.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (*cmdexec.Result, error) {
	k := key(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, k)
	resp, ok := f.responses[k]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &cmdexec.CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
	}

	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxInFlight.Load()
		if current <= prev || f.maxInFlight.CompareAndSwap(prev, current) {
			break
		}
	}

	if !ok {
		resp = Response{ExitCode: 127, Stderr: fmt.Sprintf("unscripted command: %s", k)}
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return nil, &cmdexec.CommandError{Name: name, Args: args, ExitCode: -1, Err: ctx.Err()}
		}
	}

	lines := append([]string(nil), resp.Lines...)
	if lines == nil {
		lines = []string{}
	}
	result := &cmdexec.Result{ExitCode: resp.ExitCode, Lines: lines, Stderr: resp.Stderr}
	if resp.ExitCode != 0 {
		return result, &cmdexec.CommandError{
			Name:     name,
			Args:     args,
			ExitCode: resp.ExitCode,
			Stderr:   strings.TrimSpace(resp.Stderr),
			Err:      fmt.Errorf("exit status %d", resp.ExitCode),
		}
	}
	return result, nil
}

// Calls returns every command run so far, in call order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// SortedCalls returns Calls sorted, for order-independent assertions.
func (f *FakeRunner) SortedCalls() []string {
	calls := f.Calls()
	sort.Strings(calls)
	return calls
}

// MaxInFlight returns the highest number of commands observed running at once.
func (f *FakeRunner) MaxInFlight() int {
	return int(f.maxInFlight.Load())
}

func key(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// PipxListLines renders a `pipx list` listing for the given packages.
//
// Each package gets a top-level line and one indented app line, which is
// what pipx prints for a venv exposing a single app.
func PipxListLines(pkgs ...string) []string {
	lines := []string{
		"venvs are in /home/user/.local/pipx/venvs",
		"apps are exposed on your $PATH at /home/user/.local/bin",
	}
	for _, p := range pkgs {
		lines = append(lines,
			fmt.Sprintf("   package %s 1.0.0, installed using Python 3.12.3", p),
			fmt.Sprintf("    - %s", p),
		)
	}
	return lines
}

// PipOutdatedLines renders `pip list -o` output with the column header.
//
// Each row is "name current latest kind".
func PipOutdatedLines(rows ...string) []string {
	lines := []string{
		"Package    Version Latest Type",
		"---------- ------- ------ -----",
	}
	return append(lines, rows...)
}
