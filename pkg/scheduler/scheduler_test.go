package scheduler

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
	apperrors "github.com/ajxudir/pipx-outdated/pkg/errors"
	"github.com/ajxudir/pipx-outdated/pkg/outdated"
	"github.com/ajxudir/pipx-outdated/pkg/pipx"
	"github.com/ajxudir/pipx-outdated/pkg/testutil"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// recordingSink collects emitted results in arrival order.
type recordingSink struct {
	mu      sync.Mutex
	results []outdated.Result
	err     error
}

func (s *recordingSink) Emit(res outdated.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, res)
	return nil
}

func (s *recordingSink) packages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r.Package)
	}
	return out
}

// outdatedSet returns the sorted names of outdated results.
func (s *recordingSink) outdatedSet() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.results {
		if r.Status == outdated.StatusOutdated {
			out = append(out, r.Package)
		}
	}
	sort.Strings(out)
	return out
}

func runpip(pkg string) []string {
	return append([]string{"runpip"}, pkg, "list", "-o")
}

// fleetRunner scripts four packages: two outdated, one up to date with an
// outdated dependency, one with no outdated rows at all.
func fleetRunner() *testutil.FakeRunner {
	return testutil.NewFakeRunner().
		On(testutil.Response{Lines: testutil.PipxListLines("black", "httpie", "poetry", "ruff")}, "pipx", "list").
		On(testutil.Response{Lines: testutil.PipOutdatedLines("black 24.1.0 24.4.2 wheel")}, "pipx", runpip("black")...).
		On(testutil.Response{Lines: testutil.PipOutdatedLines("certifi 2024.2.2 2024.7.4 wheel")}, "pipx", runpip("httpie")...).
		On(testutil.Response{}, "pipx", runpip("poetry")...).
		On(testutil.Response{Lines: testutil.PipOutdatedLines("ruff 0.4.0 0.5.0 wheel")}, "pipx", runpip("ruff")...)
}

func newTestScheduler(runner *testutil.FakeRunner, sink Sink, opts Options) *Scheduler {
	logger := verbose.New(io.Discard, false)
	client := pipx.NewClient("pipx", runner, logger)
	checker := outdated.NewChecker(client, outdated.MatchSubstring, logger)
	return New(client, checker, sink, opts, logger)
}

// TestParseMode tests the behavior of ParseMode.
func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", ModeConcurrent, false},
		{"sequential", ModeSequential, false},
		{"Concurrent", ModeConcurrent, false},
		{" pool ", ModePool, false},
		{"parallel", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, `unknown mode "parallel"`)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestNew_Defaults tests that New fills in mode and concurrency.
func TestNew_Defaults(t *testing.T) {
	s := New(nil, nil, nil, Options{}, nil)
	assert.Equal(t, ModeConcurrent, s.opts.Mode)
	assert.Greater(t, s.opts.Concurrency, 0)
}

// TestRun_Sequential tests the sequential strategy.
//
// It verifies:
//   - Results are emitted in listing order
//   - Only packages with their own outdated row are reported
//   - Summary counts add up
func TestRun_Sequential(t *testing.T) {
	runner := fleetRunner()
	sink := &recordingSink{}

	summary, err := newTestScheduler(runner, sink, Options{Mode: ModeSequential}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"black", "httpie", "poetry", "ruff"}, sink.packages())
	assert.Equal(t, []string{"black", "ruff"}, sink.outdatedSet())
	assert.Equal(t, 4, summary.Checked)
	assert.Equal(t, 2, summary.Outdated)
	assert.Equal(t, 2, summary.UpToDate)
	assert.Zero(t, summary.Failed)
	assert.Empty(t, summary.Failures)
	assert.Nil(t, summary.FailureMessages())
	assert.Equal(t, 1, runner.MaxInFlight())
}

// TestRun_ModesAgree tests that every strategy reports the same outdated set.
func TestRun_ModesAgree(t *testing.T) {
	var reference []string
	for _, mode := range []Mode{ModeSequential, ModeConcurrent, ModePool} {
		t.Run(string(mode), func(t *testing.T) {
			sink := &recordingSink{}
			summary, err := newTestScheduler(fleetRunner(), sink, Options{Mode: mode, Concurrency: 2}).Run(context.Background())
			require.NoError(t, err)

			got := sink.outdatedSet()
			if reference == nil {
				reference = got
			}
			assert.Equal(t, reference, got)

			// Results keep listing order regardless of completion order.
			names := make([]string, 0, len(summary.Results))
			for _, r := range summary.Results {
				names = append(names, r.Package)
			}
			assert.Equal(t, summary.Packages, names)
		})
	}
}

// TestRun_Idempotent tests that two runs over unchanged output report the same blocks.
func TestRun_Idempotent(t *testing.T) {
	runner := fleetRunner()

	first := &recordingSink{}
	_, err := newTestScheduler(runner, first, Options{Mode: ModeConcurrent}).Run(context.Background())
	require.NoError(t, err)

	second := &recordingSink{}
	_, err = newTestScheduler(runner, second, Options{Mode: ModeConcurrent}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.outdatedSet(), second.outdatedSet())
}

// TestRun_ListingFailure tests that a failing `pipx list` aborts before any check.
func TestRun_ListingFailure(t *testing.T) {
	for _, mode := range []Mode{ModeSequential, ModeConcurrent, ModePool} {
		t.Run(string(mode), func(t *testing.T) {
			runner := testutil.NewFakeRunner().
				On(testutil.Response{ExitCode: 1, Stderr: "pipx: broken install"}, "pipx", "list")
			sink := &recordingSink{}

			summary, err := newTestScheduler(runner, sink, Options{Mode: mode}).Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "listing top-level packages")

			ce, ok := cmdexec.IsCommandError(err)
			require.True(t, ok)
			assert.Equal(t, 1, ce.ExitCode)
			assert.Equal(t, apperrors.ExitFailure, apperrors.GetExitCode(err))

			assert.Empty(t, sink.packages())
			assert.Zero(t, summary.Checked)
			assert.Equal(t, []string{"pipx list"}, runner.Calls())
		})
	}
}

// TestRun_SequentialFailFast tests that the first failure stops a sequential run.
//
// It verifies:
//   - Packages after the failing one are never checked
//   - The returned error identifies the package and wraps the CommandError
func TestRun_SequentialFailFast(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On(testutil.Response{Lines: testutil.PipxListLines("black", "httpie", "ruff")}, "pipx", "list").
		On(testutil.Response{Lines: testutil.PipOutdatedLines("black 24.1.0 24.4.2 wheel")}, "pipx", runpip("black")...).
		On(testutil.Response{ExitCode: 1, Stderr: "Package httpie is not installed"}, "pipx", runpip("httpie")...)
	sink := &recordingSink{}

	summary, err := newTestScheduler(runner, sink, Options{Mode: ModeSequential}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking httpie")

	ce, ok := cmdexec.IsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, "Package httpie is not installed", ce.Stderr)

	assert.NotContains(t, runner.Calls(), "pipx runpip ruff list -o")
	assert.Equal(t, []string{"black"}, sink.outdatedSet())
	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, outdated.Result{}, summary.Results[2])
}

// TestRun_ConcurrentFailFast tests that a failure cancels sibling checks.
//
// It verifies:
//   - The run returns long before slow siblings would have finished
//   - The returned error is the original failure, not a cancellation
func TestRun_ConcurrentFailFast(t *testing.T) {
	for _, mode := range []Mode{ModeConcurrent, ModePool} {
		t.Run(string(mode), func(t *testing.T) {
			runner := testutil.NewFakeRunner().
				On(testutil.Response{Lines: testutil.PipxListLines("black", "httpie", "ruff")}, "pipx", "list").
				On(testutil.Response{Delay: 5 * time.Second}, "pipx", runpip("black")...).
				On(testutil.Response{ExitCode: 2, Stderr: "boom"}, "pipx", runpip("httpie")...).
				On(testutil.Response{Delay: 5 * time.Second}, "pipx", runpip("ruff")...)
			sink := &recordingSink{}

			start := time.Now()
			_, err := newTestScheduler(runner, sink, Options{Mode: mode, Concurrency: 3}).Run(context.Background())
			require.Error(t, err)
			assert.Less(t, time.Since(start), 3*time.Second)

			assert.Contains(t, err.Error(), "checking httpie")
			ce, ok := cmdexec.IsCommandError(err)
			require.True(t, ok)
			assert.Equal(t, 2, ce.ExitCode)
			assert.False(t, errors.Is(err, context.Canceled))
			assert.Empty(t, sink.outdatedSet())
		})
	}
}

// TestRun_ContinueOnFail tests that failures are collected instead of stopping the run.
//
// It verifies:
//   - Every package is checked
//   - Outdated packages are still reported
//   - The error is a PartialSuccessError mapping to exit code 2
func TestRun_ContinueOnFail(t *testing.T) {
	for _, mode := range []Mode{ModeSequential, ModeConcurrent, ModePool} {
		t.Run(string(mode), func(t *testing.T) {
			runner := testutil.NewFakeRunner().
				On(testutil.Response{Lines: testutil.PipxListLines("black", "httpie", "ruff")}, "pipx", "list").
				On(testutil.Response{Lines: testutil.PipOutdatedLines("black 24.1.0 24.4.2 wheel")}, "pipx", runpip("black")...).
				On(testutil.Response{ExitCode: 1, Stderr: "boom"}, "pipx", runpip("httpie")...).
				On(testutil.Response{Lines: []string{"ruff 0.4.0"}}, "pipx", runpip("ruff")...)
			sink := &recordingSink{}

			summary, err := newTestScheduler(runner, sink, Options{Mode: mode, ContinueOnFail: true}).Run(context.Background())
			require.Error(t, err)

			pse, ok := apperrors.IsPartialSuccess(err)
			require.True(t, ok)
			assert.Equal(t, 1, pse.Succeeded)
			assert.Equal(t, 1, pse.Failed)
			assert.Equal(t, apperrors.ExitPartialFailure, apperrors.GetExitCode(err))

			assert.Equal(t, 3, summary.Checked)
			assert.Equal(t, 2, summary.Failed)
			assert.Equal(t, []string{"black"}, sink.outdatedSet())
			require.Len(t, summary.Failures, 1)
			assert.Equal(t, "httpie", summary.Failures[0].Package)
			assert.Equal(t, []string{"httpie: pipx exited with status 1: boom"}, summary.FailureMessages())

			var mle *outdated.MalformedLineError
			assert.True(t, errors.As(summary.Results[2].Err, &mle))
		})
	}
}

// TestRun_MalformedRowSkipped tests that an unparseable row does not stop the run.
//
// It verifies:
//   - Packages after the malformed one are still checked and reported
//   - The run succeeds without ContinueOnFail
//   - The malformed package keeps its CheckFailed result but is not tracked
func TestRun_MalformedRowSkipped(t *testing.T) {
	for _, mode := range []Mode{ModeSequential, ModeConcurrent, ModePool} {
		t.Run(string(mode), func(t *testing.T) {
			runner := testutil.NewFakeRunner().
				On(testutil.Response{Lines: testutil.PipxListLines("aaa", "black")}, "pipx", "list").
				On(testutil.Response{Lines: []string{"aaa 1.0"}}, "pipx", runpip("aaa")...).
				On(testutil.Response{Lines: testutil.PipOutdatedLines("black 24.1.0 24.4.2 wheel")}, "pipx", runpip("black")...)
			sink := &recordingSink{}

			summary, err := newTestScheduler(runner, sink, Options{Mode: mode}).Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, []string{"black"}, sink.outdatedSet())
			assert.Contains(t, runner.Calls(), "pipx runpip black list -o")
			assert.Equal(t, 2, summary.Checked)
			assert.Equal(t, 1, summary.Failed)
			assert.Equal(t, outdated.StatusCheckFailed, summary.Results[0].Status)
			assert.Empty(t, summary.Failures)
			assert.Nil(t, summary.FailureMessages())
		})
	}
}

// TestRun_PoolBound tests that pool mode never exceeds its concurrency.
func TestRun_PoolBound(t *testing.T) {
	pkgs := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"}
	runner := testutil.NewFakeRunner().
		On(testutil.Response{Lines: testutil.PipxListLines(pkgs...)}, "pipx", "list")
	for _, p := range pkgs {
		runner.On(testutil.Response{Delay: 30 * time.Millisecond}, "pipx", runpip(p)...)
	}

	summary, err := newTestScheduler(runner, &recordingSink{}, Options{Mode: ModePool, Concurrency: 2}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(pkgs), summary.Checked)
	assert.LessOrEqual(t, runner.MaxInFlight(), 2)
	assert.Len(t, runner.Calls(), len(pkgs)+1)
}

// TestRun_ConcurrentUnbounded tests that concurrent mode overlaps checks.
func TestRun_ConcurrentUnbounded(t *testing.T) {
	pkgs := []string{"a1", "a2", "a3", "a4"}
	runner := testutil.NewFakeRunner().
		On(testutil.Response{Lines: testutil.PipxListLines(pkgs...)}, "pipx", "list")
	for _, p := range pkgs {
		runner.On(testutil.Response{Delay: 200 * time.Millisecond}, "pipx", runpip(p)...)
	}

	_, err := newTestScheduler(runner, &recordingSink{}, Options{Mode: ModeConcurrent}).Run(context.Background())
	require.NoError(t, err)
	assert.Greater(t, runner.MaxInFlight(), 1)
}

// TestRun_EmptyListing tests a pipx install with no packages.
func TestRun_EmptyListing(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On(testutil.Response{Lines: []string{"nothing has been installed with pipx 😴"}}, "pipx", "list")

	summary, err := newTestScheduler(runner, &recordingSink{}, Options{}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Packages)
	assert.Zero(t, summary.Checked)
}

// TestRun_SinkError tests that a write failure stops the run even with ContinueOnFail.
func TestRun_SinkError(t *testing.T) {
	sink := &recordingSink{err: errors.New("broken pipe")}

	_, err := newTestScheduler(fleetRunner(), sink, Options{Mode: ModeSequential, ContinueOnFail: true}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing result for black: broken pipe")
}

// TestRun_Cancelled tests that a cancelled context is reported as such.
func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScheduler(fleetRunner(), &recordingSink{}, Options{}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
