// Package scheduler drives a full outdated check: list the top-level pipx
// packages, check each one, and hand every result to a Sink as it finishes.
//
// Three strategies are available. Sequential keeps listing order. Concurrent
// starts one goroutine per package. Pool bounds the number of in-flight checks.
// By default the first failed check stops the run; with ContinueOnFail every
// package is checked and failures are reported together. A malformed pip row
// is warned about by the checker and never stops the run or sets the exit code.
package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/ajxudir/pipx-outdated/pkg/errors"
	"github.com/ajxudir/pipx-outdated/pkg/outdated"
	"github.com/ajxudir/pipx-outdated/pkg/supervision"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// Lister returns top-level package names in listing order.
//
// *pipx.Client satisfies it.
type Lister interface {
	ListTopLevel(ctx context.Context) ([]string, error)
}

// Checker checks a single package.
//
// *outdated.Checker satisfies it.
type Checker interface {
	Check(ctx context.Context, pkg string) outdated.Result
}

// Sink receives each result as soon as its check finishes.
//
// Emit may be called from several goroutines at once. *report.Printer
// satisfies it.
type Sink interface {
	Emit(res outdated.Result) error
}

// Options configures a run.
//
// Fields:
//   - Mode: Scheduling strategy; DefaultMode when empty
//   - Concurrency: Pool size for ModePool; runtime.NumCPU() when <= 0
//   - ContinueOnFail: Check every package even after failures
type Options struct {
	Mode           Mode
	Concurrency    int
	ContinueOnFail bool
}

// Summary describes a finished or aborted run.
//
// Fields:
//   - Packages: Names returned by the listing, in order
//   - Results: One slot per package in listing order; slots of checks that
//     never started hold the zero Result
//   - Checked: Number of checks that finished
//   - Outdated, UpToDate, Failed: Counts per status
//   - Failures: Failed commands tracked under ContinueOnFail, sorted by package
//   - Elapsed: Wall-clock time of the run
type Summary struct {
	Packages []string
	Results  []outdated.Result
	Checked  int
	Outdated int
	UpToDate int
	Failed   int
	Failures []supervision.FailureInfo
	Elapsed  time.Duration

	tracker *supervision.FailureTracker
}

// FailureMessages returns one "<package>: <reason>" line per tracked failure.
func (sum *Summary) FailureMessages() []string {
	if sum.tracker == nil {
		return nil
	}
	return sum.tracker.Messages("")
}

// Scheduler runs checks for every listed package.
type Scheduler struct {
	lister  Lister
	checker Checker
	sink    Sink
	opts    Options
	logger  *verbose.Logger
}

// New creates a Scheduler.
//
// Parameters:
//   - lister: Source of top-level package names
//   - checker: Per-package check
//   - sink: Result consumer, typically the report printer
//   - opts: Scheduling options
//   - logger: Debug output, may be nil
//
// Returns:
//   - *Scheduler: Ready to Run
func New(lister Lister, checker Checker, sink Sink, opts Options, logger *verbose.Logger) *Scheduler {
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Scheduler{
		lister:  lister,
		checker: checker,
		sink:    sink,
		opts:    opts,
		logger:  verbose.Or(logger),
	}
}

// Run lists packages and checks each one according to the configured mode.
//
// It performs the following operations:
//   - Step 1: Lists top-level packages; a listing failure returns before any
//     check starts
//   - Step 2: Checks every package with the selected strategy, emitting each
//     result to the sink as it finishes
//   - Step 3: Builds the Summary and decides the returned error
//
// Parameters:
//   - ctx: Context for cancellation; cancelling it kills running pipx commands
//
// Returns:
//   - *Summary: Always non-nil, even on error
//   - error: The listing error, the first failed command (fail-fast), a sink
//     write error, ctx.Err() on cancellation, or a PartialSuccessError when
//     ContinueOnFail is set and some checks failed
func (s *Scheduler) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	pkgs, err := s.lister.ListTopLevel(ctx)
	if err != nil {
		summary.Elapsed = time.Since(start)
		return summary, fmt.Errorf("listing top-level packages: %w", err)
	}

	summary.Packages = pkgs
	summary.Results = make([]outdated.Result, len(pkgs))
	tracker := supervision.NewFailureTracker()
	summary.tracker = tracker

	s.logger.Printf("Checking %d packages (mode=%s, concurrency=%d, continue-on-fail=%t)",
		len(pkgs), s.opts.Mode, s.opts.Concurrency, s.opts.ContinueOnFail)

	switch s.opts.Mode {
	case ModeSequential:
		err = s.runSequential(ctx, pkgs, summary.Results, tracker)
	case ModePool:
		err = s.runGroup(ctx, pkgs, summary.Results, tracker, s.opts.Concurrency)
	default:
		err = s.runGroup(ctx, pkgs, summary.Results, tracker, -1)
	}

	summary.tally()
	summary.Failures = tracker.Failures()
	summary.Elapsed = time.Since(start)

	if err != nil {
		return summary, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return summary, ctxErr
	}
	if tracker.Count() > 0 {
		return summary, apperrors.NewPartialSuccessError(summary.Outdated+summary.UpToDate, tracker.Count(), tracker.Errors())
	}
	return summary, nil
}

// runSequential checks packages one at a time in listing order.
func (s *Scheduler) runSequential(ctx context.Context, pkgs []string, results []outdated.Result, tracker *supervision.FailureTracker) error {
	for i, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.checkOne(ctx, i, pkg, results, tracker); err != nil {
			return err
		}
	}
	return nil
}

// runGroup checks packages in goroutines. limit < 0 means unbounded.
//
// Without ContinueOnFail the first failure cancels the group context: running
// pipx commands are killed and checks that have not started are skipped.
func (s *Scheduler) runGroup(ctx context.Context, pkgs []string, results []outdated.Result, tracker *supervision.FailureTracker, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			if gctx.Err() != nil {
				s.logger.Printf("skip: %s", pkg)
				return nil
			}
			return s.checkOne(gctx, i, pkg, results, tracker)
		})
	}
	return g.Wait()
}

// checkOne runs a single check, stores it in its slot and emits it.
//
// Each goroutine writes only results[i], so the slice needs no lock.
func (s *Scheduler) checkOne(ctx context.Context, i int, pkg string, results []outdated.Result, tracker *supervision.FailureTracker) error {
	s.logger.Printf("check start: %s", pkg)
	res := s.checker.Check(ctx, pkg)
	results[i] = res
	s.logger.Printf("check end: %s (%s)", pkg, res.Status)

	if err := s.sink.Emit(res); err != nil {
		return fmt.Errorf("writing result for %s: %w", pkg, err)
	}

	if !res.Failed() {
		return nil
	}
	if outdated.IsMalformedLine(res.Err) {
		s.logger.Printf("skip: %s (unparseable outdated row)", pkg)
		return nil
	}
	if s.opts.ContinueOnFail {
		tracker.Add(pkg, res.Err)
		return nil
	}
	return fmt.Errorf("checking %s: %w", pkg, res.Err)
}

// tally fills the per-status counters from Results.
func (sum *Summary) tally() {
	for _, res := range sum.Results {
		switch res.Status {
		case outdated.StatusOutdated:
			sum.Outdated++
		case outdated.StatusUpToDate:
			sum.UpToDate++
		case outdated.StatusCheckFailed:
			sum.Failed++
		default:
			continue
		}
		sum.Checked++
	}
}
