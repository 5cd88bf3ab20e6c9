// Package cmd implements the command-line interface for pipx-outdated.
// The root command lists top-level pipx packages and reports the ones whose
// isolated environment has a newer version available.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
	"github.com/ajxudir/pipx-outdated/pkg/config"
	"github.com/ajxudir/pipx-outdated/pkg/errors"
	"github.com/ajxudir/pipx-outdated/pkg/outdated"
	"github.com/ajxudir/pipx-outdated/pkg/output"
	"github.com/ajxudir/pipx-outdated/pkg/pipx"
	"github.com/ajxudir/pipx-outdated/pkg/preflight"
	"github.com/ajxudir/pipx-outdated/pkg/report"
	"github.com/ajxudir/pipx-outdated/pkg/scheduler"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

var exitFunc = os.Exit

// Replaced in tests.
var (
	loadConfigFunc   = config.LoadConfig
	validatePipxFunc = preflight.ValidatePipx
	newRunnerFunc    = func(cfg *config.Config, logger *verbose.Logger) cmdexec.Runner {
		return cmdexec.NewExecRunner(cfg.Pipx.GetTimeoutSeconds(), cfg.Pipx.Env, logger)
	}
)

// rootOptions holds the parsed flags of one invocation.
type rootOptions struct {
	mode           string
	concurrency    int
	match          string
	continueOnFail bool
	output         string
	configPath     string
	pipx           string
	timeout        int
	skipPreflight  bool
	verbose        bool
	version        bool
}

// newRootCmd builds the command tree bound to opts.
func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pipx-outdated",
		Short: "Report outdated packages in pipx environments",
		Long: `List the top-level packages installed with pipx and run
'pipx runpip <package> list -o' for each one, reporting the packages
that have a newer version available.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				printVersionOutput(cmd.OutOrStdout())
				return nil
			}
			return runCheck(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (default ./"+config.DefaultConfigFileName+" if present)")
	pf.BoolVar(&opts.verbose, "verbose", false, "Enable verbose debug output")

	f := rootCmd.Flags()
	f.StringVarP(&opts.mode, "mode", "m", "", "Scheduling mode: sequential, concurrent or pool (default concurrent)")
	f.IntVarP(&opts.concurrency, "concurrency", "j", 0, "Pool size for --mode pool (0 = number of CPUs)")
	f.StringVar(&opts.match, "match", "", "Package matching: substring or exact (default substring)")
	f.BoolVar(&opts.continueOnFail, "continue-on-fail", false, "Keep checking after a failed package (exit code 2 for partial failure)")
	f.StringVarP(&opts.output, "output", "o", "", "Output format: table, json, yaml, csv or xml (default table)")
	f.StringVar(&opts.pipx, "pipx", "", "pipx executable (default \"pipx\")")
	f.IntVar(&opts.timeout, "timeout", 0, "Per-command timeout in seconds (0 = none)")
	f.BoolVar(&opts.skipPreflight, "skip-preflight", false, "Do not verify that pipx can be found")
	// Local flag so it only works on the root command.
	f.BoolVarP(&opts.version, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

// Execute runs the CLI with the process arguments and exits with:
//   - 0: Success
//   - 1: A pipx command failed and the run was aborted, or another failure
//   - 2: Partial failure under --continue-on-fail
//   - 3: Configuration or preflight error
//
// SIGINT and SIGTERM cancel the run and kill running pipx commands.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if code != errors.ExitSuccess {
		exitFunc(code)
	}
}

// run executes one invocation and returns its exit code.
//
// Errors are printed to stderr with hints; nothing is printed on success.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitSuccess
	}

	code := errors.GetExitCode(err)
	errors.PrintErrorWithHints(stderr, []error{err}, opts.verbose)
	verbose.New(stderr, opts.verbose).Printf("Exit code %d", code)
	return code
}

// loadEffectiveConfig loads the config file, applies changed flags and
// validates the result.
//
// Returns:
//   - *config.Config: Validated configuration
//   - error: ExitError with ExitConfigError on any problem
func loadEffectiveConfig(cmd *cobra.Command, opts *rootOptions, logger *verbose.Logger) (*config.Config, error) {
	cfg, err := loadConfigFunc(opts.configPath, ".", logger)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	applyFlagOverrides(cmd, cfg, opts)

	result := cfg.Validate()
	for _, w := range result.Warnings {
		logger.Warnf("%s", w)
	}
	if result.HasErrors() {
		return nil, errors.NewExitError(errors.ExitConfigError, result)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over config values.
//
// Flags left at their defaults never override the file, so an unset
// --continue-on-fail keeps continue_on_fail: true from the config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Check.Mode = opts.mode
	}
	if flags.Changed("concurrency") {
		cfg.Check.Concurrency = opts.concurrency
	}
	if flags.Changed("match") {
		cfg.Check.Match = opts.match
	}
	if flags.Changed("continue-on-fail") {
		v := opts.continueOnFail
		cfg.Check.ContinueOnFail = &v
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("pipx") {
		cfg.Pipx.Executable = opts.pipx
	}
	if flags.Changed("timeout") {
		cfg.Pipx.TimeoutSeconds = opts.timeout
	}
}

// runCheck executes the outdated check.
//
// It performs the following operations:
//   - Step 1: Loads and validates the effective configuration
//   - Step 2: Verifies pipx can be found unless --skip-preflight is set
//   - Step 3: Wires runner, pipx client, checker, printer and scheduler
//   - Step 4: Prints the header, runs every check and prints the trailer
//     (table), or writes the collected document (structured formats)
//   - Step 5: Reports failed checks on stderr
//
// Returns:
//   - error: nil on success; the first failure when aborted; a
//     PartialSuccessError under --continue-on-fail
func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := verbose.New(stderr, opts.verbose)

	cfg, err := loadEffectiveConfig(cmd, opts, logger)
	if err != nil {
		return err
	}

	if opts.skipPreflight {
		logger.Info("Preflight skipped")
	} else if _, err := validatePipxFunc(cfg.Pipx.GetExecutable(), logger); err != nil {
		return err
	}

	// Values were validated above.
	mode, _ := scheduler.ParseMode(cfg.Check.Mode)
	match, _ := outdated.ParseMatchMode(cfg.Check.Match)
	format, _ := output.ParseFormat(cfg.Output)

	client := pipx.NewClient(cfg.Pipx.GetExecutable(), newRunnerFunc(cfg, logger), logger)
	checker := outdated.NewChecker(client, match, logger)
	printer := report.NewPrinter(stdout, format)

	lister := &progressLister{lister: client}
	if !printer.Streaming() && !opts.verbose && report.IsTerminal(stderr) {
		lister.onList = func(total int) {
			printer.SetProgress(output.NewProgress(stderr, total, "Checking packages"))
		}
	}

	sched := scheduler.New(lister, checker, printer, scheduler.Options{
		Mode:           mode,
		Concurrency:    cfg.Check.GetConcurrency(),
		ContinueOnFail: cfg.Check.IsContinueOnFail(),
	}, logger)

	if err := printer.Header(); err != nil {
		return err
	}

	summary, runErr := sched.Run(cmd.Context())
	_, partial := errors.IsPartialSuccess(runErr)
	if runErr != nil && !partial {
		return runErr
	}

	failures := summary.FailureMessages()
	if printer.Streaming() {
		if err := printer.Trailer(summary.Elapsed); err != nil {
			return err
		}
	} else {
		result := report.BuildCheckResult(len(summary.Packages), summary.Results, summary.Elapsed, failures)
		if err := printer.WriteStructured(result); err != nil {
			return err
		}
	}

	if err := report.WriteFailureSummary(stderr, failures); err != nil {
		return err
	}
	return runErr
}

// progressLister forwards the listing and reports its size once known.
type progressLister struct {
	lister scheduler.Lister
	onList func(total int)
}

// ListTopLevel implements scheduler.Lister.
func (l *progressLister) ListTopLevel(ctx context.Context) ([]string, error) {
	pkgs, err := l.lister.ListTopLevel(ctx)
	if err == nil && l.onList != nil {
		l.onList(len(pkgs))
	}
	return pkgs, err
}
