// Package errors provides unified error types and display for pipx-outdated.
//
// This package consolidates error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - PartialSuccessError: Some checks succeeded, some failed
//   - ValidationError: Configuration or preflight validation failures
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, []error{err}, verbose)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): Every package was checked
//   - ExitFailure (1): A pipx command failed and the run stopped, or another critical error
//   - ExitPartialFailure (2): Some checks failed under --continue-on-fail
//   - ExitConfigError (3): Configuration or preflight error
package errors
