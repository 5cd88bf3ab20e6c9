package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates every package was checked.
	ExitSuccess = 0

	// ExitFailure indicates the run stopped on a failed pipx command or
	// another critical error.
	ExitFailure = 1

	// ExitPartialFailure indicates some checks failed under --continue-on-fail
	// while the rest were reported.
	ExitPartialFailure = 2

	// ExitConfigError indicates a configuration or preflight error.
	// Nothing was checked.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (one of the Exit* constants)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise the underlying error's message,
// or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Example:
//
//	err := errors.NewExitError(errors.ExitConfigError, configErr)
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// The outermost ExitError wins. Otherwise a PartialSuccessError maps to
// ExitPartialFailure, a ValidationError to ExitConfigError and anything else
// to ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code; ExitSuccess for nil
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if exitErr, ok := IsExitError(err); ok {
		return exitErr.Code
	}
	if _, ok := IsPartialSuccess(err); ok {
		return ExitPartialFailure
	}
	if _, ok := IsValidationError(err); ok {
		return ExitConfigError
	}
	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// PartialSuccessError indicates that some checks succeeded while others failed.
//
// It is returned when --continue-on-fail kept the run going past failures.
//
// Fields:
//   - Succeeded: Count of finished checks (up to date or outdated)
//   - Failed: Count of failed checks
//   - Errors: Errors from failed checks
type PartialSuccessError struct {
	// Succeeded is the number of checks that produced an answer.
	Succeeded int

	// Failed is the number of checks that failed.
	Failed int

	// Errors contains all errors from failed checks.
	Errors []error
}

// Error implements the error interface.
//
// Returns a summary message in the format "X succeeded, Y failed".
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// Unwrap exposes the failed checks' errors to errors.Is/As.
func (e *PartialSuccessError) Unwrap() []error {
	return e.Errors
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts and errors.
//
// Example:
//
//	err := errors.NewPartialSuccessError(5, 2, tracker.Errors())
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errs,
	}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
//
// Example:
//
//	if pse, ok := errors.IsPartialSuccess(err); ok {
//	    fmt.Printf("%d succeeded, %d failed\n", pse.Succeeded, pse.Failed)
//	}
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
