package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationCategory identifies the source of a validation error.
type ValidationCategory string

const (
	// ValidationCategoryConfig indicates a configuration file or flag error.
	ValidationCategoryConfig ValidationCategory = "config"

	// ValidationCategoryPreflight indicates a preflight check failure (missing command).
	ValidationCategoryPreflight ValidationCategory = "preflight"
)

// ValidationError represents a configuration or preflight validation failure.
//
// Fields:
//   - Category: Source of validation ("config", "preflight")
//   - Field: Name of the invalid field, flag or setting
//   - Message: Description of what's wrong
//   - Expected: What the valid value should look like
//   - Command: For preflight errors, the command that failed
//   - Hint: Actionable hint for fixing the error
//   - Err: Underlying cause, may be nil
//
// Example:
//
//	return &ValidationError{
//	    Category: ValidationCategoryConfig,
//	    Field:    "--mode",
//	    Message:  `unknown mode "fast"`,
//	    Expected: "sequential, concurrent or pool",
//	}
type ValidationError struct {
	Category ValidationCategory
	Field    string
	Message  string
	Expected string
	Command  string
	Hint     string
	Err      error
}

// Error implements the error interface.
//
// Preflight errors name the missing command and a resolution; config errors
// print "field: message".
func (e *ValidationError) Error() string {
	var sb strings.Builder

	if e.Category == ValidationCategoryPreflight && e.Command != "" {
		sb.WriteString(fmt.Sprintf("command not found: %s", e.Command))
		if e.Hint != "" {
			sb.WriteString(fmt.Sprintf("\n  Resolution: %s", e.Hint))
		} else {
			sb.WriteString(fmt.Sprintf("\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command))
		}
		return sb.String()
	}

	switch {
	case e.Field != "":
		sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
	case e.Message != "":
		sb.WriteString(e.Message)
	case e.Err != nil:
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// VerboseError returns a detailed error message with expected values and hints.
func (e *ValidationError) VerboseError() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}
	if e.Hint != "" && e.Category != ValidationCategoryPreflight {
		sb.WriteString(fmt.Sprintf("\n    Hint: %s", e.Hint))
	}
	return sb.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for configuration issues.
//
// Example:
//
//	err := errors.NewConfigValidationError("--output", `unknown output format "toml"`)
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Category: ValidationCategoryConfig,
		Field:    field,
		Message:  message,
	}
}

// NewPreflightValidationError creates a ValidationError for preflight check failures.
//
// Example:
//
//	err := errors.NewPreflightValidationError("pipx", errors.GetHintForCommand("pipx"))
func NewPreflightValidationError(command, hint string) *ValidationError {
	return &ValidationError{
		Category: ValidationCategoryPreflight,
		Command:  command,
		Hint:     hint,
	}
}
