package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pipx-outdated/pkg/outdated"
	"github.com/ajxudir/pipx-outdated/pkg/output"
	"github.com/ajxudir/pipx-outdated/pkg/scheduler"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field     string
	Message   string
	Expected  string // Expected type or value set
	ValidKeys string // Valid keys for this context
}

// Error returns the error message string.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// VerboseError returns a detailed error message with schema hints.
func (e ValidationError) VerboseError() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}
	if e.ValidKeys != "" {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", e.ValidKeys))
	}
	return sb.String()
}

// ValidationResult holds the results of configuration validation.
//
// A result with errors is itself an error so loaders can return it directly.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error implements the error interface with ErrorMessages.
func (r *ValidationResult) Error() string {
	return r.ErrorMessages()
}

// ErrorMessages returns all error messages as a formatted string.
//
// Returns:
//   - string: formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.Error())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// VerboseErrorMessages returns detailed error messages with schema hints.
func (r *ValidationResult) VerboseErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.VerboseError())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// configSchema lists valid keys per config type for unknown-field hints.
var configSchema = map[string]string{
	"Config":   "pipx, check, output",
	"PipxCfg":  "executable, timeout_seconds, env",
	"CheckCfg": "mode, concurrency, match, continue_on_fail",
}

// commonTypos maps common typos to correct field names.
var commonTypos = map[string]map[string]string{
	"Config": {
		"format":  "output",
		"outputs": "output",
		"checks":  "check",
	},
	"PipxCfg": {
		"exe":            "executable",
		"path":           "executable",
		"timeout":        "timeout_seconds",
		"timeoutSeconds": "timeout_seconds",
		"environment":    "env",
	},
	"CheckCfg": {
		"workers":        "concurrency",
		"jobs":           "concurrency",
		"matching":       "match",
		"continueOnFail": "continue_on_fail",
	},
}

var lineNumberPattern = regexp.MustCompile(`line (\d+):`)

// ValidateConfigFile validates YAML configuration data for syntax errors,
// unknown fields and invalid values.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *ValidationResult: validation result with any errors and warnings found
func ValidateConfigFile(data []byte) *ValidationResult {
	result := &ValidationResult{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return result
		}
		result.Errors = append(result.Errors, decodeError(err.Error())...)
		return result
	}

	validateConfigStruct(&cfg, result)
	return result
}

// Validate validates a loaded Config struct.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}
	validateConfigStruct(c, result)
	return result
}

// decodeError converts a yaml.v3 decode error into validation errors.
//
// A TypeError may carry several "line N: ..." entries; each becomes one error.
func decodeError(errMsg string) []ValidationError {
	var errs []ValidationError

	for _, line := range strings.Split(errMsg, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "line ") {
			continue
		}
		switch {
		case strings.Contains(line, "field ") && strings.Contains(line, "not found"):
			errs = append(errs, unknownFieldError(line))
		case strings.Contains(line, "cannot unmarshal"):
			errs = append(errs, ValidationError{Message: line, Expected: extractExpectedType(line)})
		default:
			errs = append(errs, ValidationError{Message: line})
		}
	}

	if len(errs) == 0 {
		errs = append(errs, ValidationError{Message: fmt.Sprintf("YAML syntax error: %s", errMsg)})
	}
	return errs
}

func unknownFieldError(line string) ValidationError {
	fieldName, typeName := extractFieldAndType(line)
	verr := ValidationError{Message: fmt.Sprintf("unknown field '%s'", fieldName)}
	if n := extractLineNumber(line); n > 0 {
		verr.Message = fmt.Sprintf("unknown field '%s' (line %d)", fieldName, n)
	}
	if keys, ok := configSchema[typeName]; ok {
		verr.ValidKeys = keys
	}
	if suggestion := suggestSimilarField(fieldName, typeName); suggestion != "" {
		verr.Message += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return verr
}

// validateConfigStruct checks value domains.
func validateConfigStruct(cfg *Config, result *ValidationResult) {
	if cfg.Pipx.TimeoutSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "pipx.timeout_seconds",
			Message:  fmt.Sprintf("must not be negative, got %d", cfg.Pipx.TimeoutSeconds),
			Expected: "0 (no timeout) or a positive number of seconds",
		})
	}
	for key := range cfg.Pipx.Env {
		if key == "" || strings.ContainsAny(key, "= ") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "pipx.env",
				Message: fmt.Sprintf("invalid variable name %q", key),
			})
		}
	}

	if cfg.Check.Mode != "" {
		if _, err := scheduler.ParseMode(cfg.Check.Mode); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:    "check.mode",
				Message:  err.Error(),
				Expected: "sequential, concurrent or pool",
			})
		}
	}
	if cfg.Check.Concurrency < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "check.concurrency",
			Message:  fmt.Sprintf("must not be negative, got %d", cfg.Check.Concurrency),
			Expected: "0 (number of CPUs) or a positive worker count",
		})
	}
	if cfg.Check.Concurrency > 0 && cfg.Check.Mode != "" && cfg.Check.Mode != string(scheduler.ModePool) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("check.concurrency is only used with mode \"pool\" (mode is %q)", cfg.Check.Mode))
	}
	if _, err := outdated.ParseMatchMode(cfg.Check.Match); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "check.match",
			Message:  err.Error(),
			Expected: "substring or exact",
		})
	}
	if _, err := output.ParseFormat(cfg.Output); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "output",
			Message:  err.Error(),
			Expected: "table, json, yaml, csv or xml",
		})
	}
}

// extractFieldAndType extracts the field and type names from a yaml.v3
// "field foo not found in type config.Type" message.
func extractFieldAndType(errMsg string) (field, typeName string) {
	parts := strings.SplitN(errMsg, "field ", 2)
	if len(parts) == 2 {
		fieldPart := parts[1]
		if spaceIdx := strings.Index(fieldPart, " "); spaceIdx > 0 {
			field = fieldPart[:spaceIdx]
		} else {
			field = fieldPart
		}
	}

	if idx := strings.Index(errMsg, "in type config."); idx >= 0 {
		typePart := errMsg[idx+len("in type config."):]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			typeName = typePart[:endIdx]
		} else {
			typeName = typePart
		}
	}
	return field, typeName
}

// extractLineNumber extracts the line number from a YAML error message, 0 if absent.
func extractLineNumber(errMsg string) int {
	matches := lineNumberPattern.FindStringSubmatch(errMsg)
	if len(matches) >= 2 {
		var lineNum int
		_, _ = fmt.Sscanf(matches[1], "%d", &lineNum)
		return lineNum
	}
	return 0
}

// extractExpectedType extracts Y from "cannot unmarshal X into Y".
func extractExpectedType(errMsg string) string {
	if idx := strings.Index(errMsg, "into "); idx >= 0 {
		typePart := errMsg[idx+5:]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			return typePart[:endIdx]
		}
		return typePart
	}
	return ""
}

// suggestSimilarField returns a suggested field name if the input looks like a typo.
//
// It checks known typos, then kebab-case spellings of valid snake_case keys.
func suggestSimilarField(field, typeName string) string {
	if typos, ok := commonTypos[typeName]; ok {
		if suggestion, found := typos[field]; found {
			return suggestion
		}
	}

	if strings.Contains(field, "-") {
		snakeCase := strings.ReplaceAll(field, "-", "_")
		if keys, ok := configSchema[typeName]; ok {
			for _, key := range strings.Split(keys, ", ") {
				if key == snakeCase {
					return snakeCase
				}
			}
		}
	}
	return ""
}
