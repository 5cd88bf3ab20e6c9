package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when a required command is not found.
var CommandResolutionHints = map[string]string{
	"pipx":    "Install pipx: https://pipx.pypa.io/stable/installation/ (e.g. python3 -m pip install --user pipx)",
	"python":  "Install Python: https://python.org/downloads/",
	"python3": "Install Python: https://python.org/downloads/",
	"pip":     "Install Python: https://python.org/downloads/",
	"pip3":    "Install Python: https://python.org/downloads/",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
// The first matching pattern wins.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "command timed out",
		Hint:       "pipx took too long",
		Resolution: "Raise --timeout or pipx.timeout_seconds in .pipx-outdated.yml (0 disables it)",
	},
	{
		Pattern:    "is not installed",
		Hint:       "pipx does not know this package",
		Resolution: "Run 'pipx list' to check the venv, or reinstall it with 'pipx reinstall <package>'",
	},
	{
		Pattern:    "no module named pip",
		Hint:       "The package venv has no pip",
		Resolution: "Run 'pipx reinstall <package>' to recreate the venv",
	},
	{
		Pattern:    "executable file not found",
		Hint:       "pipx is not on PATH",
		Resolution: "Install pipx or pass its path with --pipx",
	},
	{
		Pattern:    "configuration validation failed",
		Hint:       "Configuration file is invalid",
		Resolution: "Run 'pipx-outdated config --show-defaults' to see the valid keys",
	},
	{
		Pattern:    "failed to read config",
		Hint:       "Configuration file could not be read",
		Resolution: "Check the --config path, or remove it to use the built-in defaults",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "connection",
		Hint:       "Network connectivity issue",
		Resolution: "pip needs to reach the package index; check internet connection and proxy settings",
	},
	{
		Pattern:    "temporary failure in name resolution",
		Hint:       "DNS resolution failed",
		Resolution: "Check network connectivity and DNS configuration",
	},
}

// GetHint returns an actionable hint for the given error.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: "<hint>: <resolution>", or empty string if no hint found
func GetHint(err error) string {
	if h, ok := findHint(err); ok {
		return h.Hint + ": " + h.Resolution
	}
	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "pipx")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}
	if h, ok := findHint(err); ok {
		return err.Error() + "\n  \U0001F4A1 " + h.Hint + ": " + h.Resolution
	}
	return err.Error()
}

func findHint(err error) (ErrorHint, bool) {
	if err == nil {
		return ErrorHint{}, false
	}
	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint, true
		}
	}
	return ErrorHint{}, false
}
