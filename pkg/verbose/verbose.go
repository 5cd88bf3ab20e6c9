// Package verbose provides debug and warning output for pipx-outdated.
//
// A Logger is an explicit value: the command layer builds one from the loaded
// configuration and hands it to the scheduler, checker and printer. Code
// handed a nil Logger falls back to a quiet stderr logger through Or.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger writes [DEBUG] lines when enabled and warnings unconditionally.
//
// It is safe for concurrent use; every message is written with a single
// Write call so lines from concurrent workers never interleave mid-line.
type Logger struct {
	mu      sync.Mutex
	enabled bool
	writer  io.Writer
}

var std = New(os.Stderr, false)

// New creates a Logger writing to w.
//
// Parameters:
//   - w: Destination for messages; os.Stderr is used when nil
//   - enabled: Whether debug messages are printed
//
// Returns:
//   - *Logger: A ready to use logger
func New(w io.Writer, enabled bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{enabled: enabled, writer: w}
}

// Or returns l, or a stderr logger with debug output off when l is nil.
func Or(l *Logger) *Logger {
	if l == nil {
		return std
	}
	return l
}

// IsEnabled reports whether debug output is on.
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// write emits msg under the lock with a single Write call.
func (l *Logger) write(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, msg)
}

// Printf prints a formatted debug message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Printf(format string, args ...any) {
	if l.IsEnabled() {
		l.write(fmt.Sprintf("[DEBUG] "+format+"\n", args...))
	}
}

// Info prints a debug message if enabled.
func (l *Logger) Info(msg string) {
	if l.IsEnabled() {
		l.write("[DEBUG] " + msg + "\n")
	}
}

// Infof prints a formatted debug message if enabled, same as Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.Printf(format, args...)
}

// Warnf prints a warning regardless of the enabled flag.
//
// Used for recoverable problems such as skipped malformed lines.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	l.write("Warning: " + msg)
}

// CommandExec logs the command about to be executed.
//
// Parameters:
//   - name: Program name
//   - args: Program arguments
func (l *Logger) CommandExec(name string, args []string) {
	if l.IsEnabled() {
		l.write(fmt.Sprintf("[DEBUG] Executing: %s\n", joinCommand(name, args)))
	}
}

// CommandResult logs command execution results if enabled.
//
// It performs the following operations:
//   - Prints the command status (succeeded or failed) with exit code
//   - Truncates long command strings to 60 characters for readability
//   - Prints up to 5 output lines, eliding the rest
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - lines: Captured output lines
func (l *Logger) CommandResult(cmd string, exitCode int, lines []string) {
	if !l.IsEnabled() {
		return
	}
	var b strings.Builder
	if exitCode == 0 {
		fmt.Fprintf(&b, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		fmt.Fprintf(&b, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
	shown := lines
	if len(lines) > 5 {
		shown = lines[:3]
	}
	for _, line := range shown {
		fmt.Fprintf(&b, "        | %s\n", truncate(line, 100))
	}
	if len(lines) > 5 {
		fmt.Fprintf(&b, "        | ... (%d more lines)\n", len(lines)-3)
	}
	l.write(b.String())
}

// CommandStderr logs every line of a failed command's stderr if enabled.
//
// Parameters:
//   - stderr: Captured standard error; nothing is printed when blank
func (l *Logger) CommandStderr(stderr string) {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" || !l.IsEnabled() {
		return
	}
	var b strings.Builder
	for _, line := range strings.Split(stderr, "\n") {
		fmt.Fprintf(&b, "        ! %s\n", strings.TrimRight(line, "\r"))
	}
	l.write(b.String())
}

// ConfigLoaded logs which config file was loaded if enabled.
func (l *Logger) ConfigLoaded(path string) {
	if l.IsEnabled() {
		l.write(fmt.Sprintf("[DEBUG] Config loaded: %s\n", path))
	}
}

// JoinCommand renders a program and its arguments as a single display string.
func JoinCommand(name string, args []string) string {
	return joinCommand(name, args)
}

func joinCommand(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// truncate shortens a string to the specified maximum length.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
