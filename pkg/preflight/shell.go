package preflight

import (
	"fmt"
	"os"
	"strings"
)

// getShellCommandCheck returns the shell and args for checking if a command exists.
//
// The shell comes from $SHELL, falling back to "sh". 'command -v' finds
// executables, aliases, functions and built-ins.
//
// Parameters:
//   - cmd: The command name to check for existence
//
// Returns:
//   - shell: The shell executable to use
//   - args: Arguments running 'command -v <cmd>' in a login shell
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-l", "-c", fmt.Sprintf("command -v %s", shellQuote(cmd))}
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
