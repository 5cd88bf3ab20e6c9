// Package preflight verifies that the pipx executable can be started before
// any check runs.
package preflight

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "github.com/ajxudir/pipx-outdated/pkg/errors"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// lookPath resolves an executable; replaced in tests.
var lookPath = exec.LookPath

// shellHasCommand reports whether the user's shell knows cmd; replaced in tests.
var shellHasCommand = commandExistsInShell

// ValidatePipx checks that executable resolves to a runnable program.
//
// It performs the following operations:
//   - Step 1: Resolves the executable with exec.LookPath (paths are checked as given)
//   - Step 2: When that fails, asks the user's shell whether it is an alias or
//     function, which pipx-outdated cannot run, and picks a hint accordingly
//
// Parameters:
//   - executable: pipx command name or path
//   - logger: Debug output, may be nil
//
// Returns:
//   - string: The resolved path on success
//   - error: *errors.ValidationError in the preflight category when not found
func ValidatePipx(executable string, logger *verbose.Logger) (string, error) {
	logger = verbose.Or(logger)
	cmd := strings.TrimSpace(executable)
	if cmd == "" {
		return "", apperrors.NewConfigValidationError("pipx.executable", "must not be empty")
	}

	path, err := lookPath(cmd)
	if err == nil {
		logger.Printf("Preflight: %s resolved to %s", cmd, path)
		return path, nil
	}
	logger.Printf("Preflight: %s not found in PATH: %v", cmd, err)

	hint := GetResolutionHint(cmd)
	if !strings.ContainsRune(cmd, filepath.Separator) && shellHasCommand(cmd) {
		hint = fmt.Sprintf("'%s' is a shell alias or function; pass the real executable path with --pipx", cmd)
	}

	verr := apperrors.NewPreflightValidationError(cmd, hint)
	verr.Err = err
	return "", verr
}

// GetResolutionHint returns the installation hint for a command, if available.
//
// Names given as paths are looked up by their base name.
func GetResolutionHint(cmd string) string {
	return apperrors.GetHintForCommand(filepath.Base(cmd))
}

// commandExistsInShell checks if a command exists through the user's shell.
//
// It runs 'command -v' in a login shell so aliases and functions from the
// user's profile are visible.
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	return exec.Command(shell, args...).Run() == nil
}
