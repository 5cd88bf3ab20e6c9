//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup configures the command to run in its own process group.
//
// pipx spawns the venv's pip as a child; a dedicated group lets a timeout or
// a cancelled batch kill both.
//
// Parameters:
//   - cmd: The command to configure for process group execution
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup kills the entire process group for the given process.
//
// Parameters:
//   - cmd: The command whose process group should be killed
//
// Returns:
//   - error: Error if the kill operation fails, nil if successful or process is nil
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative PID targets the whole group.
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
