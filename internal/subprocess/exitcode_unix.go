//go:build unix

package subprocess

import (
	"os"
	"syscall"
)

// exitCode returns the process exit code, or the negated signal number when
// the process was terminated by a signal.
func exitCode(state *os.ProcessState) int {
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return -int(status.Signal())
	}

	return state.ExitCode()
}
