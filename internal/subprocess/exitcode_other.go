//go:build !unix

package subprocess

import "os"

// exitCode returns the process exit code.
// Signal termination is not distinguishable on non-unix platforms.
func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}
