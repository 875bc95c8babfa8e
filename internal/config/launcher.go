// Package config provides configuration types for iterable subprocesses.
package config

import (
	"context"
	"io"
)

// Command describes the program to launch. It is forwarded unmodified to the
// Launcher.
type Command struct {
	// Name is the executable name or path.
	Name string

	// Args are the arguments passed to the executable, excluding Name.
	Args []string

	// Env is the process environment. If empty, the parent environment is inherited.
	Env []string

	// Dir is the working directory. If empty, the parent working directory is used.
	Dir string
}

// Launcher spawns a process for a Command.
// Implement this to provide custom launchers for testing, mocking,
// or alternative process creation (e.g., containers, remote hosts).
//
// The default implementation lives in internal/subprocess and uses os/exec.
type Launcher interface {
	// Launch starts the process described by cmd. The returned Process is
	// running and all three of its streams are open.
	Launch(ctx context.Context, cmd Command) (Process, error)
}

// Process is a handle to a running child process.
//
// Each stream is closed independently. Kill and Wait are called at most once
// each by the lifecycle controller, but implementations must tolerate Kill on
// a process that has already exited.
type Process interface {
	// Stdin returns the write end of the process's standard input.
	Stdin() io.WriteCloser

	// Stdout returns the read end of the process's standard output.
	Stdout() io.ReadCloser

	// Stderr returns the read end of the process's standard error.
	Stderr() io.ReadCloser

	// Kill forcibly terminates the process.
	Kill() error

	// Wait blocks until the process exits and returns its exit code.
	// A process terminated by a signal reports a negative code.
	Wait() (int, error)

	// Pid returns the operating system process ID, or 0 if unknown.
	Pid() int
}
