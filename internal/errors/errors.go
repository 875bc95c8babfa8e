package errors

import (
	"bytes"
	"errors"
	"fmt"
)

// SubprocessError is the base interface for all errors produced by this module.
type SubprocessError interface {
	error
	IsSubprocessError() bool
}

// Compile-time verification that all error types implement SubprocessError.
var (
	_ SubprocessError = (*IterableSubprocessError)(nil)
	_ SubprocessError = (*ExecutableNotFoundError)(nil)
	_ SubprocessError = (*LaunchError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEmptyCommand indicates a command without an executable name.
	ErrEmptyCommand = errors.New("command name must not be empty")

	// ErrAlreadyStarted indicates Start was called twice on the same instance.
	ErrAlreadyStarted = errors.New("subprocess already started")

	// ErrNotStarted indicates an operation that requires a running process.
	ErrNotStarted = errors.New("subprocess not started")

	// ErrOutputConsumed indicates the output sequence was iterated more than once.
	// The output is backed directly by the process's stdout and cannot be replayed.
	ErrOutputConsumed = errors.New("output already consumed")

	// ErrOutputClosed indicates the output sequence was pulled after the
	// subprocess scope was closed.
	ErrOutputClosed = errors.New("output closed")
)

// IterableSubprocessError indicates the process exited with a non-zero code
// while no other fault was observed.
//
// Stderr holds at most the configured tail size of the process's standard
// error, keeping the most recent bytes.
type IterableSubprocessError struct {
	ReturnCode int
	Stderr     []byte
}

func (e *IterableSubprocessError) Error() string {
	stderr := bytes.TrimSpace(e.Stderr)
	if len(stderr) == 0 {
		return fmt.Sprintf("subprocess exited with code %d", e.ReturnCode)
	}

	return fmt.Sprintf("subprocess exited with code %d: %s", e.ReturnCode, stderr)
}

// IsSubprocessError implements SubprocessError.
func (e *IterableSubprocessError) IsSubprocessError() bool { return true }

// ExecutableNotFoundError indicates the executable could not be resolved.
type ExecutableNotFoundError struct {
	Name          string
	SearchedPaths []string
	Err           error
}

func (e *ExecutableNotFoundError) Error() string {
	if len(e.SearchedPaths) == 0 {
		return fmt.Sprintf("executable %q not found: %v", e.Name, e.Err)
	}

	return fmt.Sprintf("executable %q not found in: %v", e.Name, e.SearchedPaths)
}

func (e *ExecutableNotFoundError) Unwrap() error {
	return e.Err
}

// IsSubprocessError implements SubprocessError.
func (e *ExecutableNotFoundError) IsSubprocessError() bool { return true }

// LaunchError indicates the process could not be spawned.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch subprocess: %v", e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsSubprocessError implements SubprocessError.
func (e *LaunchError) IsSubprocessError() bool { return true }
