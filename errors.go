package itersubprocess

import "github.com/wagiedev/iterable-subprocess-go/internal/errors"

// Re-export error types from internal package

// IterableSubprocessError indicates the process exited with a non-zero code
// while no other error occurred. Stderr holds the tail of the process's
// standard error.
type IterableSubprocessError = errors.IterableSubprocessError

// ExecutableNotFoundError indicates the executable could not be located.
type ExecutableNotFoundError = errors.ExecutableNotFoundError

// LaunchError indicates the process could not be spawned.
type LaunchError = errors.LaunchError

// SubprocessError is the base interface for all errors produced by this module.
type SubprocessError = errors.SubprocessError

// Re-export sentinel errors from internal package.
var (
	// ErrEmptyCommand indicates a command without an executable name.
	ErrEmptyCommand = errors.ErrEmptyCommand

	// ErrOutputConsumed indicates the output sequence was ranged over twice.
	ErrOutputConsumed = errors.ErrOutputConsumed

	// ErrOutputClosed indicates the output was pulled after Close.
	ErrOutputClosed = errors.ErrOutputClosed
)
