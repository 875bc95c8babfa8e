// Package errors defines error types for iterable subprocesses.
//
// This package provides structured error types for the failure scenarios of
// running a child process as a streaming transform. All error types support
// error unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
