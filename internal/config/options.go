package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	// DefaultChunkSize is the default size of a single stdout or stderr read.
	DefaultChunkSize = 64 * 1024

	// DefaultStderrTailSize is the default number of trailing stderr bytes
	// retained for error reporting.
	DefaultStderrTailSize = 64 * 1024

	// MaxChunkSize is the largest accepted read size. Larger values are
	// clamped to it.
	MaxChunkSize = 16 * 1024 * 1024

	// ChunkSizeEnv overrides DefaultChunkSize when no explicit chunk size is set.
	ChunkSizeEnv = "ITERABLE_SUBPROCESS_CHUNK_SIZE"
)

// Options configures the behavior of an iterable subprocess.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Launcher spawns the process. If nil, the os/exec based launcher is used.
	Launcher Launcher

	// ChunkSize is the maximum number of bytes read from stdout or stderr at once.
	// Zero means DefaultChunkSize, or the value of ITERABLE_SUBPROCESS_CHUNK_SIZE.
	// Values above MaxChunkSize are clamped.
	ChunkSize int

	// StderrTailSize is the number of trailing stderr bytes kept for
	// IterableSubprocessError. Zero means DefaultStderrTailSize.
	StderrTailSize int

	// StderrCallback, if set, receives every chunk read from stderr.
	// It is called from the stderr drain goroutine and must not block for long.
	StderrCallback func(chunk []byte)

	// Env is the process environment. If empty, the parent environment is inherited.
	Env []string

	// Dir is the working directory of the process.
	Dir string
}

// ResolvedChunkSize returns the effective read size.
func (o *Options) ResolvedChunkSize() int {
	if o.ChunkSize > 0 {
		return min(o.ChunkSize, MaxChunkSize)
	}

	if sizeStr := os.Getenv(ChunkSizeEnv); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 && size <= MaxChunkSize {
			return size
		}
	}

	return DefaultChunkSize
}

// ResolvedStderrTailSize returns the effective stderr tail capacity.
func (o *Options) ResolvedStderrTailSize() int {
	if o.StderrTailSize > 0 {
		return o.StderrTailSize
	}

	return DefaultStderrTailSize
}
