package itersubprocess

import (
	"log/slog"

	"github.com/wagiedev/iterable-subprocess-go/internal/config"
)

// Options configures an iterable subprocess.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// DefaultChunkSize is the default maximum size of a single output chunk.
const DefaultChunkSize = config.DefaultChunkSize

// DefaultStderrTailSize is the default number of trailing stderr bytes kept
// for IterableSubprocessError.
const DefaultStderrTailSize = config.DefaultStderrTailSize

// MaxChunkSize is the largest read size; larger WithChunkSize values are clamped.
const MaxChunkSize = config.MaxChunkSize

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLauncher replaces the os/exec based launcher.
func WithLauncher(launcher Launcher) Option {
	return func(o *Options) {
		o.Launcher = launcher
	}
}

// WithChunkSize sets the maximum number of bytes read from stdout and stderr
// at once, and therefore the largest output chunk. Defaults to 65536, or to
// the ITERABLE_SUBPROCESS_CHUNK_SIZE environment variable when set. Sizes
// above MaxChunkSize are clamped.
func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

// WithStderrTailSize sets how many of the most recent stderr bytes are kept
// for IterableSubprocessError. Defaults to 65536.
func WithStderrTailSize(size int) Option {
	return func(o *Options) {
		o.StderrTailSize = size
	}
}

// WithStderrCallback registers a function that receives every chunk the
// process writes to stderr. It runs on the stderr drain goroutine; a slow
// callback stalls the drain and eventually the process.
func WithStderrCallback(fn func(chunk []byte)) Option {
	return func(o *Options) {
		o.StderrCallback = fn
	}
}

// WithEnv sets the process environment for commands that do not set their own.
func WithEnv(env ...string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithDir sets the working directory for commands that do not set their own.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}
