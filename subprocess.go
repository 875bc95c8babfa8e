package itersubprocess

import (
	"context"
	"iter"

	"github.com/wagiedev/iterable-subprocess-go/internal/lifecycle"
)

// Subprocess is a running command used as a streaming transform.
//
// Input chunks are written to the process's stdin by a background goroutine
// while the caller ranges over Output. Close must be called on every path;
// Run does this automatically.
type Subprocess struct {
	ctrl *lifecycle.Controller
}

// Start launches cmd and begins feeding it input.
//
// input is pulled at most once, on a separate goroutine. Yielding a non-nil
// error from input stops feeding; that error is then reported by Output and
// returned by Close, even if the process also exits with a non-zero code.
// A nil input means no input: stdin is closed immediately.
//
// ctx bounds the lifetime of the process: cancelling it kills the process.
// A launch failure is returned unchanged, e.g. *ExecutableNotFoundError from
// the default launcher.
func Start(
	ctx context.Context,
	cmd Command,
	input iter.Seq2[[]byte, error],
	opts ...Option,
) (*Subprocess, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	options := applyOptions(opts)

	if len(cmd.Env) == 0 {
		cmd.Env = options.Env
	}

	if cmd.Dir == "" {
		cmd.Dir = options.Dir
	}

	ctrl := lifecycle.New(loggerFor(options), cmd, input, options)
	if err := ctrl.Start(ctx); err != nil {
		return nil, err
	}

	return &Subprocess{ctrl: ctrl}, nil
}

// Output returns the process's stdout as a lazy sequence of chunks.
//
// Each step performs one read of at most the configured chunk size and yields
// the bytes read; chunk boundaries carry no meaning. The sequence ends at EOF.
// It can be ranged over once; breaking out early is allowed and makes Close
// kill the process. After Close, Output yields ErrOutputClosed.
func (s *Subprocess) Output() iter.Seq2[[]byte, error] {
	return s.ctrl.Output()
}

// Close ends the scope without a caller error.
//
// If the output was read to EOF, Close waits for the process to exit and
// returns *IterableSubprocessError for a non-zero exit code. If the output was
// abandoned early, the process is killed and Close returns nil. An input error
// is returned in preference to either. Close is idempotent.
func (s *Subprocess) Close() error {
	return s.ctrl.Close(nil)
}

// CloseWithError ends the scope because the caller's own code failed with err.
// The process is killed and err is returned unchanged, superseding any exit
// code or input error.
func (s *Subprocess) CloseWithError(err error) error {
	return s.ctrl.Close(err)
}

// Pid returns the operating system process ID.
func (s *Subprocess) Pid() int {
	return s.ctrl.Pid()
}

// StderrTail returns the most recent bytes written to stderr so far.
func (s *Subprocess) StderrTail() []byte {
	return s.ctrl.StderrTail()
}
