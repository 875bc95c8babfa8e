package lifecycle

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/iterable-subprocess-go/internal/config"
	sperrors "github.com/wagiedev/iterable-subprocess-go/internal/errors"
	"github.com/wagiedev/iterable-subprocess-go/internal/subprocess"
	"github.com/wagiedev/iterable-subprocess-go/internal/tailbuf"
)

// State is the lifecycle state of a Controller.
type State int32

const (
	// StateCreated means Start has not been called.
	StateCreated State = iota
	// StateRunning means the process is running and the flows are active.
	StateRunning
	// StateDraining means Close is tearing the flows down.
	StateDraining
	// StateResolved means the outcome has been decided. Terminal.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Controller owns one child process and the flows attached to it.
//
// A Controller is single-use: Start once, range over Output at most once,
// then Close. Close must be called on every path after a successful Start.
type Controller struct {
	log            *slog.Logger
	cmd            config.Command
	input          iter.Seq2[[]byte, error]
	launcher       config.Launcher
	chunkSize      int
	stderrCallback func([]byte)

	tail  *tailbuf.Buffer
	fault fault

	ctx       context.Context
	proc      config.Process
	flows     errgroup.Group
	stopWatch func() bool
	killOnce  sync.Once

	state       atomic.Int32
	stopping    atomic.Bool // feeder stops pulling input once set
	exhausted   atomic.Bool // stdout reached EOF
	outputTaken atomic.Bool
	closed      atomic.Bool

	closeOnce sync.Once
	result    error
}

// New creates a Controller for cmd fed from input.
//
// A nil input is treated as an empty sequence. If options.Launcher is nil the
// os/exec based launcher is used.
func New(
	log *slog.Logger,
	cmd config.Command,
	input iter.Seq2[[]byte, error],
	options *config.Options,
) *Controller {
	if options == nil {
		options = &config.Options{}
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if input == nil {
		input = func(func([]byte, error) bool) {}
	}

	launcher := options.Launcher
	if launcher == nil {
		launcher = subprocess.NewLauncher(log)
	}

	return &Controller{
		log:            log.With("component", "iterable_subprocess", "run_id", ulid.Make().String()),
		cmd:            cmd,
		input:          input,
		launcher:       launcher,
		chunkSize:      options.ResolvedChunkSize(),
		stderrCallback: options.StderrCallback,
		tail:           tailbuf.New(options.ResolvedStderrTailSize()),
		ctx:            context.Background(),
	}
}

// Start launches the process and starts the stdin feeder and stderr drain.
//
// A launch failure is returned exactly as the launcher reported it and leaves
// the Controller resolved; Close then has nothing to tear down. Cancelling ctx
// kills the process; Close reports the context error.
func (c *Controller) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return sperrors.ErrAlreadyStarted
	}

	c.log.Info("Starting subprocess", "name", c.cmd.Name, "args", c.cmd.Args)

	proc, err := c.launcher.Launch(ctx, c.cmd)
	if err != nil {
		c.log.Error("Failed to launch subprocess", "error", err)
		c.closed.Store(true)
		c.state.Store(int32(StateResolved))

		return err
	}

	c.ctx = ctx
	c.proc = proc

	c.flows.Go(func() error {
		c.feed()

		return nil
	})

	c.flows.Go(func() error {
		c.drain()

		return nil
	})

	c.stopWatch = context.AfterFunc(ctx, func() {
		c.log.Debug("Context done, killing subprocess", "error", ctx.Err())
		c.kill()
	})

	c.log.Debug("Subprocess running", "pid", proc.Pid())

	return nil
}

// Pid returns the process ID, or 0 if the process was never launched.
func (c *Controller) Pid() int {
	if c.proc == nil {
		return 0
	}

	return c.proc.Pid()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// StderrTail returns the most recent stderr bytes captured so far.
func (c *Controller) StderrTail() []byte {
	return c.tail.Bytes()
}

// Close tears the process down and returns the resolved outcome.
//
// callerErr is the error, if any, produced by the caller's code while using
// the output. It always takes precedence and is returned unchanged. Close is
// idempotent: later calls return the first result.
func (c *Controller) Close(callerErr error) error {
	c.closeOnce.Do(func() {
		c.result = c.teardown(callerErr)
	})

	return c.result
}

// teardown runs the Draining state and resolves the outcome.
//
// Abnormal exits kill first, then join the flows, close the streams and reap
// the process. A normal exit (stdout at EOF and nothing failed) waits for the
// process to exit on its own before joining and closing.
func (c *Controller) teardown(callerErr error) error {
	c.closed.Store(true)

	if c.proc == nil {
		c.state.Store(int32(StateResolved))

		return callerErr
	}

	c.state.Store(int32(StateDraining))
	c.stopping.Store(true)
	c.stopWatch()

	abandoned := !c.exhausted.Load()
	abnormal := callerErr != nil || c.fault.Err() != nil || c.ctx.Err() != nil || abandoned

	var (
		code    int
		waitErr error
	)

	if abnormal {
		c.log.Debug("Terminating subprocess",
			"caller_error", callerErr != nil,
			"input_fault", c.fault.Err() != nil,
			"context_done", c.ctx.Err() != nil,
			"abandoned", abandoned,
		)

		c.kill()
		_ = c.flows.Wait()
		c.closeStreams()

		if _, err := c.proc.Wait(); err != nil {
			c.log.Warn("Failed to reap subprocess", "error", err)
		}
	} else {
		code, waitErr = c.proc.Wait()
		_ = c.flows.Wait()
		c.closeStreams()
	}

	c.state.Store(int32(StateResolved))

	c.log.Info("Subprocess finished",
		"exit_code", code,
		"stderr_bytes", c.tail.Total(),
	)

	switch {
	case callerErr != nil:
		return callerErr
	case c.fault.Err() != nil:
		return c.fault.Err()
	case c.ctx.Err() != nil:
		return context.Cause(c.ctx)
	case abnormal:
		return nil
	case waitErr != nil:
		return waitErr
	case code != 0:
		return &sperrors.IterableSubprocessError{
			ReturnCode: code,
			Stderr:     c.tail.Bytes(),
		}
	default:
		return nil
	}
}

// kill terminates the process at most once. Failure is logged only.
func (c *Controller) kill() {
	c.killOnce.Do(func() {
		if err := c.proc.Kill(); err != nil {
			c.log.Warn("Failed to kill subprocess", "error", err)
		}
	})
}

// closeStreams closes all three pipe ends. Streams already closed by a flow
// are skipped silently.
func (c *Controller) closeStreams() {
	streams := []struct {
		name   string
		closer io.Closer
	}{
		{"stdin", c.proc.Stdin()},
		{"stdout", c.proc.Stdout()},
		{"stderr", c.proc.Stderr()},
	}

	for _, s := range streams {
		if err := s.closer.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			c.log.Warn("Failed to close stream", "stream", s.name, "error", err)
		}
	}
}
