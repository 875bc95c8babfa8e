package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/wagiedev/iterable-subprocess-go/internal/config"
	"github.com/wagiedev/iterable-subprocess-go/internal/errors"
)

// Launcher implements config.Launcher by spawning a local child process.
type Launcher struct {
	log *slog.Logger
}

// Compile-time verification that Launcher implements the Launcher interface.
var _ config.Launcher = (*Launcher)(nil)

// NewLauncher creates a new os/exec based launcher.
//
// The logger receives debug and info messages about process creation.
// If log is nil, logging is disabled.
func NewLauncher(log *slog.Logger) *Launcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Launcher{log: log.With("component", "launcher")}
}

// Launch resolves and starts the command.
//
// The process is bound to ctx: cancelling ctx kills it. Returns
// ExecutableNotFoundError if the executable cannot be located, or LaunchError
// if the pipes cannot be created or the process fails to start.
func (l *Launcher) Launch(ctx context.Context, c config.Command) (config.Process, error) {
	path, err := Resolve(c.Name)
	if err != nil {
		l.log.Debug("Failed to resolve executable", "name", c.Name, "error", err)

		return nil, err
	}

	//nolint:gosec // G204: launching caller-specified commands is the purpose of this package
	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir

	if len(c.Env) > 0 {
		cmd.Env = c.Env
	}

	p := &process{cmd: cmd}

	// Child ends are handed to the process and closed after Start.
	var childEnds []*os.File

	closeAll := func() {
		for _, f := range childEnds {
			_ = f.Close()
		}

		p.closeParentEnds()
	}

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return nil, &errors.LaunchError{Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	childEnds = append(childEnds, stdinR)
	p.stdin = stdinW

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		closeAll()

		return nil, &errors.LaunchError{Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	childEnds = append(childEnds, stdoutW)
	p.stdout = stdoutR

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll()

		return nil, &errors.LaunchError{Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	childEnds = append(childEnds, stderrW)
	p.stderr = stderrR

	cmd.Stdin = stdinR
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	if err := cmd.Start(); err != nil {
		l.log.Error("Failed to start process", "path", path, "error", err)
		closeAll()

		return nil, &errors.LaunchError{Err: fmt.Errorf("start process: %w", err)}
	}

	// The child holds its own copies now. Keeping ours open would prevent
	// stdout and stderr from ever reaching EOF.
	for _, f := range childEnds {
		_ = f.Close()
	}

	l.log.Info("Subprocess started", "path", path, "pid", cmd.Process.Pid)

	return p, nil
}

// process is a running child started by Launcher.
type process struct {
	cmd    *exec.Cmd
	stdin  *os.File
	stdout *os.File
	stderr *os.File

	waitOnce sync.Once
	code     int
	waitErr  error
}

// Compile-time verification that process implements the Process interface.
var _ config.Process = (*process)(nil)

func (p *process) Stdin() io.WriteCloser { return p.stdin }
func (p *process) Stdout() io.ReadCloser { return p.stdout }
func (p *process) Stderr() io.ReadCloser { return p.stderr }

// Pid returns the process ID.
func (p *process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}

	return p.cmd.Process.Pid
}

// Kill sends SIGKILL to the process. Killing a process that has already been
// reaped is not an error.
func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}

	err := p.cmd.Process.Kill()
	if err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process (pid %d): %w", p.cmd.Process.Pid, err)
	}

	return nil
}

// Wait reaps the process and returns its exit code. Repeated calls return the
// first result.
func (p *process) Wait() (int, error) {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()

		if state := p.cmd.ProcessState; state != nil {
			p.code = exitCode(state)

			return
		}

		p.code = -1
		p.waitErr = fmt.Errorf("wait for process: %w", err)
	})

	return p.code, p.waitErr
}

// closeParentEnds closes whichever parent pipe ends were created.
func (p *process) closeParentEnds() {
	for _, f := range []*os.File{p.stdin, p.stdout, p.stderr} {
		if f != nil {
			_ = f.Close()
		}
	}
}
