package lifecycle

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/wagiedev/iterable-subprocess-go/internal/config"
)

// behavior simulates a child process. It reads stdin from in, writes to out
// and errOut, and returns the exit code. killed is closed by Kill.
type behavior func(in io.Reader, out, errOut io.Writer, killed <-chan struct{}) int

// fakeLauncher launches fakeProcess instances running a behavior.
type fakeLauncher struct {
	behavior behavior
	err      error

	mu       sync.Mutex
	launched []*fakeProcess
	commands []config.Command
}

var _ config.Launcher = (*fakeLauncher)(nil)

func (l *fakeLauncher) Launch(_ context.Context, cmd config.Command) (config.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.commands = append(l.commands, cmd)

	if l.err != nil {
		return nil, l.err
	}

	p := startFakeProcess(l.behavior)
	l.launched = append(l.launched, p)

	return p, nil
}

func (l *fakeLauncher) process() *fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.launched[len(l.launched)-1]
}

// fakeProcess wires a behavior to three in-memory pipes. Kill behaves like
// SIGKILL: all process-side pipe ends are closed and the exit code is -9.
type fakeProcess struct {
	stdinR  *io.PipeReader
	stdinW  *io.PipeWriter
	stdoutR *io.PipeReader
	stdoutW *io.PipeWriter
	stderrR *io.PipeReader
	stderrW *io.PipeWriter

	stdin *countingWriter

	killed   chan struct{}
	killOnce sync.Once
	done     chan struct{}
	code     int

	mu     sync.Mutex
	events []string
}

var _ config.Process = (*fakeProcess)(nil)

func startFakeProcess(run behavior) *fakeProcess {
	p := &fakeProcess{
		killed: make(chan struct{}),
		done:   make(chan struct{}),
	}

	p.stdinR, p.stdinW = io.Pipe()
	p.stdoutR, p.stdoutW = io.Pipe()
	p.stderrR, p.stderrW = io.Pipe()
	p.stdin = &countingWriter{w: p.stdinW}

	go func() {
		code := run(p.stdinR, p.stdoutW, p.stderrW, p.killed)
		p.exit()
		p.code = code
		close(p.done)
	}()

	return p
}

// exit closes the process-side pipe ends like the OS does on process exit.
func (p *fakeProcess) exit() {
	_ = p.stdinR.CloseWithError(syscall.EPIPE)
	_ = p.stdoutW.Close()
	_ = p.stderrW.Close()
}

func (p *fakeProcess) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
}

func (p *fakeProcess) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.events...)
}

func (p *fakeProcess) Stdin() io.WriteCloser {
	return &recordingCloser{WriteCloser: p.stdin, name: "close stdin", p: p}
}

func (p *fakeProcess) Stdout() io.ReadCloser {
	return &recordingReadCloser{ReadCloser: p.stdoutR, name: "close stdout", p: p}
}

func (p *fakeProcess) Stderr() io.ReadCloser {
	return &recordingReadCloser{ReadCloser: p.stderrR, name: "close stderr", p: p}
}

func (p *fakeProcess) Pid() int { return 4242 }

func (p *fakeProcess) Kill() error {
	p.record("kill")

	p.killOnce.Do(func() {
		close(p.killed)
		p.exit()
	})

	return nil
}

func (p *fakeProcess) Wait() (int, error) {
	p.record("wait")

	<-p.done

	select {
	case <-p.killed:
		return -9, nil
	default:
		return p.code, nil
	}
}

func (p *fakeProcess) wasKilled() bool {
	select {
	case <-p.killed:
		return true
	default:
		return false
	}
}

// countingWriter counts Write calls that reach the pipe.
type countingWriter struct {
	w      *io.PipeWriter
	writes atomic.Int32
}

func (c *countingWriter) Write(b []byte) (int, error) {
	c.writes.Add(1)

	return c.w.Write(b)
}

func (c *countingWriter) Close() error { return c.w.Close() }

type recordingCloser struct {
	io.WriteCloser
	name string
	p    *fakeProcess
}

func (r *recordingCloser) Close() error {
	r.p.record(r.name)

	return r.WriteCloser.Close()
}

type recordingReadCloser struct {
	io.ReadCloser
	name string
	p    *fakeProcess
}

func (r *recordingReadCloser) Close() error {
	r.p.record(r.name)

	return r.ReadCloser.Close()
}

// echo copies stdin to stdout, like cat.
func echo(in io.Reader, out, _ io.Writer, _ <-chan struct{}) int {
	_, _ = io.Copy(out, in)

	return 0
}

// echoThenExit copies stdin to stdout, writes stderr and exits with code.
func echoThenExit(code int, stderr []byte) behavior {
	return func(in io.Reader, out, errOut io.Writer, _ <-chan struct{}) int {
		_, _ = io.Copy(out, in)
		_, _ = errOut.Write(stderr)

		return code
	}
}

// blockUntilKilled never reads or writes and only exits when killed.
func blockUntilKilled(_ io.Reader, _, _ io.Writer, killed <-chan struct{}) int {
	<-killed

	return -9
}
