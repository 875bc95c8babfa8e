package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	sperrors "github.com/wagiedev/iterable-subprocess-go/internal/errors"
)

// Output returns the process's stdout as a lazy sequence of chunks.
//
// Every pull performs a single read of at most the configured chunk size on
// the calling goroutine and yields a copy of exactly the bytes read. The
// sequence ends at EOF. A fault recorded by the input producer, the cause of a
// cancelled context, or a read error is yielded once as an error and ends the
// sequence, including when the read that observed it returned EOF.
//
// The sequence can be ranged over only once. Stopping early is allowed and is
// treated as abandonment by Close.
func (c *Controller) Output() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if c.closed.Load() {
			yield(nil, sperrors.ErrOutputClosed)

			return
		}

		if c.proc == nil {
			yield(nil, sperrors.ErrNotStarted)

			return
		}

		if !c.outputTaken.CompareAndSwap(false, true) {
			yield(nil, sperrors.ErrOutputConsumed)

			return
		}

		stdout := c.proc.Stdout()
		buf := make([]byte, c.chunkSize)

		var chunks int

		for {
			if err := c.interrupted(); err != nil {
				yield(nil, err)

				return
			}

			n, err := stdout.Read(buf)
			if n > 0 {
				chunks++

				if !yield(bytes.Clone(buf[:n]), nil) {
					c.log.Debug("Output abandoned by caller", "chunks", chunks)

					return
				}
			}

			if err != nil {
				// A producer fault closes stdin and a cancelled context kills
				// the process, so either can surface here as a plain EOF.
				if ierr := c.interrupted(); ierr != nil {
					yield(nil, ierr)

					return
				}

				if errors.Is(err, io.EOF) {
					c.exhausted.Store(true)
					c.log.Debug("Output exhausted", "chunks", chunks)

					return
				}

				if c.closed.Load() {
					yield(nil, sperrors.ErrOutputClosed)

					return
				}

				yield(nil, fmt.Errorf("read stdout: %w", err))

				return
			}
		}
	}
}

// interrupted returns the producer fault, or the cause of a cancelled context.
func (c *Controller) interrupted() error {
	if err := c.fault.Err(); err != nil {
		return err
	}

	if c.ctx.Err() != nil {
		return context.Cause(c.ctx)
	}

	return nil
}
