package lifecycle

import (
	"fmt"
)

// feed pulls chunks from the input producer and writes them to stdin.
//
// A producer error is recorded as the fault and stops the feeder. A broken
// pipe means the process no longer reads its input and is not a fault. Stdin
// is closed on every return so the process sees end of input.
func (c *Controller) feed() {
	stdin := c.proc.Stdin()

	defer func() {
		if err := stdin.Close(); err != nil && !isBrokenPipe(err) {
			c.log.Debug("Failed to close stdin", "error", err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			c.fault.Set(fmt.Errorf("input producer panicked: %v", r))
			c.log.Error("Input producer panicked", "panic", r)
		}
	}()

	var chunks, written int

	for chunk, err := range c.input {
		if err != nil {
			if c.fault.Set(err) {
				c.log.Debug("Input producer failed", "chunks", chunks, "error", err)
			}

			return
		}

		chunks++

		if c.stopping.Load() {
			c.log.Debug("Teardown started, no longer feeding stdin", "chunks", chunks)

			return
		}

		if len(chunk) == 0 {
			continue
		}

		n, err := stdin.Write(chunk)
		written += n

		if err != nil {
			if isBrokenPipe(err) {
				c.log.Debug("Subprocess closed its stdin", "bytes_written", written)

				return
			}

			c.fault.Set(fmt.Errorf("write to stdin: %w", err))
			c.log.Error("Failed to write to stdin", "error", err)

			return
		}
	}

	c.log.Debug("Input exhausted, closing stdin", "chunks", chunks, "bytes_written", written)
}
