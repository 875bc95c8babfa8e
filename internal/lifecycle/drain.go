package lifecycle

import (
	"bytes"
	"errors"
	"io"
)

// drain reads stderr until EOF, keeping only the most recent bytes.
// It never fails: a read error simply ends the drain.
func (c *Controller) drain() {
	stderr := c.proc.Stderr()
	buf := make([]byte, c.chunkSize)

	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			_, _ = c.tail.Write(buf[:n])

			if c.stderrCallback != nil {
				c.stderrCallback(bytes.Clone(buf[:n]))
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Debug("Stderr read stopped", "error", err)
			}

			return
		}
	}
}
