package lifecycle

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// isBrokenPipe reports whether a stdin write failed because the read end is
// gone: the process exited or closed its standard input.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		isPlatformBrokenPipe(err)
}
