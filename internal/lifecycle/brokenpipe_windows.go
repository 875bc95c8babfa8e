//go:build windows

package lifecycle

import (
	"errors"
	"syscall"
)

// errNoData is ERROR_NO_DATA, returned when writing to a pipe being closed.
const errNoData = syscall.Errno(232)

func isPlatformBrokenPipe(err error) bool {
	return errors.Is(err, syscall.ERROR_BROKEN_PIPE) || errors.Is(err, errNoData)
}
