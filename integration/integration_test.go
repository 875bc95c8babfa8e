//go:build integration

package integration

import (
	"errors"
	"iter"
	"os/exec"
	"testing"

	itersubprocess "github.com/wagiedev/iterable-subprocess-go"
)

// skipIfNotInstalled skips the test if name is not on PATH.
func skipIfNotInstalled(t *testing.T, name string) {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not installed", name)
	}
}

// skipIfNotFound skips the test if err reports a missing executable.
func skipIfNotFound(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*itersubprocess.ExecutableNotFoundError](err); ok {
		t.Skip("executable not installed")
	}
}

// pattern yields n chunks of size bytes with a position-dependent pattern.
func pattern(n, size int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		chunk := make([]byte, size)

		for i := range n {
			for j := range chunk {
				chunk[j] = byte((i*size + j) % 253)
			}

			if !yield(chunk, nil) {
				return
			}
		}
	}
}
