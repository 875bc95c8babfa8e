//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	itersubprocess "github.com/wagiedev/iterable-subprocess-go"
)

// TestLargeStderr_TailAndCallback streams far more stderr than the tail keeps.
func TestLargeStderr_TailAndCallback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var (
		mu       sync.Mutex
		streamed int
	)

	script := `i=0; while [ $i -lt 50000 ]; do echo "Error message $i" >&2; i=$((i+1)); done; exit 5`

	err := itersubprocess.Run(ctx, itersubprocess.Cmd("sh", "-c", script), nil,
		func(output iter.Seq2[[]byte, error]) error {
			_, err := itersubprocess.Collect(output)

			return err
		},
		itersubprocess.WithStderrCallback(func(chunk []byte) {
			mu.Lock()
			streamed += len(chunk)
			mu.Unlock()
		}),
	)
	skipIfNotFound(t, err)

	exitErr, ok := errors.AsType[*itersubprocess.IterableSubprocessError](err)
	require.True(t, ok, "expected IterableSubprocessError, got %v", err)
	require.Equal(t, 5, exitErr.ReturnCode)
	require.Len(t, exitErr.Stderr, itersubprocess.DefaultStderrTailSize)
	require.True(t, bytes.HasSuffix(exitErr.Stderr, []byte("Error message 49999\n")))

	mu.Lock()
	defer mu.Unlock()

	require.Greater(t, streamed, itersubprocess.DefaultStderrTailSize)
}

// TestLargeStdoutAndStderr interleaves heavy output on both streams.
func TestLargeStdoutAndStderr(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	input := strings.Repeat("0123456789abcdef\n", 1<<18)

	var out bytes.Buffer

	err := itersubprocess.Pipe(ctx,
		itersubprocess.Cmd("sh", "-c", "tee /dev/stderr"),
		strings.NewReader(input),
		&out,
		itersubprocess.WithStderrTailSize(1024),
	)

	require.NoError(t, err)
	require.Equal(t, input, out.String())
}
