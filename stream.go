package itersubprocess

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ChunksFromSlice creates an input sequence from a fixed set of chunks.
func ChunksFromSlice(chunks [][]byte) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, chunk := range chunks {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// ChunksFromChannel creates an input sequence from a channel.
// This is useful when chunks are produced over time by another goroutine.
// The sequence completes when the channel is closed.
//
// The channel must be closed or keep producing: input is pulled on a
// goroutine that cannot be interrupted, so Close and Run wait for a pending
// receive to return even after the output was abandoned or the caller failed.
func ChunksFromChannel(ch <-chan []byte) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for chunk := range ch {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// ChunksFromReader creates an input sequence that reads r in blocks of at most
// size bytes. EOF ends the sequence; any other read error is yielded once.
// A non-positive size means DefaultChunkSize.
func ChunksFromReader(r io.Reader, size int) iter.Seq2[[]byte, error] {
	if size <= 0 {
		size = DefaultChunkSize
	}

	size = min(size, MaxChunkSize)

	return func(yield func([]byte, error) bool) {
		buf := make([]byte, size)

		for {
			n, err := r.Read(buf)
			if n > 0 {
				if !yield(bytes.Clone(buf[:n]), nil) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, fmt.Errorf("read input: %w", err))
				}

				return
			}
		}
	}
}

// WriteTo copies every chunk of output to w and returns the number of bytes
// written. It stops at the first error from either side.
func WriteTo(w io.Writer, output iter.Seq2[[]byte, error]) (int64, error) {
	var written int64

	for chunk, err := range output {
		if err != nil {
			return written, err
		}

		n, err := w.Write(chunk)
		written += int64(n)

		if err != nil {
			return written, fmt.Errorf("write output: %w", err)
		}
	}

	return written, nil
}

// Collect reads the whole output into memory.
// Only use it when the output is known to be small.
func Collect(output iter.Seq2[[]byte, error]) ([]byte, error) {
	var buf bytes.Buffer

	if _, err := WriteTo(&buf, output); err != nil {
		return buf.Bytes(), err
	}

	return buf.Bytes(), nil
}
