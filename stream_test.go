package itersubprocess

import (
	"bytes"
	"errors"
	"iter"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainInput(t *testing.T, input iter.Seq2[[]byte, error]) ([]string, error) {
	t.Helper()

	var got []string

	for chunk, err := range input {
		if err != nil {
			return got, err
		}

		got = append(got, string(chunk))
	}

	return got, nil
}

func TestChunksFromSlice(t *testing.T) {
	got, err := drainInput(t, ChunksFromSlice([][]byte{[]byte("a"), {}, []byte("b")}))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, got)
}

func TestChunksFromSlice_Empty(t *testing.T) {
	got, err := drainInput(t, ChunksFromSlice(nil))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChunksFromSlice_StopsEarly(t *testing.T) {
	count := 0

	for range ChunksFromSlice([][]byte{[]byte("a"), []byte("b"), []byte("c")}) {
		count++

		break
	}

	assert.Equal(t, 1, count)
}

func TestChunksFromChannel(t *testing.T) {
	ch := make(chan []byte, 3)
	ch <- []byte("first")
	ch <- []byte("second")
	close(ch)

	got, err := drainInput(t, ChunksFromChannel(ch))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestChunksFromReader(t *testing.T) {
	got, err := drainInput(t, ChunksFromReader(strings.NewReader("abcdefg"), 3))

	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "g"}, got)
}

func TestChunksFromReader_ChunksAreIndependent(t *testing.T) {
	var chunks [][]byte

	for chunk, err := range ChunksFromReader(iotest.OneByteReader(strings.NewReader("xyz")), 0) {
		require.NoError(t, err)

		chunks = append(chunks, chunk)
	}

	require.Len(t, chunks, 3)
	assert.Equal(t, "x", string(chunks[0]))
	assert.Equal(t, "z", string(chunks[2]))
}

func TestChunksFromReader_HugeSizeIsClamped(t *testing.T) {
	got, err := drainInput(t, ChunksFromReader(strings.NewReader("abc"), MaxChunkSize*64))

	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, got)
}

func TestChunksFromReader_Error(t *testing.T) {
	readErr := errors.New("disk on fire")

	got, err := drainInput(t, ChunksFromReader(iotest.ErrReader(readErr), 8))

	require.ErrorIs(t, err, readErr)
	assert.Empty(t, got)
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteTo(&buf, ChunksFromSlice([][]byte{[]byte("hello "), []byte("world")}))

	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "hello world", buf.String())
}

func TestWriteTo_OutputErrorUnchanged(t *testing.T) {
	outputErr := errors.New("producer failed")

	output := func(yield func([]byte, error) bool) {
		if !yield([]byte("partial"), nil) {
			return
		}

		yield(nil, outputErr)
	}

	var buf bytes.Buffer

	n, err := WriteTo(&buf, output)

	require.Same(t, outputErr, err)
	assert.Equal(t, int64(7), n)
}

func TestWriteTo_WriterError(t *testing.T) {
	_, err := WriteTo(failingWriter{}, ChunksFromSlice([][]byte{[]byte("x")}))

	require.ErrorContains(t, err, "write output")
}

func TestCollect(t *testing.T) {
	out, err := Collect(ChunksFromSlice([][]byte{[]byte("first\n"), []byte("second\n")}))

	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(out))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}
