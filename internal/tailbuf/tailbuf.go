package tailbuf

import (
	"io"
	"sync"
)

// DefaultCapacity is the capacity used when New is given a non-positive size.
const DefaultCapacity = 64 * 1024

// Compile-time verification that Buffer implements io.Writer.
var _ io.Writer = (*Buffer)(nil)

// Buffer retains the last Cap() bytes written to it.
// It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	buf   []byte
	start int   // index of the oldest retained byte
	size  int   // number of retained bytes
	total int64 // bytes ever written
}

// New creates a Buffer that retains at most capacity bytes.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Buffer{buf: make([]byte, capacity)}
}

// Write appends p, discarding the oldest bytes once the buffer is full.
// It never fails and always reports len(p) bytes written.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(p)
	b.total += int64(n)

	capacity := len(b.buf)
	if n >= capacity {
		copy(b.buf, p[n-capacity:])
		b.start = 0
		b.size = capacity

		return n, nil
	}

	end := (b.start + b.size) % capacity
	copied := copy(b.buf[end:], p)
	copy(b.buf, p[copied:])

	b.size += n
	if b.size > capacity {
		b.start = (b.start + b.size - capacity) % capacity
		b.size = capacity
	}

	return n, nil
}

// Bytes returns a copy of the retained bytes, oldest first.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, b.size)

	copied := copy(out, b.buf[b.start:min(b.start+b.size, len(b.buf))])
	copy(out[copied:], b.buf)

	return out
}

// Len returns the number of retained bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.size
}

// Cap returns the maximum number of retained bytes.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Total returns the number of bytes ever written, including discarded ones.
func (b *Buffer) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.total
}
