package arena

import (
	"fmt"
	"io"

	"github.com/fagongzi/util/hack"
)

const defaultMinGrowSize = 64

// BufferOption buffer option
type BufferOption func(*Buffer)

// WithMinGrowSize set the minimum number of bytes a Buffer grows by when it
// runs out of space.
func WithMinGrowSize(minGrowSize int) BufferOption {
	return func(b *Buffer) {
		b.minGrowSize = minGrowSize
	}
}

var (
	_ io.Writer       = (*Buffer)(nil)
	_ io.ByteWriter   = (*Buffer)(nil)
	_ io.StringWriter = (*Buffer)(nil)
)

// Buffer is a growable byte buffer whose storage comes from an Allocator.
// While the buffer is the most recent allocation of an arena it grows in
// place; otherwise growing copies it forward.
//
// | written bytes | writable bytes |
// 0      <=      Len()     <=     Cap()
type Buffer struct {
	alloc       Allocator
	buf         []byte // len(buf) is the allocated capacity
	n           int
	minGrowSize int
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(alloc Allocator, capacity int, opts ...BufferOption) (*Buffer, error) {
	b := &Buffer{alloc: alloc}
	for _, opt := range opts {
		opt(b)
	}
	if b.minGrowSize <= 0 {
		b.minGrowSize = defaultMinGrowSize
	}
	if capacity > 0 {
		buf, err := alloc.Allocate(Layout{Size: capacity, Align: 1})
		if err != nil {
			return nil, err
		}
		b.buf = buf
	}
	return b, nil
}

// Write appends p. On ErrOutOfMemory nothing is written.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.ensure(len(p)); err != nil {
		return 0, err
	}
	n := copy(b.buf[b.n:], p)
	b.n += n
	return n, nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write(hack.StringToSlice(s))
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.ensure(1); err != nil {
		return err
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// Bytes returns the written bytes. The slice aliases arena memory and is
// only valid until the next write or until the arena is rewound.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.n]
}

// String returns a copy of the written bytes.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Len returns the number of written bytes.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the allocated capacity.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Reset empties the buffer and keeps its storage.
func (b *Buffer) Reset() {
	b.n = 0
}

// Truncate keeps the first n written bytes.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.n {
		panic(fmt.Sprintf("arena: truncate %d out of range [0, %d]", n, b.n))
	}
	b.n = n
}

// Close hands the storage back to the allocator.
func (b *Buffer) Close() {
	b.alloc.Deallocate(b.buf, Layout{Size: len(b.buf), Align: 1})
	b.buf = nil
	b.n = 0
}

func (b *Buffer) ensure(n int) error {
	if len(b.buf)-b.n >= n {
		return nil
	}
	need := b.n + n
	size := max(need, 2*len(b.buf), len(b.buf)+b.minGrowSize)
	from := Layout{Size: len(b.buf), Align: 1}
	buf, err := b.alloc.Grow(b.buf, from, Layout{Size: size, Align: 1})
	if err != nil && size > need {
		buf, err = b.alloc.Grow(b.buf, from, Layout{Size: need, Align: 1})
	}
	if err != nil {
		return err
	}
	b.buf = buf
	return nil
}
