package memory

import (
	"errors"
	"fmt"
)

// DefaultSize is the capacity of the mocked guest heap.
const DefaultSize = 16384

var (
	// ErrOutOfMemory is the panic value (wrapped) raised when the arena is exhausted.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrOutOfBounds is returned when a view falls outside the written region.
	ErrOutOfBounds = errors.New("memory access out of bounds")
)

// Arena is a fixed-size, bump-allocated linear memory. Buffers are appended
// at the write cursor and addressed by offset.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	buf []byte
	off int
}

// NewArena creates an arena with the given capacity in bytes.
func NewArena(size int) *Arena {
	if size <= 0 {
		size = DefaultSize
	}
	return &Arena{buf: make([]byte, size)}
}

// Cap returns the arena capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// Len returns the number of bytes written so far.
func (a *Arena) Len() int { return a.off }

// Write appends data at the cursor and returns the offset it was written at.
// Exhausting the arena is fatal: Write panics rather than corrupt memory.
func (a *Arena) Write(data []byte) int32 {
	prev := a.off
	end := prev + len(data)
	// the cursor must stay strictly below capacity
	if end >= len(a.buf) {
		panic(fmt.Errorf("%w: arena of %d bytes, cursor %d, request %d",
			ErrOutOfMemory, len(a.buf), prev, len(data)))
	}
	copy(a.buf[prev:end], data)
	a.off = end
	return int32(prev)
}

// WriteHandle writes data and returns its packed handle.
func (a *Arena) WriteHandle(data []byte) Handle {
	return Pack(a.Write(data), int32(len(data)))
}

// View returns the live bytes at [offset, offset+length). The slice aliases
// the arena and is only valid until the next Release.
func (a *Arena) View(offset, length int32) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("%w: offset=%d length=%d", ErrOutOfBounds, offset, length)
	}
	start := int(offset)
	end := start + int(length)
	if end > a.off {
		return nil, fmt.Errorf("%w: offset=%d length=%d written=%d", ErrOutOfBounds, offset, length, a.off)
	}
	return a.buf[start:end:end], nil
}

// Read returns a copy of the bytes at [offset, offset+length).
func (a *Arena) Read(offset, length int32) ([]byte, error) {
	v, err := a.View(offset, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// ReadHandle returns a copy of the buffer referenced by h.
func (a *Arena) ReadHandle(h Handle) ([]byte, error) {
	off, n := Unpack(h)
	return a.Read(off, n)
}

// Mark returns the current cursor, to be handed back to Release.
func (a *Arena) Mark() int {
	return a.off
}

// Release rewinds the cursor to mark, reclaiming everything written since.
// Handles into the released region become invalid.
func (a *Arena) Release(mark int) {
	if mark < 0 || mark > a.off {
		return
	}
	clear(a.buf[mark:a.off])
	a.off = mark
}
