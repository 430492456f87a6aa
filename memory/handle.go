// Package memory implements the linear memory boundary shared by the guest
// and the host: packed (offset, length) handles and a bounded arena.
package memory

import "fmt"

// Handle is a buffer living in linear memory, packed into a single 64-bit
// value: offset in the high 32 bits, length in the low 32 bits.
//
// A handle is only meaningful while the buffer it was packed from is alive.
type Handle uint64

// Pack combines two int32 into one handle. Negative values are kept as raw
// bit patterns.
func Pack(offset, length int32) Handle {
	return Handle(uint64(uint32(offset))<<32 | uint64(uint32(length)))
}

// Unpack splits a handle into its offset and length.
func Unpack(h Handle) (offset, length int32) {
	return int32(uint32(h >> 32)), int32(uint32(h))
}

// Offset returns the offset half of the handle.
func (h Handle) Offset() int32 {
	off, _ := Unpack(h)
	return off
}

// Len returns the length half of the handle.
func (h Handle) Len() int32 {
	_, n := Unpack(h)
	return n
}

func (h Handle) String() string {
	off, n := Unpack(h)
	return fmt.Sprintf("%d+%d", off, n)
}
