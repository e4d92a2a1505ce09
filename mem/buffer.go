package mem

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/wika/internal/format"
)

// Buffer is a contiguous region with a high-water mark. Alignment applies to
// the address of each reservation. Growth relocates the region, so earlier
// reservations keep their offsets but not necessarily their alignment.
type Buffer struct {
	data []byte
	used int

	// pads records the padding of each reservation, newest last, so that
	// Release can undo it exactly. Arena segments do not record it.
	pads []uint32

	// fixed buffers refuse to grow; they back arena segments.
	fixed bool
}

// NewBuffer returns an empty growable buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		panic(fmt.Sprintf("mem: negative buffer capacity %d", capacity))
	}
	return &Buffer{data: make([]byte, capacity)}
}

// newFixedBuffer wraps memory that must never be reallocated.
func newFixedBuffer(data []byte) *Buffer {
	return &Buffer{data: data, fixed: true}
}

// Len returns the number of bytes in use, padding included.
func (b *Buffer) Len() int { return b.used }

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int { return len(b.data) }

// Available returns the number of bytes left before the buffer must grow.
func (b *Buffer) Available() int { return len(b.data) - b.used }

// Bytes returns the used prefix of the buffer. The slice is invalidated by
// the next growth.
func (b *Buffer) Bytes() []byte { return b.data[:b.used:b.used] }

// Reset forgets every reservation without releasing memory.
func (b *Buffer) Reset() {
	b.used = 0
	b.pads = b.pads[:0]
}

// Reserve returns size fresh bytes starting at the next address that is a
// multiple of alignment. If the remaining capacity is too small the buffer
// grows first, which relocates the existing contents.
func (b *Buffer) Reserve(size, alignment int) []byte {
	if size < 0 {
		panic(fmt.Sprintf("mem: negative reservation size %d", size))
	}
	format.CheckAlignment(uintptr(alignment))
	for {
		// The base moves on growth, so the padding is recomputed each time.
		pad := b.padding(b.used, alignment)
		if pad+size <= b.Available() {
			p, _ := b.reserve(size, alignment)
			b.pads = append(b.pads, uint32(pad))
			return p
		}
		b.grow(pad + size)
	}
}

// Release undoes the most recent reservation of size bytes made with the
// same alignment, padding included. Reservations must be released in LIFO
// order; nothing checks that they are.
func (b *Buffer) Release(size, alignment int) {
	if size < 0 {
		panic(fmt.Sprintf("mem: negative release size %d", size))
	}
	format.CheckAlignment(uintptr(alignment))
	pad := 0
	if n := len(b.pads); n > 0 {
		pad = int(b.pads[n-1])
		b.pads = b.pads[:n-1]
	}
	if size+pad > b.used {
		panic(fmt.Sprintf("mem: release of %d bytes exceeds %d in use", size+pad, b.used))
	}
	b.used -= size + pad
}

// reserve bumps the high-water mark without growing. It reports false when
// the request does not fit.
func (b *Buffer) reserve(size, alignment int) ([]byte, bool) {
	start := b.used + b.padding(b.used, alignment)
	end := start + size
	if end > len(b.data) {
		return nil, false
	}
	b.used = end
	return b.data[start:end:end], true
}

// padding returns the bytes needed to bring the address at offset off up to
// a multiple of alignment.
func (b *Buffer) padding(off, alignment int) int {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
	return int(format.AlignmentAddition(base+uintptr(off), uintptr(alignment)))
}

// grow reallocates the buffer so that at least need more bytes fit.
func (b *Buffer) grow(need int) {
	if b.fixed {
		panic("mem: fixed buffer cannot grow")
	}
	size := len(b.data) + len(b.data)/2 + need
	data := make([]byte, size)
	copy(data, b.data[:b.used])
	b.data = data
}
