// Package mem provides the bump allocators used by the front-end.
//
// # Overview
//
// Two allocators share one reservation primitive:
//
//   - Buffer: a single growable region. Reservations are aligned bump
//     allocations from the high-water mark; when the region is full it is
//     reallocated to cap + cap/2 + need bytes and the old contents copied.
//     Growth moves memory, so slices returned before a growth no longer
//     alias the buffer.
//
//   - Arena: an ordered chain of fixed segments, each an anonymous
//     page-granular mapping taken directly from the kernel. Segments never
//     move; when the last one is full a new one is appended. Memory returned
//     by an arena is stable until a Rollback frees the segment holding it or
//     the arena is closed.
//
// # Checkpoints
//
// An arena position can be saved and restored:
//
//	cp := a.Checkpoint()
//	b, err := a.Reserve(n+1, 1)
//	if err != nil {
//	    return err
//	}
//	// ... decide the bytes are not needed after all
//	a.Rollback(cp)
//
// Rollback unmaps every segment appended after the checkpoint and truncates
// the checkpointed segment. Reserving the same sizes again returns the same
// addresses within that segment.
//
// # Typed reservation
//
// Reserve[T] and ReserveSlice[T] place values of pointer-free types in an
// arena. Segment memory is not scanned by the garbage collector, so types
// containing Go pointers (including strings, slices and maps) are rejected
// with ErrPointerType.
//
// # Concurrency
//
// Nothing in this package is synchronized. Give each goroutine its own
// Arena.
package mem
