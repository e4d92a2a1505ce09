package mem

import (
	"errors"
	"fmt"
	"iter"

	"github.com/joshuapare/wika/internal/format"
	"github.com/joshuapare/wika/internal/logger"
	"github.com/joshuapare/wika/internal/mmfile"
)

// DefaultSegmentSize is the segment size used when ArenaOptions leaves it
// unset (64 KiB).
const DefaultSegmentSize = 64 * format.KiB

// ArenaOptions configures a new Arena.
type ArenaOptions struct {
	// SegmentSize is the minimum size of each mapped segment. It is rounded
	// up to the page size.
	// Default: DefaultSegmentSize
	SegmentSize int
}

// Arena is a chain of fixed, non-relocating segments supporting bump
// allocation and bulk rollback. Only the last segment accepts reservations.
type Arena struct {
	segments    []*Buffer
	segmentSize int
	pageSize    int
	closed      bool
}

// Checkpoint is a saved arena position: the index of the last segment and
// its high-water mark at the time Checkpoint was called.
type Checkpoint struct {
	Segment int
	Offset  int
}

// NewArena maps the first segment and returns the arena.
func NewArena(opts ArenaOptions) (*Arena, error) {
	size := opts.SegmentSize
	if size <= 0 {
		size = DefaultSegmentSize
	}
	a := &Arena{
		pageSize: mmfile.PageSize(),
	}
	a.segmentSize = format.AlignPage(size, a.pageSize)
	if err := a.appendSegment(a.segmentSize); err != nil {
		return nil, err
	}
	return a, nil
}

// Reserve returns size bytes whose address is a multiple of alignment. A new
// segment is mapped with room for size+alignment bytes, so alignments larger
// than a page are honored too. The memory stays at the
// same address until a Rollback past it or Close. Reused memory is not
// cleared.
func (a *Arena) Reserve(size, alignment int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		panic(fmt.Sprintf("mem: negative reservation size %d", size))
	}
	format.CheckAlignment(uintptr(alignment))

	if p, ok := a.last().reserve(size, alignment); ok {
		return p, nil
	}

	need := max(size+alignment, a.segmentSize)
	if err := a.appendSegment(format.AlignPage(need, a.pageSize)); err != nil {
		return nil, err
	}
	p, _ := a.last().reserve(size, alignment)
	return p, nil
}

// Checkpoint returns the current position of the arena.
func (a *Arena) Checkpoint() Checkpoint {
	return Checkpoint{Segment: len(a.segments) - 1, Offset: a.last().used}
}

// Rollback frees every segment appended after cp and truncates the
// checkpointed segment back to cp.Offset. Rolling back to a position the
// arena has already been rolled back past panics.
func (a *Arena) Rollback(cp Checkpoint) {
	if a.closed {
		return
	}
	if cp.Segment < 0 || cp.Segment >= len(a.segments) {
		panic(fmt.Sprintf("mem: checkpoint segment %d out of range (%d segments)", cp.Segment, len(a.segments)))
	}
	seg := a.segments[cp.Segment]
	if cp.Offset < 0 || cp.Offset > seg.used {
		panic(fmt.Sprintf("mem: checkpoint offset %d beyond high-water mark %d", cp.Offset, seg.used))
	}

	freed := len(a.segments) - 1 - cp.Segment
	for i := len(a.segments) - 1; i > cp.Segment; i-- {
		if err := mmfile.Unmap(a.segments[i].data); err != nil {
			logger.Warn("arena segment unmap failed", "segment", i, "err", err)
		}
		a.segments[i] = nil
	}
	a.segments = a.segments[:cp.Segment+1]
	seg.used = cp.Offset

	if freed > 0 {
		logger.Debug("arena rolled back", "freed_segments", freed, "segment", cp.Segment, "offset", cp.Offset)
	}
}

// Reset rolls the arena back to empty, keeping only the first segment.
func (a *Arena) Reset() {
	a.Rollback(Checkpoint{})
}

// Iterate walks every live segment in chain order and, within each, every
// record of size bytes placed at successive multiples of alignment up to the
// high-water mark. Iteration stops when visit returns false.
func (a *Arena) Iterate(size, alignment int, visit func(record []byte) bool) {
	if size <= 0 {
		panic(fmt.Sprintf("mem: record size must be positive, got %d", size))
	}
	format.CheckAlignment(uintptr(alignment))
	for _, seg := range a.segments {
		off := 0
		for {
			off += seg.padding(off, alignment)
			end := off + size
			if end > seg.used {
				break
			}
			if !visit(seg.data[off:end:end]) {
				return
			}
			off = end
		}
	}
}

// Records is the iterator form of Iterate.
func (a *Arena) Records(size, alignment int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		a.Iterate(size, alignment, yield)
	}
}

// Close unmaps every segment. The arena cannot be used afterwards; Close is
// idempotent.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	var errs []error
	for i, seg := range a.segments {
		if err := mmfile.Unmap(seg.data); err != nil {
			errs = append(errs, fmt.Errorf("segment %d: %w", i, err))
		}
	}
	a.segments = nil
	return errors.Join(errs...)
}

func (a *Arena) last() *Buffer {
	if len(a.segments) == 0 {
		panic("mem: use of closed arena")
	}
	return a.segments[len(a.segments)-1]
}

func (a *Arena) appendSegment(size int) error {
	data, err := mmfile.MapAnon(size)
	if err != nil {
		return fmt.Errorf("%w (%d bytes): %w", ErrMapFailed, size, err)
	}
	a.segments = append(a.segments, newFixedBuffer(data))
	logger.Debug("arena segment mapped", "size", size, "segments", len(a.segments))
	return nil
}
