package mem

import "errors"

var (
	// ErrMapFailed indicates that the kernel refused a new segment mapping.
	// The arena is still usable up to its current segments, but callers
	// should treat the failure as fatal for the unit being processed.
	ErrMapFailed = errors.New("mem: segment mapping failed")

	// ErrClosed indicates a reservation from an arena that has been closed.
	ErrClosed = errors.New("mem: arena is closed")

	// ErrPointerType indicates a typed reservation of a type that holds Go
	// pointers, which must not live in memory hidden from the collector.
	ErrPointerType = errors.New("mem: type contains pointers")
)
