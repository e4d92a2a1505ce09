// Package format holds the size constants and alignment arithmetic shared by
// the allocators. Everything here is pure integer math so the hot paths in
// package mem can inline it.
package format

const (
	// KiB and MiB are binary size units.
	KiB = 1024
	MiB = KiB * KiB

	// DefaultAlignment is the alignment used when a caller has no stronger
	// requirement. It matches the word size of 64-bit targets.
	DefaultAlignment = 8

	// DefaultPageSize is the page size assumed when the platform cannot
	// report one.
	DefaultPageSize = 4 * KiB

	// MaxPathSize bounds source paths accepted by the loader.
	MaxPathSize = 4096
)
