package format

import "fmt"

// Alignment helpers. Every alignment must be a non-zero power of two; the
// mask arithmetic below is wrong for anything else, so violations panic.
//
// Example:
//
//	AlignmentAddition(13, 8)    = 3
//	AlignmentSubtraction(13, 8) = 5
//	Align(13, 8)                = 16
//	Align(16, 8)                = 16

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// CheckAlignment panics unless alignment is a non-zero power of two.
func CheckAlignment(alignment uintptr) {
	if !IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("format: alignment %d is not a power of two", alignment))
	}
}

// AlignmentAddition returns the number of padding bytes that must be added to
// address to reach the next multiple of alignment. It is 0 when address is
// already aligned.
func AlignmentAddition(address, alignment uintptr) uintptr {
	CheckAlignment(alignment)
	if mod := address & (alignment - 1); mod != 0 {
		return alignment - mod
	}
	return 0
}

// AlignmentSubtraction returns the number of bytes that must be subtracted
// from address to reach the previous multiple of alignment.
func AlignmentSubtraction(address, alignment uintptr) uintptr {
	CheckAlignment(alignment)
	return address & (alignment - 1)
}

// Align returns address rounded up to the next multiple of alignment.
func Align(address, alignment uintptr) uintptr {
	return address + AlignmentAddition(address, alignment)
}

// AlignInt is Align for int offsets, used by the slice-based allocators.
func AlignInt(n, alignment int) int {
	if n < 0 || alignment < 0 {
		panic(fmt.Sprintf("format: negative offset %d or alignment %d", n, alignment))
	}
	return int(Align(uintptr(n), uintptr(alignment)))
}

// PaddingInt is AlignmentAddition for int offsets.
func PaddingInt(n, alignment int) int {
	if n < 0 || alignment < 0 {
		panic(fmt.Sprintf("format: negative offset %d or alignment %d", n, alignment))
	}
	return int(AlignmentAddition(uintptr(n), uintptr(alignment)))
}

// AlignPage returns n rounded up to a multiple of pageSize.
//
// Example:
//
//	AlignPage(1, 4096)    = 4096
//	AlignPage(4096, 4096) = 4096
//	AlignPage(4097, 4096) = 8192
func AlignPage(n, pageSize int) int {
	return AlignInt(n, pageSize)
}
