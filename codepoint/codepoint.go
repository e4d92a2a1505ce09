// Package codepoint decodes UTF-8 one code point at a time.
//
// The decoder classifies the lead byte through a 256-entry table and checks
// that every following byte is continuation-shaped (10xxxxxx). It does not
// reject overlong encodings or surrogate code points; callers that need
// strict validation should use unicode/utf8.
package codepoint

const (
	// MaxSize is the longest encoding Decode accepts.
	MaxSize = 4

	// MaxRune is the largest code point Size will measure.
	MaxRune = 0x10FFFF
)

// classes maps a lead byte to the length of the sequence it starts:
// 1 for ASCII, 2-4 for multi-byte leads, 0 for stray continuation bytes and
// the unsupported 5/6-byte lead patterns.
var classes = [256]uint8{
	// 0x00-0x7F: ASCII
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	// 0x80-0xBF: continuation
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0xC0-0xDF: two-byte leads
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	// 0xE0-0xEF: three-byte leads
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	// 0xF0-0xF7: four-byte leads
	4, 4, 4, 4, 4, 4, 4, 4,
	// 0xF8-0xFF: 5/6-byte leads and invalid
	0, 0, 0, 0, 0, 0, 0, 0,
}

// leadMasks keeps the payload bits of a lead byte, indexed by class.
var leadMasks = [MaxSize + 1]byte{0, 0x7F, 0x1F, 0x0F, 0x07}

const (
	continuationMask  = 0xC0
	continuationBits  = 0x80
	continuationValue = 0x3F
)

// Class returns the lead-byte class of b: the length of the sequence b
// starts, or 0 if b cannot start a sequence.
func Class(b byte) int {
	return int(classes[b])
}

// IsContinuation reports whether b has the 10xxxxxx shape.
func IsContinuation(b byte) bool {
	return b&continuationMask == continuationBits
}

// Decode decodes the code point at the start of b and returns it together
// with the number of bytes consumed. It returns (0, 0) if b is empty, starts
// with an invalid lead byte, is truncated, or has a malformed continuation
// byte; the caller must treat that as an error rather than skip it.
func Decode(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	n := int(classes[b[0]])
	if n == 0 || n > len(b) {
		return 0, 0
	}
	r := rune(b[0] & leadMasks[n])
	for i := 1; i < n; i++ {
		c := b[i]
		if !IsContinuation(c) {
			return 0, 0
		}
		r = r<<6 | rune(c&continuationValue)
	}
	return r, n
}

// Size returns the number of bytes needed to encode r, or 0 if r is negative
// or beyond MaxRune.
func Size(r rune) int {
	switch {
	case r < 0:
		return 0
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	case r <= MaxRune:
		return 4
	default:
		return 0
	}
}
