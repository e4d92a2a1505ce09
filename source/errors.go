package source

import "errors"

var (
	// ErrUnsupportedEncoding indicates an encoding name Load does not know.
	ErrUnsupportedEncoding = errors.New("source: unsupported encoding")

	// ErrPathTooLong indicates a path longer than the platform limit.
	ErrPathTooLong = errors.New("source: path too long")
)
