//go:build !unix

package mmfile

import (
	"fmt"
	"os"

	"github.com/joshuapare/wika/internal/format"
)

// PageSize returns the assumed page size when the host cannot report one.
func PageSize() int {
	return format.DefaultPageSize
}

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// MapAnon falls back to heap memory.
func MapAnon(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), nil
}

// Unmap is a no-op for heap-backed memory.
func Unmap([]byte) error {
	return nil
}
