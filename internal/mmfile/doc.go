// Package mmfile provides platform-specific helpers for memory mappings:
// read-only file mappings for the source loader and anonymous mappings for
// arena segments.
package mmfile
