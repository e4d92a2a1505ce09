// Package source loads program text for the tokenizer. A Source owns a
// NUL-terminated UTF-8 copy of the file so the lexer can treat the
// terminator as its end-of-input signal.
package source

import (
	"fmt"

	"github.com/joshuapare/wika/codepoint"
	"github.com/joshuapare/wika/internal/format"
	"github.com/joshuapare/wika/internal/logger"
	"github.com/joshuapare/wika/internal/mmfile"
)

// Source is one input file. It is immutable once created.
type Source struct {
	// Path is the path the source was loaded from, as given by the caller.
	Path string

	// Encoding is the encoding the file was decoded from.
	Encoding string

	// Data holds the UTF-8 text followed by a single NUL byte.
	Data []byte
}

// Position is a 1-based line and column. Columns count code points; an
// undecodable byte counts as one column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// New builds a Source from in-memory UTF-8 text. The text is copied.
func New(path string, text []byte) *Source {
	return &Source{
		Path:     path,
		Encoding: EncodingUTF8,
		Data:     terminate(text),
	}
}

// Load reads the file at path, converts it to UTF-8 and NUL-terminates it.
func Load(path string, opts Options) (*Source, error) {
	if len(path) > format.MaxPathSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(path))
	}

	raw, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer func() { _ = cleanup() }()

	text, enc, err := decode(raw, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}

	src := &Source{
		Path:     path,
		Encoding: enc,
		Data:     terminate(text),
	}
	logger.Debug("source loaded", "path", path, "encoding", enc, "bytes", src.Len())
	return src, nil
}

// terminate copies text into a fresh slice with a trailing NUL.
func terminate(text []byte) []byte {
	data := make([]byte, len(text)+1)
	copy(data, text)
	return data
}

// Len returns the length of the text, excluding the terminator.
func (s *Source) Len() int {
	return len(s.Data) - 1
}

// Text returns the source text without the terminator.
func (s *Source) Text() []byte {
	return s.Data[:s.Len()]
}

// LineBounds returns the byte range [start, end) of the line containing
// offset, found by walking back to the previous line break and forward to
// the next one. The line break itself is excluded.
func (s *Source) LineBounds(offset int) (start, end int) {
	text := s.Text()
	offset = min(max(offset, 0), len(text))

	start = offset
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end = offset
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return start, end
}

// Line returns the text of the line containing offset, without the line
// break or a trailing carriage return.
func (s *Source) Line(offset int) []byte {
	start, end := s.LineBounds(offset)
	line := s.Data[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// Position converts a byte offset to a line and column.
func (s *Source) Position(offset int) Position {
	text := s.Text()
	offset = min(max(offset, 0), len(text))

	line := 1
	for _, b := range text[:offset] {
		if b == '\n' {
			line++
		}
	}
	start, _ := s.LineBounds(offset)
	return Position{Line: line, Column: Columns(text[start:offset]) + 1}
}

// Columns counts the display columns of b: one per decoded code point, one
// per undecodable byte.
func Columns(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		_, size := codepoint.Decode(b[i:])
		if size == 0 {
			size = 1
		}
		i += size
		n++
	}
	return n
}
