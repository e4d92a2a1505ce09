package diag

import (
	"io"

	"github.com/joshuapare/wika/codepoint"
	"github.com/joshuapare/wika/mem"
	"github.com/joshuapare/wika/source"
)

// Highlighter decorates the offending span of a source line.
type Highlighter func(span string) string

// ANSI escapes used by ANSIHighlight.
const (
	ansiHighlight = "\x1b[1;7;31m"
	ansiReset     = "\x1b[0m"
)

// ANSIHighlight wraps span in bold red reverse-video escapes.
func ANSIHighlight(span string) string {
	return ansiHighlight + span + ansiReset
}

// NoHighlight returns span unchanged.
func NoHighlight(span string) string {
	return span
}

// RenderOptions configures a Renderer.
type RenderOptions struct {
	// Highlight decorates the offending span.
	// Default: ANSIHighlight
	Highlight Highlighter

	// Indent prefixes the quoted source line and the caret line.
	// Default: four spaces
	Indent string

	// NoSource prints only the message line.
	NoSource bool
}

// Renderer writes diagnostics in the console format.
type Renderer struct {
	w       io.Writer
	opts    RenderOptions
	scratch *mem.Buffer
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer, opts RenderOptions) *Renderer {
	if opts.Highlight == nil {
		opts.Highlight = ANSIHighlight
	}
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &Renderer{w: w, opts: opts, scratch: mem.NewBuffer(256)}
}

// Emit implements Emitter.
func (r *Renderer) Emit(src *source.Source, d Diagnostic) error {
	return r.Render(src, d)
}

// Render writes d, quoting the line of src it points into.
func (r *Renderer) Render(src *source.Source, d Diagnostic) error {
	r.scratch.Reset()
	r.appendString(d.Severity.String())
	r.appendString(": ")
	r.appendString(d.Location())
	r.appendString(": ")
	r.appendString(d.Message)
	r.appendString("\n")

	if !r.opts.NoSource && src != nil {
		r.appendSourceLines(src, d)
	}

	_, err := r.w.Write(r.scratch.Bytes())
	return err
}

// appendSourceLines quotes the line holding d with the span highlighted and
// underlines the span with carets.
func (r *Renderer) appendSourceLines(src *source.Source, d Diagnostic) {
	text := src.Text()
	start, _ := src.LineBounds(d.Offset)
	line := src.Line(d.Offset)
	lineEnd := start + len(line)

	spanStart := min(max(d.Offset, start), lineEnd)
	spanEnd := min(spanStart+max(d.Length, 0), lineEnd)

	before := text[start:spanStart]
	span := text[spanStart:spanEnd]
	after := text[spanEnd:lineEnd]

	r.appendString(r.opts.Indent)
	r.appendBytes(before)
	if len(span) > 0 {
		r.appendString(r.opts.Highlight(string(span)))
	}
	r.appendBytes(after)
	r.appendString("\n")

	r.appendString(r.opts.Indent)
	for i := 0; i < len(before); {
		_, n := codepoint.Decode(before[i:])
		if n == 0 {
			n = 1
		}
		if before[i] == '\t' {
			r.appendString("\t")
		} else {
			r.appendString(" ")
		}
		i += n
	}
	carets := max(source.Columns(span), 1)
	for range carets {
		r.appendString("^")
	}
	r.appendString("\n")
}

func (r *Renderer) appendString(s string) {
	copy(r.scratch.Reserve(len(s), 1), s)
}

func (r *Renderer) appendBytes(b []byte) {
	copy(r.scratch.Reserve(len(b), 1), b)
}
