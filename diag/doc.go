// Package diag collects and renders lexical diagnostics.
//
// A Collector is owned by the caller and passed to the lexer; every problem
// found in a source is recorded in its Report instead of a process-wide
// counter, so "did this file have errors" is a local question:
//
//	c := diag.NewCollector(diag.NewRenderer(os.Stderr, diag.RenderOptions{}))
//	lx, err := lexer.New(src, lexer.Options{Diagnostics: c})
//	// ... lex to the end
//	if c.Report().HasErrors() {
//	    // skip later phases, exit non-zero
//	}
//
// Recording does not stop lexing: the lexer resynchronizes and keeps going
// so one pass surfaces every error in the file.
//
// # Console format
//
// The Renderer prints each diagnostic as
//
//	error: path:line:column: message
//	    the offending source line, with the span highlighted
//	                             ^^^^
//
// The caret line reproduces tabs from the source so carets stay aligned.
package diag
