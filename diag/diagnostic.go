package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshuapare/wika/internal/logger"
	"github.com/joshuapare/wika/source"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SevWarning Severity = iota // Suspicious but accepted input
	SevError                   // Input the lexer could not classify
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one problem found at a byte range of a source.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Offset   int      `json:"offset"`
	Length   int      `json:"length"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
}

// Location renders path:line:column.
func (d Diagnostic) Location() string {
	if d.Path == "" {
		return fmt.Sprintf("%d:%d", d.Line, d.Column)
	}
	return fmt.Sprintf("%s:%d:%d", d.Path, d.Line, d.Column)
}

// Summary counts diagnostics by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the set of diagnostics recorded for one pass.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     Summary      `json:"summary"`
}

// Add appends d and updates the summary.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	switch d.Severity {
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	}
}

// HasErrors reports whether any error was recorded.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// FormatJSON returns the report as indented JSON.
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatTextCompact returns one line per diagnostic.
func (r *Report) FormatTextCompact() string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "%s: %s: %s\n", d.Location(), d.Severity, d.Message)
	}
	return b.String()
}

// Emitter receives each diagnostic as soon as it is recorded.
type Emitter interface {
	Emit(src *source.Source, d Diagnostic) error
}

// Collector accumulates diagnostics and forwards them to an optional
// Emitter. A nil *Collector discards everything.
type Collector struct {
	report  Report
	emitter Emitter
}

// NewCollector creates a collector. e may be nil.
func NewCollector(e Emitter) *Collector {
	return &Collector{emitter: e}
}

// Add records a diagnostic for the byte range [offset, offset+length) of src.
func (c *Collector) Add(src *source.Source, sev Severity, offset, length int, format string, args ...any) {
	if c == nil {
		return
	}
	pos := src.Position(offset)
	d := Diagnostic{
		Severity: sev,
		Path:     src.Path,
		Offset:   offset,
		Length:   length,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  fmt.Sprintf(format, args...),
	}
	c.report.Add(d)

	if c.emitter != nil {
		if err := c.emitter.Emit(src, d); err != nil {
			logger.Warn("diagnostic emit failed", "path", src.Path, "err", err)
		}
	}
}

// Errorf records an error.
func (c *Collector) Errorf(src *source.Source, offset, length int, format string, args ...any) {
	c.Add(src, SevError, offset, length, format, args...)
}

// Errors returns the number of errors recorded so far.
func (c *Collector) Errors() int {
	if c == nil {
		return 0
	}
	return c.report.Summary.Errors
}

// Report returns the accumulated report.
func (c *Collector) Report() *Report {
	if c == nil {
		return &Report{}
	}
	return &c.report
}
