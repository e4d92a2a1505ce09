package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshuapare/wika/diag"
)

var errorColor = lipgloss.Color("#FF4B4B")

// newHighlighter styles offending spans for w. The lipgloss renderer detects
// whether w is a terminal and degrades to plain text when it is not.
func newHighlighter(w io.Writer) diag.Highlighter {
	if noColor {
		return diag.NoHighlight
	}
	style := lipgloss.NewRenderer(w).NewStyle().
		Bold(true).
		Reverse(true).
		Foreground(errorColor)
	return func(span string) string {
		return style.Render(span)
	}
}
