package diag

import (
	"bytes"
	"testing"

	"github.com/joshuapare/wika/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brackets(span string) string { return "[" + span + "]" }

func render(t *testing.T, src *source.Source, offset, length int, opts RenderOptions) string {
	t.Helper()
	var out bytes.Buffer
	c := NewCollector(NewRenderer(&out, opts))
	c.Errorf(src, offset, length, "unknown token")
	return out.String()
}

func TestRender_SingleByte(t *testing.T) {
	src := source.New("t.wk", []byte("proc $x\nnext"))
	got := render(t, src, 5, 1, RenderOptions{Highlight: brackets})
	want := "error: t.wk:1:6: unknown token\n" +
		"    proc [$]x\n" +
		"         ^\n"
	assert.Equal(t, want, got)
}

func TestRender_MultiByteSpanAndTabs(t *testing.T) {
	src := source.New("t.wk", []byte("a\n\tgrüße €€ b\r\n"))
	// "€€" starts at byte 11 and is 6 bytes long.
	got := render(t, src, 11, 6, RenderOptions{Highlight: brackets, Indent: "> "})
	want := "error: t.wk:2:8: unknown token\n" +
		"> \tgrüße [€€] b\n" +
		"> \t      ^^\n"
	assert.Equal(t, want, got)
}

func TestRender_SpanClippedToLine(t *testing.T) {
	src := source.New("t.wk", []byte("ab\ncd"))
	got := render(t, src, 1, 10, RenderOptions{Highlight: brackets})
	assert.Equal(t, "error: t.wk:1:2: unknown token\n    a[b]\n     ^\n", got)
}

func TestRender_EndOfInput(t *testing.T) {
	src := source.New("t.wk", []byte("ab"))
	got := render(t, src, 2, 1, RenderOptions{Highlight: brackets})
	assert.Equal(t, "error: t.wk:1:3: unknown token\n    ab\n      ^\n", got)
}

func TestRender_DefaultANSI(t *testing.T) {
	src := source.New("t.wk", []byte("\x80"))
	got := render(t, src, 0, 1, RenderOptions{})
	require.Contains(t, got, "\x1b[1;7;31m\x80\x1b[0m")
	assert.Contains(t, got, "\n    ^\n")
}

func TestRender_NoSource(t *testing.T) {
	src := source.New("t.wk", []byte("$"))
	got := render(t, src, 0, 1, RenderOptions{NoSource: true})
	assert.Equal(t, "error: t.wk:1:1: unknown token\n", got)
}

func TestRenderer_ReusesScratch(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, RenderOptions{Highlight: NoHighlight})
	src := source.New("t.wk", []byte("x $ y"))
	d := Diagnostic{Severity: SevError, Path: "t.wk", Offset: 2, Length: 1, Line: 1, Column: 3, Message: "m"}
	require.NoError(t, r.Render(src, d))
	require.NoError(t, r.Render(src, d))
	block := "error: t.wk:1:3: m\n    x $ y\n      ^\n"
	assert.Equal(t, block+block, out.String())
}
