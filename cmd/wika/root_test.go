package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLex_PrintTokens(t *testing.T) {
	resetFlags()
	printTokens = true
	path := writeSource(t, "main.wk", []byte("proc main() {}"))

	stdout, stderr, err := captureOutput(t, path)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assertLines(t, stdout,
		`1:1     proc        "proc"`,
		`1:6     identifier  "main"`,
		`1:10    '('         "("`,
		`1:11    ')'         ")"`,
		`1:13    '{'         "{"`,
		`1:14    '}'         "}"`,
		`1:15    end`,
	)
}

func TestRunLex_NoTokensByDefault(t *testing.T) {
	resetFlags()
	path := writeSource(t, "main.wk", []byte("proc main() {}\n"))

	stdout, stderr, err := captureOutput(t, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRunLex_Diagnostics(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		stderr string
	}{
		{
			name:   "rendered",
			stderr: "error: %s:1:3: unknown token U+0024 '$'\n    x $ y\n      ^\n",
		},
		{
			name:  "quiet",
			quiet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			quiet = tt.quiet
			path := writeSource(t, "bad.wk", []byte("x $ y\n"))

			_, stderr, err := captureOutput(t, path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errSourcesFailed))
			assert.Contains(t, err.Error(), "1 error(s)")

			if tt.stderr == "" {
				assert.Empty(t, stderr)
				return
			}
			assert.Equal(t, strings.ReplaceAll(tt.stderr, "%s", path), stderr)
		})
	}
}

func TestRunLex_ContinuesAfterFailures(t *testing.T) {
	resetFlags()
	printTokens = true
	bad := writeSource(t, "bad.wk", []byte("$$"))
	good := writeSource(t, "good.wk", []byte("ok"))
	missing := bad + ".missing"

	stdout, stderr, err := captureOutput(t, missing, bad, good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s), 1 source(s) unreadable")

	assert.Contains(t, stderr, "error: ")
	assert.Contains(t, stderr, missing)
	assert.Equal(t, 2, strings.Count(stderr, "unknown token U+0024"))
	assert.Contains(t, stdout, `1:1     identifier  "ok"`)
}

func TestRunLex_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	printTokens = true
	path := writeSource(t, "mixed.wk", []byte("a\n#"))

	stdout, stderr, err := captureOutput(t, path)
	require.Error(t, err)
	assert.Empty(t, stderr, "JSON mode reports diagnostics on stdout")
	assertJSON(t, stdout)

	var results []struct {
		Path     string `json:"path"`
		Encoding string `json:"encoding"`
		Tokens   []struct {
			Type   string `json:"type"`
			Line   int    `json:"line"`
			Column int    `json:"column"`
			Text   string `json:"text"`
		} `json:"tokens"`
		Report struct {
			Diagnostics []struct {
				Severity string `json:"severity"`
				Line     int    `json:"line"`
				Column   int    `json:"column"`
				Message  string `json:"message"`
			} `json:"diagnostics"`
			Summary struct {
				Errors int `json:"errors"`
			} `json:"summary"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, path, res.Path)
	assert.Equal(t, "UTF-8", res.Encoding)
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, "identifier", res.Tokens[0].Type)
	assert.Equal(t, "a", res.Tokens[0].Text)
	assert.Equal(t, "invalid", res.Tokens[1].Type)
	assert.Equal(t, 2, res.Tokens[1].Line)
	assert.Equal(t, 1, res.Tokens[1].Column)
	assert.Equal(t, "end", res.Tokens[2].Type)

	assert.Equal(t, 1, res.Report.Summary.Errors)
	require.Len(t, res.Report.Diagnostics, 1)
	assert.Equal(t, "error", res.Report.Diagnostics[0].Severity)
	assert.Equal(t, 2, res.Report.Diagnostics[0].Line)
}

func TestRunLex_Encoding(t *testing.T) {
	resetFlags()
	printTokens = true
	encoding = "windows-1252"
	// "café" in Windows-1252.
	path := writeSource(t, "legacy.wk", []byte{'c', 'a', 'f', 0xE9})

	stdout, _, err := captureOutput(t, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `1:1     identifier  "café"`)
}

func TestRunLex_SmallSegments(t *testing.T) {
	resetFlags()
	printTokens = true
	segmentSize = 1
	var text bytes.Buffer
	for range 1000 {
		text.WriteString("ident_with_a_long_name ")
	}
	path := writeSource(t, "many.wk", text.Bytes())

	stdout, _, err := captureOutput(t, path)
	require.NoError(t, err)
	assert.Equal(t, 1000, strings.Count(stdout, "identifier"))
}

func TestRootCmd_NoArgs(t *testing.T) {
	resetFlags()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--no-color"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stderr.String(), "error: no source paths")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestVersionCmd(t *testing.T) {
	resetFlags()
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "wika dev")
}

func TestNewHighlighter(t *testing.T) {
	resetFlags()
	assert.Equal(t, "$", newHighlighter(&bytes.Buffer{})("$"))

	noColor = false
	// A buffer is not a terminal, so the style degrades to plain text.
	assert.Equal(t, "$", newHighlighter(&bytes.Buffer{})("$"))
}

func TestRootCmd_PrintTokensSpellings(t *testing.T) {
	for _, flag := range []string{"--print-tokens", "--print_tokens"} {
		t.Run(flag, func(t *testing.T) {
			resetFlags()
			path := writeSource(t, "main.wk", []byte("proc"))
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)
			rootCmd.SetArgs([]string{"--no-color", flag, path})
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetErr(nil)
				rootCmd.SetArgs(nil)
			})

			require.NoError(t, rootCmd.Execute())
			assertLines(t, stdout.String(),
				`1:1     proc        "proc"`,
				`1:5     end`,
			)
		})
	}
}
