package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSource writes text to a file in a fresh temporary directory and
// returns its path.
func writeSource(t *testing.T, name string, text []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, text, 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	noColor = true
	printTokens = false
	encoding = ""
	segmentSize = 0
}

// captureOutput runs runLex on paths and returns what it wrote to stdout
// and stderr.
func captureOutput(t *testing.T, paths ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runLex(paths, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}

// assertLines checks that output consists of exactly the given lines
func assertLines(t *testing.T, output string, want ...string) {
	t.Helper()
	got := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d\nOutput:\n%s", len(got), len(want), output)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}
