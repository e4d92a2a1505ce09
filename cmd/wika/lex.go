package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/wika/diag"
	"github.com/joshuapare/wika/internal/logger"
	"github.com/joshuapare/wika/lexer"
	"github.com/joshuapare/wika/mem"
	"github.com/joshuapare/wika/source"
)

// errSourcesFailed is returned when at least one source failed to load or
// had lexical errors. The details have already been printed.
var errSourcesFailed = errors.New("compilation failed")

// sourceResult is the JSON form of one lexed source.
type sourceResult struct {
	Path     string       `json:"path"`
	Encoding string       `json:"encoding,omitempty"`
	Error    string       `json:"error,omitempty"`
	Tokens   []tokenJSON  `json:"tokens,omitempty"`
	Report   *diag.Report `json:"report,omitempty"`
}

type tokenJSON struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text,omitempty"`
}

// runLex tokenizes every path in order, one identifier arena per source.
// Errors are accumulated: a bad source does not stop the later ones.
func runLex(paths []string, stdout, stderr io.Writer) error {
	failed := 0
	errorCount := 0
	var results []sourceResult

	for _, path := range paths {
		res, errs, err := lexSource(path, stdout, stderr)
		if err != nil {
			failed++
			if jsonOut {
				res.Error = err.Error()
			} else {
				printError(stderr, "%v\n", err)
			}
		}
		errorCount += errs
		if jsonOut {
			results = append(results, res)
		}
	}

	if jsonOut {
		if err := printJSON(stdout, results); err != nil {
			return err
		}
	}

	printVerbose(stderr, "%d source(s), %d error(s)\n", len(paths), errorCount)
	if failed > 0 || errorCount > 0 {
		return fmt.Errorf("%w: %d error(s), %d source(s) unreadable", errSourcesFailed, errorCount, failed)
	}
	return nil
}

// lexSource loads and tokenizes one path. It returns the number of lexical
// errors; the error result is reserved for load and allocation failures.
func lexSource(path string, stdout, stderr io.Writer) (sourceResult, int, error) {
	res := sourceResult{Path: path}

	src, err := source.Load(path, source.Options{Encoding: encoding})
	if err != nil {
		return res, 0, err
	}
	res.Encoding = src.Encoding

	var emitter diag.Emitter
	if !jsonOut && !quiet {
		emitter = diag.NewRenderer(stderr, diag.RenderOptions{Highlight: newHighlighter(stderr)})
	}
	collector := diag.NewCollector(emitter)

	lx, err := lexer.New(src, lexer.Options{
		Diagnostics: collector,
		Arena:       mem.ArenaOptions{SegmentSize: segmentSize},
	})
	if err != nil {
		return res, 0, err
	}
	defer func() { _ = lx.Close() }()

	count := 0
	for tok, err := range lx.Tokens() {
		if err != nil {
			return res, collector.Errors(), fmt.Errorf("%s: %w", path, err)
		}
		count++
		if !printTokens {
			continue
		}
		if jsonOut {
			res.Tokens = append(res.Tokens, toJSON(src, tok))
		} else {
			fmt.Fprintln(stdout, tok.Format(src))
		}
	}

	st := lx.Identifiers().Stats()
	logger.Debug("source lexed",
		"path", path,
		"tokens", count,
		"errors", collector.Errors(),
		"arena_segments", st.Segments,
		"arena_used", st.Used,
	)

	res.Report = collector.Report()
	return res, collector.Errors(), nil
}

func toJSON(src *source.Source, tok lexer.Token) tokenJSON {
	pos := src.Position(tok.Offset)
	return tokenJSON{
		Type:   tok.Type.String(),
		Offset: tok.Offset,
		Length: tok.Length,
		Line:   pos.Line,
		Column: pos.Column,
		Text:   string(tok.Text),
	}
}
