// Package lexer turns a source into tokens.
//
// The lexer pulls code points through codepoint.Decode, skips Unicode
// whitespace and produces one token per call to Next. Identifier text is
// interned into an arena: the lexer takes a checkpoint, copies the text in
// with a NUL terminator and, if the text turns out to be a keyword, rolls
// the arena back so keywords cost no storage.
//
// Lexical errors never stop the lexer. Each one is recorded in the
// diag.Collector, returned as a TypeInvalid token and skipped, so a caller
// looping until TypeEnd sees every error in the file. The only error Next
// returns is a failure to map arena memory.
package lexer

import (
	"bytes"
	"fmt"
	"iter"
	"unicode"

	"github.com/joshuapare/wika/codepoint"
	"github.com/joshuapare/wika/diag"
	"github.com/joshuapare/wika/mem"
	"github.com/joshuapare/wika/source"
)

// Options configures a Lexer.
type Options struct {
	// Diagnostics receives lexical errors. If nil the lexer creates a
	// collector without an emitter; read it back with Lexer.Diagnostics.
	Diagnostics *diag.Collector

	// Identifiers is the arena identifier text is interned into. If nil the
	// lexer maps its own arena with Arena and releases it in Close.
	Identifiers *mem.Arena

	// Arena configures the lexer-owned identifier arena.
	Arena mem.ArenaOptions
}

// Lexer is a pull-style tokenizer over one source. The cursor only moves
// forward.
type Lexer struct {
	src         *source.Source
	cursor      int
	token       Token
	identifiers *mem.Arena
	ownsArena   bool
	diags       *diag.Collector
}

// New returns a lexer positioned at the start of src.
func New(src *source.Source, opts Options) (*Lexer, error) {
	l := &Lexer{
		src:         src,
		identifiers: opts.Identifiers,
		diags:       opts.Diagnostics,
	}
	if l.diags == nil {
		l.diags = diag.NewCollector(nil)
	}
	if l.identifiers == nil {
		a, err := mem.NewArena(opts.Arena)
		if err != nil {
			return nil, fmt.Errorf("lexer: identifier arena: %w", err)
		}
		l.identifiers = a
		l.ownsArena = true
	}
	return l, nil
}

// Next scans and returns the next token. At the end of input it returns a
// TypeEnd token, and keeps returning it on later calls.
func (l *Lexer) Next() (Token, error) {
	data := l.src.Data
	end := l.src.Len()

	for l.cursor < end {
		r, n := codepoint.Decode(data[l.cursor:])
		if n == 0 || !unicode.IsSpace(r) {
			break
		}
		l.cursor += n
	}

	start := l.cursor
	if start >= end {
		l.token = Token{Type: TypeEnd, Offset: end}
		return l.token, nil
	}

	r, n := codepoint.Decode(data[start:])
	switch {
	case n == 0:
		l.token = l.invalid(start, 1, "unknown token: invalid UTF-8 byte 0x%02X", data[start])
	case isPunctuation(r):
		l.cursor += n
		l.token = Token{Type: Type(r), Offset: start, Length: n}
	case isIdentifierStart(r):
		tok, err := l.identifier(start)
		if err != nil {
			return Token{}, err
		}
		l.token = tok
	default:
		l.token = l.invalid(start, n, "unknown token %U %q", r, r)
	}
	return l.token, nil
}

// identifier scans an identifier starting at start and interns its text.
func (l *Lexer) identifier(start int) (Token, error) {
	data := l.src.Data
	for {
		r, n := codepoint.Decode(data[l.cursor:])
		if n == 0 || !isIdentifierPart(r) {
			break
		}
		l.cursor += n
	}
	length := l.cursor - start

	cp := l.identifiers.Checkpoint()
	buf, err := l.identifiers.Reserve(length+1, 1)
	if err != nil {
		return Token{}, fmt.Errorf("lexer: intern identifier at offset %d: %w", start, err)
	}
	copy(buf, data[start:l.cursor])
	buf[length] = 0
	text := buf[:length:length]

	if kw, ok := keywords[string(text)]; ok {
		l.identifiers.Rollback(cp)
		return Token{Type: kw, Offset: start, Length: length}, nil
	}
	return Token{Type: TypeIdentifier, Offset: start, Length: length, Text: text}, nil
}

// invalid records a diagnostic for [start, start+length) and skips it.
func (l *Lexer) invalid(start, length int, format string, args ...any) Token {
	l.diags.Errorf(l.src, start, length, format, args...)
	l.cursor = start + length
	return Token{Type: TypeInvalid, Offset: start, Length: length}
}

// Token returns the token produced by the last call to Next.
func (l *Lexer) Token() Token {
	return l.token
}

// Offset returns the cursor position.
func (l *Lexer) Offset() int {
	return l.cursor
}

// Source returns the source being lexed.
func (l *Lexer) Source() *source.Source {
	return l.src
}

// Diagnostics returns the collector errors are recorded in.
func (l *Lexer) Diagnostics() *diag.Collector {
	return l.diags
}

// Identifiers returns the arena identifier text is interned into.
func (l *Lexer) Identifiers() *mem.Arena {
	return l.identifiers
}

// Tokens yields every token up to and including the TypeEnd token. It stops
// early after yielding an arena error.
func (l *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if !yield(tok, err) || err != nil || tok.Type == TypeEnd {
				return
			}
		}
	}
}

// Close releases the identifier arena if the lexer created it. Token text
// from a lexer-owned arena must not be used afterwards.
func (l *Lexer) Close() error {
	if !l.ownsArena {
		return nil
	}
	l.ownsArena = false
	return l.identifiers.Close()
}

// Tokenize lexes all of src and returns its tokens, ending with TypeEnd.
// Identifier text is copied out of the arena so the result outlives the
// lexer.
func Tokenize(src *source.Source, opts Options) ([]Token, *diag.Report, error) {
	l, err := New(src, opts)
	if err != nil {
		return nil, nil, err
	}
	defer l.Close()

	var tokens []Token
	for tok, err := range l.Tokens() {
		if err != nil {
			return tokens, l.diags.Report(), err
		}
		if tok.Text != nil {
			tok.Text = bytes.Clone(tok.Text)
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.diags.Report(), nil
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
