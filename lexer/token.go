package lexer

import (
	"fmt"

	"github.com/joshuapare/wika/source"
)

// Type tags a token. Punctuation types are the code point of the character.
type Type int

const (
	// TypeEnd marks the end of input. It is never produced for an error.
	TypeEnd Type = iota
	// TypeIdentifier is a run of letters, digits and underscores starting
	// with a letter or underscore.
	TypeIdentifier
	// TypeProc is the keyword "proc".
	TypeProc
	// TypeInvalid is input the lexer could not classify. A diagnostic has
	// been recorded for it and lexing can continue.
	TypeInvalid

	TypeColon            Type = ':'
	TypeSemicolon        Type = ';'
	TypeLeftParenthesis  Type = '('
	TypeRightParenthesis Type = ')'
	TypeLeftBrace        Type = '{'
	TypeRightBrace       Type = '}'
)

// keywords maps reserved words to their token types.
var keywords = map[string]Type{
	"proc": TypeProc,
}

// IsKeyword reports whether text is a reserved word.
func IsKeyword(text []byte) bool {
	_, ok := keywords[string(text)]
	return ok
}

func (t Type) String() string {
	switch t {
	case TypeEnd:
		return "end"
	case TypeIdentifier:
		return "identifier"
	case TypeProc:
		return "proc"
	case TypeInvalid:
		return "invalid"
	case TypeColon, TypeSemicolon, TypeLeftParenthesis, TypeRightParenthesis,
		TypeLeftBrace, TypeRightBrace:
		return fmt.Sprintf("'%c'", rune(t))
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// isPunctuation reports whether r is a single-character token.
func isPunctuation(r rune) bool {
	switch Type(r) {
	case TypeColon, TypeSemicolon, TypeLeftParenthesis, TypeRightParenthesis,
		TypeLeftBrace, TypeRightBrace:
		return true
	}
	return false
}

// Token is one lexical unit. Text is set only for identifiers; it points
// into the lexer's identifier arena and is followed there by a NUL byte.
type Token struct {
	Type   Type
	Offset int
	Length int
	Text   []byte
}

// Lexeme returns the bytes of src the token covers.
func (t Token) Lexeme(src *source.Source) []byte {
	return src.Data[t.Offset : t.Offset+t.Length]
}

// Format renders the token for debug listings, e.g.
//
//	1:6     identifier  "main"
func (t Token) Format(src *source.Source) string {
	pos := src.Position(t.Offset)
	switch t.Type {
	case TypeEnd:
		return fmt.Sprintf("%-7s %s", pos, t.Type)
	case TypeIdentifier:
		return fmt.Sprintf("%-7s %-11s %q", pos, t.Type, t.Text)
	default:
		return fmt.Sprintf("%-7s %-11s %q", pos, t.Type, t.Lexeme(src))
	}
}
