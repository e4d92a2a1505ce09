package source

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names accepted by Options.Encoding.
const (
	EncodingAuto        = ""
	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingUTF16BE     = "UTF-16BE"
	EncodingWindows1252 = "WINDOWS-1252"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Options configures Load.
type Options struct {
	// Encoding forces the input encoding. The default sniffs a byte order
	// mark and falls back to UTF-8.
	Encoding string
}

// decode converts raw file contents to UTF-8. UTF-8 input is passed through
// untouched, malformed sequences included, so the lexer can report them.
func decode(raw []byte, enc string) ([]byte, string, error) {
	enc = strings.ToUpper(strings.TrimSpace(enc))
	switch enc {
	case EncodingAuto:
		switch {
		case bytes.HasPrefix(raw, utf8BOM):
			return raw[len(utf8BOM):], EncodingUTF8, nil
		case bytes.HasPrefix(raw, utf16LEBOM):
			return transcode(raw, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), EncodingUTF16LE)
		case bytes.HasPrefix(raw, utf16BEBOM):
			return transcode(raw, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), EncodingUTF16BE)
		default:
			return raw, EncodingUTF8, nil
		}
	case EncodingUTF8, "UTF8":
		return bytes.TrimPrefix(raw, utf8BOM), EncodingUTF8, nil
	case EncodingUTF16LE:
		return transcode(raw, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), EncodingUTF16LE)
	case EncodingUTF16BE:
		return transcode(raw, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), EncodingUTF16BE)
	case EncodingWindows1252, "CP1252":
		return transcode(raw, charmap.Windows1252, EncodingWindows1252)
	default:
		return nil, "", ErrUnsupportedEncoding
	}
}

func transcode(raw []byte, e encoding.Encoding, name string) ([]byte, string, error) {
	out, _, err := transform.Bytes(e.NewDecoder(), raw)
	if err != nil {
		return nil, "", err
	}
	return out, name, nil
}
