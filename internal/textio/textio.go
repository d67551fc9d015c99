// Package textio reads and writes the plain text a document is created from.
//
// Files may be UTF-8 (with or without a byte order mark) or UTF-16 with a
// byte order mark. Decoded text always uses '\n' line endings; the detected
// encoding is reported so the text can be written back the same way.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dshills/piecechain/internal/engine/document"
)

// ErrInvalidUTF8 indicates input without a UTF-16 byte order mark that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Encoding identifies how text was stored.
type Encoding uint8

const (
	UTF8    Encoding = iota // UTF-8 without byte order mark
	UTF8BOM                 // UTF-8 with byte order mark
	UTF16LE                 // UTF-16 little endian with byte order mark
	UTF16BE                 // UTF-16 big endian with byte order mark
)

// String returns the string representation of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "unknown"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8
	}
}

// Detect returns the encoding indicated by data's byte order mark.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode converts data to a string with '\n' line endings.
func Decode(data []byte) (string, Encoding, error) {
	enc := Detect(data)

	if enc == UTF8 {
		if !utf8.Valid(data) {
			return "", enc, ErrInvalidUTF8
		}
		return NormalizeLineEndings(string(data)), enc, nil
	}

	out, _, err := transform.Bytes(enc.codec().NewDecoder(), data)
	if err != nil {
		return "", enc, fmt.Errorf("decoding %s: %w", enc, err)
	}
	return NormalizeLineEndings(string(out)), enc, nil
}

// Encode converts text to bytes in enc.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == UTF8 {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(enc.codec().NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", enc, err)
	}
	return out, nil
}

// NormalizeLineEndings converts CRLF and CR line endings to LF.
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Load reads and decodes everything from r.
func Load(r io.Reader) (string, Encoding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", UTF8, err
	}
	return Decode(data)
}

// LoadFile reads and decodes the file at path.
func LoadFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", UTF8, err
	}
	text, enc, err := Decode(data)
	if err != nil {
		return "", enc, fmt.Errorf("%s: %w", path, err)
	}
	return text, enc, nil
}

// Open creates a document from the file at path.
func Open(path string, opts ...document.Option) (*document.Document, Encoding, error) {
	text, enc, err := LoadFile(path)
	if err != nil {
		return nil, enc, err
	}
	return document.New(text, opts...), enc, nil
}

// WriteFile writes the document's text to path in enc.
func WriteFile(path string, doc *document.Document, enc Encoding) error {
	data, err := Encode(doc.Text(), enc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
