// Package dump renders a document's piece chain as JSON and reads such dumps back.
//
// A dump looks like:
//
//	{
//	  "char_count": 6,
//	  "line_count": 2,
//	  "added_len": 2,
//	  "pieces": [
//	    {"kind": "original", "start": 0, "end": 3, "text": "abc"},
//	    {"kind": "line_break"},
//	    {"kind": "plain", "start": 0, "end": 2, "text": "de"}
//	  ]
//	}
//
// Dumps are a debugging aid; they are not a storage format and cannot be
// turned back into a document.
package dump

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/engine/piece"
)

// ErrInvalidDump indicates input that is not a piece chain dump.
var ErrInvalidDump = errors.New("invalid dump")

// JSON renders doc's piece chain.
func JSON(doc *document.Document) (string, error) {
	js := "{}"
	var err error

	header := []struct {
		path  string
		value int
	}{
		{"char_count", doc.CharCount()},
		{"line_count", doc.LineCount()},
		{"added_len", doc.AddedLen()},
	}
	for _, h := range header {
		if js, err = sjson.Set(js, h.path, h.value); err != nil {
			return "", fmt.Errorf("setting %s: %w", h.path, err)
		}
	}

	if js, err = sjson.SetRaw(js, "pieces", "[]"); err != nil {
		return "", err
	}

	for p := range doc.Pieces() {
		obj, err := pieceJSON(doc, p)
		if err != nil {
			return "", err
		}
		if js, err = sjson.SetRaw(js, "pieces.-1", obj); err != nil {
			return "", fmt.Errorf("appending %s: %w", p, err)
		}
	}

	return js, nil
}

func pieceJSON(doc *document.Document, p piece.Piece) (string, error) {
	obj, err := sjson.Set("{}", "kind", p.Kind().String())
	if err != nil {
		return "", err
	}

	start, end, ok := p.Span()
	if !ok {
		return obj, nil
	}

	fields := []struct {
		path  string
		value any
	}{
		{"start", start},
		{"end", end},
		{"text", string(doc.CharsInPiece(p))},
	}
	for _, f := range fields {
		if obj, err = sjson.Set(obj, f.path, f.value); err != nil {
			return "", fmt.Errorf("setting %s of %s: %w", f.path, p, err)
		}
	}
	return obj, nil
}

// Stats summarises a dump.
type Stats struct {
	CharCount  int
	LineCount  int
	AddedLen   int
	Pieces     int
	Original   int
	Plain      int
	LineBreaks int
}

// Summarize reads a dump produced by JSON.
func Summarize(js string) (Stats, error) {
	if !gjson.Valid(js) {
		return Stats{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDump)
	}

	root := gjson.Parse(js)
	pieces := root.Get("pieces")
	if !pieces.IsArray() {
		return Stats{}, fmt.Errorf("%w: missing pieces array", ErrInvalidDump)
	}

	s := Stats{
		CharCount: int(root.Get("char_count").Int()),
		LineCount: int(root.Get("line_count").Int()),
		AddedLen:  int(root.Get("added_len").Int()),
		Pieces:    int(root.Get("pieces.#").Int()),
	}

	var bad string
	pieces.ForEach(func(_, v gjson.Result) bool {
		switch kind := v.Get("kind").String(); kind {
		case piece.KindOriginal.String():
			s.Original++
		case piece.KindPlain.String():
			s.Plain++
		case piece.KindLineBreak.String():
			s.LineBreaks++
		default:
			bad = kind
			return false
		}
		return true
	})
	if bad != "" {
		return Stats{}, fmt.Errorf("%w: unknown piece kind %q", ErrInvalidDump, bad)
	}

	return s, nil
}

// StatsOf summarises doc directly.
func StatsOf(doc *document.Document) Stats {
	s := Stats{
		CharCount: doc.CharCount(),
		LineCount: doc.LineCount(),
		AddedLen:  doc.AddedLen(),
		Pieces:    doc.PieceCount(),
	}
	for p := range doc.Pieces() {
		switch p.Kind() {
		case piece.KindOriginal:
			s.Original++
		case piece.KindPlain:
			s.Plain++
		case piece.KindLineBreak:
			s.LineBreaks++
		}
	}
	return s
}
