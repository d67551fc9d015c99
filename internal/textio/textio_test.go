package textio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/piecechain/internal/engine/document"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"plain", []byte("abc"), UTF8},
		{"empty", nil, UTF8},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8BOM},
		{"utf16le", []byte{0xFF, 0xFE, 'a', 0}, UTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'a'}, UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		enc  Encoding
	}{
		{"utf8", []byte("héllo\nworld"), "héllo\nworld", UTF8},
		{"crlf", []byte("a\r\nb\rc"), "a\nb\nc", UTF8},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi"), "hi", UTF8BOM},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\r', 0, '\n', 0}, "hi\n", UTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
			if enc != tt.enc {
				t.Errorf("encoding = %v, want %v", enc, tt.enc)
			}
		})
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, _, err := Decode([]byte{'a', 0xFF, 'b'})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE} {
		t.Run(enc.String(), func(t *testing.T) {
			data, err := Encode("日本\nabc", enc)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if Detect(data) != enc {
				t.Errorf("encoded data detected as %v", Detect(data))
			}
			text, _, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if text != "日本\nabc" {
				t.Errorf("round trip gave %q", text)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	text, enc, err := Load(bytes.NewReader([]byte("x\r\ny")))
	if err != nil {
		t.Fatal(err)
	}
	if text != "x\ny" || enc != UTF8 {
		t.Errorf("Load() = %q, %v", text, enc)
	}
}

func TestOpenAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	data, _ := Encode("one\ntwo", UTF16LE)
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, enc, err := Open(src, document.WithLineBreakPieces())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if enc != UTF16LE {
		t.Errorf("encoding = %v", enc)
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LineCount())
	}

	if err := doc.InsertStringBefore("zero\n", 0); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "out.txt")
	if err := WriteFile(dst, doc, enc); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	text, enc2, err := LoadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if text != "zero\none\ntwo" || enc2 != UTF16LE {
		t.Errorf("written file = %q (%v)", text, enc2)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing file")
	}
}
