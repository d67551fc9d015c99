package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/piecechain/internal/engine/document"
)

func intp(v int) *int { return &v }

func TestParseYAML(t *testing.T) {
	src := `
- op: insert
  at: 0
  text: "hello "
- op: char
  at: 6
  char: "!"
- op: linebreak
  at: 7
- op: erase
  at: 0
- op: erase
  line: 1
  offset: 0
`
	ops, err := ParseYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(ops) != 5 {
		t.Fatalf("expected 5 ops, got %d", len(ops))
	}
	if ops[0].Op != OpInsert || *ops[0].At != 0 || ops[0].Text != "hello " {
		t.Errorf("op 0 = %+v", ops[0])
	}
	if ops[4].Line == nil || *ops[4].Line != 1 || ops[4].Offset == nil || *ops[4].Offset != 0 {
		t.Errorf("op 4 = %+v", ops[4])
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	ops, err := ParseYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("expected no ops, got %d", len(ops))
	}
}

func TestParseYAMLUnknownField(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("- op: insert\n  at: 0\n  txt: a\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseYAMLInvalidOp(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("- op: insert\n  at: 0\n- op: jump\n"))

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OpError, got %v", err)
	}
	if opErr.Index != 1 || opErr.Op != "jump" {
		t.Errorf("OpError = %+v", opErr)
	}
	if !errors.Is(err, ErrInvalidOp) {
		t.Errorf("expected ErrInvalidOp, got %v", err)
	}
}

func TestOpValidate(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		wantErr bool
	}{
		{"insert", Op{Op: OpInsert, At: intp(0), Text: "x"}, false},
		{"insert empty text", Op{Op: OpInsert, At: intp(0)}, false},
		{"insert missing at", Op{Op: OpInsert, Text: "x"}, true},
		{"char", Op{Op: OpChar, At: intp(1), Char: "é"}, false},
		{"char too long", Op{Op: OpChar, At: intp(1), Char: "ab"}, true},
		{"char empty", Op{Op: OpChar, At: intp(1)}, true},
		{"linebreak", Op{Op: OpLineBreak, At: intp(2)}, false},
		{"linebreak missing at", Op{Op: OpLineBreak}, true},
		{"erase at", Op{Op: OpErase, At: intp(0)}, false},
		{"erase line", Op{Op: OpErase, Line: intp(0), Offset: intp(1)}, false},
		{"erase both", Op{Op: OpErase, At: intp(0), Line: intp(0), Offset: intp(0)}, true},
		{"erase neither", Op{Op: OpErase}, true},
		{"erase line only", Op{Op: OpErase, Line: intp(0)}, true},
		{"unknown", Op{Op: "move"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOp) {
				t.Errorf("expected ErrInvalidOp, got %v", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	doc := document.New("world")
	ops := []Op{
		{Op: OpInsert, At: intp(0), Text: "hello "},
		{Op: OpChar, At: intp(11), Char: "!"},
		{Op: OpLineBreak, At: intp(5)},
		{Op: OpErase, At: intp(6)},
		{Op: OpErase, Line: intp(1), Offset: intp(0)},
	}

	res, err := Apply(doc, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Applied != 5 {
		t.Errorf("Applied = %d, want 5", res.Applied)
	}
	if string(res.Erased) != " w" {
		t.Errorf("Erased = %q, want %q", string(res.Erased), " w")
	}
	if got := doc.Text(); got != "hello\norld!" {
		t.Errorf("Text() = %q", got)
	}
}

func TestApplyStopsAtFailure(t *testing.T) {
	doc := document.New("abc")
	ops := []Op{
		{Op: OpChar, At: intp(0), Char: "x"},
		{Op: OpErase, At: intp(10)},
		{Op: OpChar, At: intp(0), Char: "y"},
	}

	res, err := Apply(doc, ops)
	if !errors.Is(err, document.ErrPositionOutOfRange) {
		t.Fatalf("expected ErrPositionOutOfRange, got %v", err)
	}

	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Index != 1 {
		t.Errorf("expected failure at op 1, got %v", err)
	}
	if res.Applied != 1 {
		t.Errorf("Applied = %d, want 1", res.Applied)
	}
	if doc.Text() != "xabc" {
		t.Errorf("earlier ops should stay applied, Text() = %q", doc.Text())
	}
}
