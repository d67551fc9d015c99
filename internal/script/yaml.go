package script

import (
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dshills/piecechain/internal/engine/document"
)

// Operation names.
const (
	OpInsert    = "insert"
	OpChar      = "char"
	OpLineBreak = "linebreak"
	OpErase     = "erase"
)

// Op is one edit in a YAML script.
type Op struct {
	Op     string `yaml:"op"`
	At     *int   `yaml:"at,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Char   string `yaml:"char,omitempty"`
	Line   *int   `yaml:"line,omitempty"`
	Offset *int   `yaml:"offset,omitempty"`
}

// Validate checks that op carries exactly the fields its kind needs.
func (op Op) Validate() error {
	switch op.Op {
	case OpInsert, OpLineBreak:
		if op.At == nil {
			return fmt.Errorf("%w: %s requires at", ErrInvalidOp, op.Op)
		}
	case OpChar:
		if op.At == nil {
			return fmt.Errorf("%w: char requires at", ErrInvalidOp)
		}
		if utf8.RuneCountInString(op.Char) != 1 {
			return fmt.Errorf("%w: char must be a single character, got %q", ErrInvalidOp, op.Char)
		}
	case OpErase:
		byLine := op.Line != nil || op.Offset != nil
		if byLine == (op.At != nil) {
			return fmt.Errorf("%w: erase requires either at or line and offset", ErrInvalidOp)
		}
		if byLine && (op.Line == nil || op.Offset == nil) {
			return fmt.Errorf("%w: erase by line requires both line and offset", ErrInvalidOp)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidOp, op.Op)
	}
	return nil
}

// Result collects what a script did.
type Result struct {
	// Applied is the number of operations applied.
	Applied int
	// Erased holds every erased character in order.
	Erased []rune
}

// ParseYAML reads a YAML script and validates every operation.
func ParseYAML(r io.Reader) ([]Op, error) {
	var ops []Op
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&ops); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, &OpError{Index: i, Op: op.Op, Err: err}
		}
	}
	return ops, nil
}

// Apply runs ops against doc in order and stops at the first failure.
// Operations before the failing one stay applied.
func Apply(doc *document.Document, ops []Op) (Result, error) {
	var res Result

	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return res, &OpError{Index: i, Op: op.Op, Err: err}
		}
		if err := applyOp(doc, op, &res); err != nil {
			return res, &OpError{Index: i, Op: op.Op, Err: err}
		}
		res.Applied++
	}
	return res, nil
}

func applyOp(doc *document.Document, op Op, res *Result) error {
	switch op.Op {
	case OpInsert:
		return doc.InsertStringBefore(op.Text, *op.At)
	case OpChar:
		ch, _ := utf8.DecodeRuneInString(op.Char)
		return doc.InsertCharBefore(ch, *op.At)
	case OpLineBreak:
		return doc.InsertLineBreakBefore(*op.At)
	case OpErase:
		var (
			ch  rune
			err error
		)
		if op.At != nil {
			ch, err = doc.EraseCharAt(*op.At)
		} else {
			ch, err = doc.EraseCharAtLine(*op.Line, *op.Offset)
		}
		if err != nil {
			return err
		}
		res.Erased = append(res.Erased, ch)
	}
	return nil
}
