package piece

import (
	"errors"
	"fmt"
)

// Contract violations reported through panics.
var (
	// ErrNoRange indicates a range accessor was used on a LineBreak piece.
	ErrNoRange = errors.New("piece has no range")

	// ErrIndexOutOfRange indicates a split or slice index outside the piece.
	ErrIndexOutOfRange = errors.New("piece index out of range")

	// ErrInvalidRange indicates start > end or a negative start.
	ErrInvalidRange = errors.New("invalid piece range")
)

// Kind identifies which store a piece refers to.
type Kind uint8

const (
	KindOriginal  Kind = iota // range into the original store
	KindPlain                 // range into the added store
	KindLineBreak             // synthetic line terminator
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOriginal:
		return "original"
	case KindPlain:
		return "plain"
	case KindLineBreak:
		return "line_break"
	default:
		return "unknown"
	}
}

// Piece is a descriptor of a contiguous character range or a line break.
// Pieces are plain values and are compared with ==.
type Piece struct {
	kind  Kind
	start int
	end   int
}

// Original returns a piece covering [start, end) of the original store.
func Original(start, end int) Piece {
	checkRange(start, end)
	return Piece{kind: KindOriginal, start: start, end: end}
}

// Plain returns a piece covering [start, end) of the added store.
func Plain(start, end int) Piece {
	checkRange(start, end)
	return Piece{kind: KindPlain, start: start, end: end}
}

// LineBreak returns a line-break piece.
func LineBreak() Piece {
	return Piece{kind: KindLineBreak}
}

func checkRange(start, end int) {
	if start < 0 || start > end {
		panic(fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end))
	}
}

// Kind returns the piece kind.
func (p Piece) Kind() Kind {
	return p.kind
}

// IsOriginal reports whether p refers to the original store.
func (p Piece) IsOriginal() bool {
	return p.kind == KindOriginal
}

// IsPlain reports whether p refers to the added store.
func (p Piece) IsPlain() bool {
	return p.kind == KindPlain
}

// IsLineBreak reports whether p is a line break.
func (p Piece) IsLineBreak() bool {
	return p.kind == KindLineBreak
}

// HasRange reports whether p carries a store range.
func (p Piece) HasRange() bool {
	return p.kind == KindOriginal || p.kind == KindPlain
}

// CharCount returns the number of characters the piece contributes to the document.
func (p Piece) CharCount() int {
	if p.kind == KindLineBreak {
		return 1
	}
	return p.end - p.start
}

// Span returns the store range of p. ok is false for line breaks.
func (p Piece) Span() (start, end int, ok bool) {
	if !p.HasRange() {
		return 0, 0, false
	}
	return p.start, p.end, true
}

// Start returns the first store index covered by p.
func (p Piece) Start() int {
	p.mustHaveRange("Start")
	return p.start
}

// End returns the store index one past the last character covered by p.
func (p Piece) End() int {
	p.mustHaveRange("End")
	return p.end
}

// SetStart moves the start of the range. value must not exceed End.
func (p *Piece) SetStart(value int) {
	p.mustHaveRange("SetStart")
	checkRange(value, p.end)
	p.start = value
}

// SetEnd moves the end of the range. value must not precede Start.
func (p *Piece) SetEnd(value int) {
	p.mustHaveRange("SetEnd")
	checkRange(p.start, value)
	p.end = value
}

// SplitAt shrinks p to its first index characters and returns a piece of the
// same kind covering the remainder. index must satisfy 0 < index < CharCount.
func (p *Piece) SplitAt(index int) Piece {
	p.mustHaveRange("SplitAt")
	if index <= 0 || index >= p.end-p.start {
		panic(fmt.Errorf("%w: split at %d of %d", ErrIndexOutOfRange, index, p.end-p.start))
	}

	rest := Piece{kind: p.kind, start: p.start + index, end: p.end}
	p.end = rest.start
	return rest
}

// Slice returns a piece of the same kind covering [start, end) relative to
// the start of p. p itself is not modified.
func (p Piece) Slice(start, end int) Piece {
	p.mustHaveRange("Slice")
	if start < 0 || start > end || end > p.end-p.start {
		panic(fmt.Errorf("%w: slice [%d, %d) of %d", ErrIndexOutOfRange, start, end, p.end-p.start))
	}
	return Piece{kind: p.kind, start: p.start + start, end: p.start + end}
}

// String returns a human-readable representation of the piece.
func (p Piece) String() string {
	if p.kind == KindLineBreak {
		return "line_break"
	}
	return fmt.Sprintf("%s[%d,%d)", p.kind, p.start, p.end)
}

func (p Piece) mustHaveRange(op string) {
	if !p.HasRange() {
		panic(fmt.Errorf("%w: %s on %s", ErrNoRange, op, p.kind))
	}
}
