package document

import (
	"fmt"
	"iter"

	"github.com/dshills/piecechain/internal/engine/piece"
)

// PieceIterator is a read-only cursor over a document's piece chain.
// It is invalidated by any mutation of the document.
type PieceIterator struct {
	list *pieceList
	h    int
}

// PieceIteratorBegin returns an iterator at the first piece.
// For an empty document it equals PieceIteratorEnd.
func (d *Document) PieceIteratorBegin() PieceIterator {
	return PieceIterator{list: &d.pieces, h: d.pieces.head}
}

// PieceIteratorEnd returns the iterator one past the last piece.
func (d *Document) PieceIteratorEnd() PieceIterator {
	return PieceIterator{list: &d.pieces, h: nilNode}
}

// AtEnd returns true if the iterator is past the last piece.
func (it PieceIterator) AtEnd() bool {
	return it.h == nilNode
}

// Piece returns the piece under the iterator. Panics at the end.
func (it PieceIterator) Piece() piece.Piece {
	if it.h == nilNode {
		panic(fmt.Errorf("%w: Piece at end", ErrIteratorExhausted))
	}
	return *it.list.at(it.h)
}

// Next returns an iterator at the following piece. Panics at the end.
func (it PieceIterator) Next() PieceIterator {
	if it.h == nilNode {
		panic(fmt.Errorf("%w: Next at end", ErrIteratorExhausted))
	}
	return PieceIterator{list: it.list, h: it.list.next(it.h)}
}

// Prev returns an iterator at the preceding piece. From the end iterator it
// moves to the last piece. Panics at the first piece.
func (it PieceIterator) Prev() PieceIterator {
	h := it.list.tail
	if it.h != nilNode {
		h = it.list.prev(it.h)
	}
	if h == nilNode {
		panic(fmt.Errorf("%w: Prev at begin", ErrIteratorExhausted))
	}
	return PieceIterator{list: it.list, h: h}
}

// Equal returns true if both iterators refer to the same position of the same document.
func (it PieceIterator) Equal(other PieceIterator) bool {
	return it.list == other.list && it.h == other.h
}

// Pieces returns a sequence over all pieces in order.
func (d *Document) Pieces() iter.Seq[piece.Piece] {
	return func(yield func(piece.Piece) bool) {
		for it := d.PieceIteratorBegin(); !it.AtEnd(); it = it.Next() {
			if !yield(it.Piece()) {
				return
			}
		}
	}
}

// LineIterator is a forward-only cursor that stops at the first piece of
// each line. A document with n line breaks has n+1 lines; the first piece
// of an empty last line is the end iterator.
type LineIterator struct {
	list *pieceList
	h    int
	done bool
}

// LineBegin returns an iterator at the first line.
func (d *Document) LineBegin() LineIterator {
	return LineIterator{list: &d.pieces, h: d.pieces.head}
}

// Done returns true once the iterator has moved past the last line.
func (it LineIterator) Done() bool {
	return it.done
}

// Piece returns an iterator at the first piece of the current line.
func (it LineIterator) Piece() PieceIterator {
	if it.done {
		panic(fmt.Errorf("%w: Piece after last line", ErrIteratorExhausted))
	}
	return PieceIterator{list: it.list, h: it.h}
}

// Next advances to the first piece of the next line, or marks the iterator
// done if the current line is the last one. Panics if already done.
func (it *LineIterator) Next() {
	if it.done {
		panic(fmt.Errorf("%w: Next after last line", ErrIteratorExhausted))
	}

	h := it.h
	for h != nilNode && !it.list.at(h).IsLineBreak() {
		h = it.list.next(h)
	}
	if h == nilNode {
		it.h = nilNode
		it.done = true
		return
	}
	it.h = it.list.next(h)
}

// Lines returns a sequence of (line index, first piece) pairs.
func (d *Document) Lines() iter.Seq2[int, PieceIterator] {
	return func(yield func(int, PieceIterator) bool) {
		line := 0
		for it := d.LineBegin(); !it.Done(); it.Next() {
			if !yield(line, it.Piece()) {
				return
			}
			line++
		}
	}
}
