// Package document provides a mutable text buffer built on a piece chain.
//
// The document's text is never stored contiguously. Instead an ordered chain
// of pieces references ranges inside two stores:
//
//   - the original store, filled once from the initial text and never changed
//   - the added store, which only grows; every inserted character lands here
//
// Edits split, shrink or remove pieces and never move characters, so the cost
// of an edit is proportional to the number of pieces rather than the length
// of the text. Locating a position is a linear walk over the chain; there is
// no position index.
//
// Basic usage:
//
//	doc := document.New("abcde")
//	_ = doc.InsertStringBefore("XY", 2)   // "abXYcde"
//	_ = doc.InsertLineBreakBefore(4)      // "abXY\ncde"
//	ch, _ := doc.EraseCharAt(0)           // 'a', "bXY\ncde"
//
// Positions are rune indices. Every piece contributes its CharCount to the
// position space, and a LineBreak piece counts as one character that reads
// back as LineBreakRune.
//
// Iteration:
//
// PieceIteratorBegin/PieceIteratorEnd walk the chain piece by piece and
// CharsInPiece exposes each range without copying. LineBegin yields the first
// piece of each line. Both kinds of iterator are invalidated by mutation.
//
// Errors:
//
// Out-of-range positions and lines are returned as errors wrapping
// ErrPositionOutOfRange or ErrLineOutOfRange; nothing is clamped. Misusing a
// piece (asking a LineBreak for its characters) or advancing an exhausted
// iterator panics.
//
// A Document is not safe for concurrent use.
package document
