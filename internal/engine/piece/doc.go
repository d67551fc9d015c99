// Package piece defines the piece descriptor used by the document's piece chain.
//
// A Piece names a contiguous half-open range [start, end) inside one of the
// document's two backing stores, or stands for a single synthetic line break.
// Pieces own no character data; they are coordinates interpreted by the
// document that created them.
//
// Kinds:
//   - Original: a range into the immutable original store
//   - Plain: a range into the append-only added store
//   - LineBreak: no range, always exactly one character long
//
// Basic usage:
//
//	p := piece.Original(0, 5)   // "abcde"
//	rest := p.SplitAt(2)        // p = [0,2), rest = [2,5)
//	sub := rest.Slice(1, 3)     // [3,5)
//
// Range accessors (Start, End, SetStart, SetEnd, SplitAt, Slice) are only
// meaningful for range-bearing kinds. Calling them on a LineBreak is a
// programming error and panics; use Span when the kind is not known.
package piece
