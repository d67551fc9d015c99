package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/piecechain/internal/engine/piece"
)

// LineBreakRune is the character a LineBreak piece stands for.
const LineBreakRune = '\n'

// Document is a mutable text buffer stored as a chain of pieces over two
// backing stores: an immutable original store and an append-only added store.
//
// A Document has a single writer and no internal locking. Iterators obtained
// from a Document must not be used after the document is mutated.
type Document struct {
	original []rune
	added    []rune
	pieces   pieceList

	lineBreakPieces bool
}

// New creates a document holding text.
func New(text string, opts ...Option) *Document {
	d := &Document{pieces: newPieceList()}

	for _, opt := range opts {
		opt(d)
	}

	d.original = []rune(text)
	if d.lineBreakPieces {
		d.spliceRuns(piece.KindOriginal, d.original, 0, len(d.original), nilNode)
	} else if len(d.original) > 0 {
		d.pieces.insertBefore(nilNode, piece.Original(0, len(d.original)))
	}

	return d
}

// NewFromReader creates a document from the contents of r.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data), opts...), nil
}

// Write Operations

// InsertCharBefore inserts ch so that it ends up at position.
func (d *Document) InsertCharBefore(ch rune, position int) error {
	if ch == LineBreakRune && d.lineBreakPieces {
		return d.InsertLineBreakBefore(position)
	}

	at, err := d.boundary(position)
	if err != nil {
		return err
	}

	start := len(d.added)
	d.added = append(d.added, ch)
	d.pieces.insertBefore(at, piece.Plain(start, start+1))
	return nil
}

// InsertStringBefore inserts text so that its first character ends up at
// position. The text is appended to the added store in one contiguous run.
func (d *Document) InsertStringBefore(text string, position int) error {
	if text == "" {
		return d.checkPosition(position, d.CharCount())
	}

	at, err := d.boundary(position)
	if err != nil {
		return err
	}

	start := len(d.added)
	d.added = append(d.added, []rune(text)...)
	if d.lineBreakPieces {
		d.spliceRuns(piece.KindPlain, d.added, start, len(d.added), at)
	} else {
		d.pieces.insertBefore(at, piece.Plain(start, len(d.added)))
	}
	return nil
}

// InsertLineBreakBefore inserts a line break at position.
func (d *Document) InsertLineBreakBefore(position int) error {
	at, err := d.boundary(position)
	if err != nil {
		return err
	}

	d.pieces.insertBefore(at, piece.LineBreak())
	return nil
}

// EraseCharAt removes the character at position and returns it.
func (d *Document) EraseCharAt(position int) (rune, error) {
	if d.pieces.len == 0 {
		return 0, ErrEmptyDocument
	}
	if position < 0 {
		return 0, d.positionError(position, d.CharCount()-1)
	}

	h, offset := d.locate(position)
	if h == nilNode {
		return 0, d.positionError(position, d.CharCount()-1)
	}

	p := d.pieces.at(h)
	if p.IsLineBreak() {
		d.pieces.remove(h)
		return LineBreakRune, nil
	}

	ch := d.charInPiece(*p, offset)
	switch n := p.CharCount(); {
	case offset == 0:
		p.SetStart(p.Start() + 1)
		if p.CharCount() == 0 {
			d.pieces.remove(h)
		}
	case offset == n-1:
		p.SetEnd(p.End() - 1)
	default:
		rest := p.SplitAt(offset)
		rest.SetStart(rest.Start() + 1)
		d.pieces.insertAfter(h, rest)
	}

	return ch, nil
}

// EraseCharAtLine removes the character at offset within line and returns it.
// offset may address the line's terminating line break, which joins the line
// with the next one.
func (d *Document) EraseCharAtLine(line, offset int) (rune, error) {
	start, end, err := d.lineSpan(line)
	if err != nil {
		return 0, err
	}
	if offset < 0 || start+offset >= end {
		return 0, fmt.Errorf("%w: offset %d not in line %d of length %d",
			ErrPositionOutOfRange, offset, line, end-start)
	}
	return d.EraseCharAt(start + offset)
}

// Read Operations

// Text returns the full document content.
func (d *Document) Text() string {
	var sb strings.Builder
	sb.Grow(d.CharCount())

	for h := d.pieces.head; h != nilNode; h = d.pieces.next(h) {
		p := d.pieces.at(h)
		if p.IsLineBreak() {
			sb.WriteRune(LineBreakRune)
			continue
		}
		for _, r := range d.CharsInPiece(*p) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// CharCount returns the number of characters in the document.
func (d *Document) CharCount() int {
	n := 0
	for h := d.pieces.head; h != nilNode; h = d.pieces.next(h) {
		n += d.pieces.at(h).CharCount()
	}
	return n
}

// CharAt returns the character at position.
func (d *Document) CharAt(position int) (rune, error) {
	if position < 0 {
		return 0, d.positionError(position, d.CharCount()-1)
	}
	h, offset := d.locate(position)
	if h == nilNode {
		return 0, d.positionError(position, d.CharCount()-1)
	}
	return d.charInPiece(*d.pieces.at(h), offset), nil
}

// CharsInPiece returns the characters p denotes, without copying.
// The returned slice must not be modified. It stays valid after later edits
// because neither store is ever overwritten. Panics if p is a line break.
func (d *Document) CharsInPiece(p piece.Piece) []rune {
	start, end, ok := p.Span()
	if !ok {
		panic(fmt.Errorf("%w: CharsInPiece on %s", piece.ErrNoRange, p.Kind()))
	}
	store := d.store(p)
	return store[start:end:end]
}

// PieceCount returns the number of pieces in the chain.
func (d *Document) PieceCount() int {
	return d.pieces.len
}

// IsEmpty returns true if the document has no characters.
func (d *Document) IsEmpty() bool {
	return d.pieces.len == 0
}

// AddedLen returns the size of the added store.
func (d *Document) AddedLen() int {
	return len(d.added)
}

// LineCount returns the number of lines: one more than the number of line breaks.
func (d *Document) LineCount() int {
	n := 1
	for h := d.pieces.head; h != nilNode; h = d.pieces.next(h) {
		if d.pieces.at(h).IsLineBreak() {
			n++
		}
	}
	return n
}

// LineStart returns the position of the first character of line.
func (d *Document) LineStart(line int) (int, error) {
	start, _, err := d.lineSpan(line)
	return start, err
}

// LineText returns the text of line without its terminating line break.
func (d *Document) LineText(line int) (string, error) {
	if line < 0 {
		return "", d.lineError(line)
	}

	it := d.LineBegin()
	for i := 0; i < line; i++ {
		it.Next()
		if it.Done() {
			return "", d.lineError(line)
		}
	}

	var sb strings.Builder
	for pit := it.Piece(); !pit.AtEnd(); pit = pit.Next() {
		p := pit.Piece()
		if p.IsLineBreak() {
			break
		}
		for _, r := range d.CharsInPiece(p) {
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// internal helpers

// locate finds the piece containing position. When position is at or beyond
// the end of the document it returns nilNode and the remaining distance past
// the end (0 means position == CharCount).
func (d *Document) locate(position int) (int, int) {
	for h := d.pieces.head; h != nilNode; h = d.pieces.next(h) {
		n := d.pieces.at(h).CharCount()
		if position < n {
			return h, position
		}
		position -= n
	}
	return nilNode, position
}

// boundary returns the handle an insertion at position must precede,
// splitting the containing piece when position falls strictly inside it.
func (d *Document) boundary(position int) (int, error) {
	if position < 0 {
		return nilNode, d.positionError(position, d.CharCount())
	}

	h, offset := d.locate(position)
	if h == nilNode {
		if offset != 0 {
			return nilNode, d.positionError(position, d.CharCount())
		}
		return nilNode, nil
	}
	if offset == 0 {
		return h, nil
	}

	rest := d.pieces.at(h).SplitAt(offset)
	return d.pieces.insertAfter(h, rest), nil
}

// spliceRuns inserts store[start:end) before at, turning each newline into
// a LineBreak piece and every newline-free run into a range piece of kind.
func (d *Document) spliceRuns(kind piece.Kind, store []rune, start, end, at int) {
	runStart := start
	emit := func(s, e int) {
		if s == e {
			return
		}
		if kind == piece.KindOriginal {
			d.pieces.insertBefore(at, piece.Original(s, e))
		} else {
			d.pieces.insertBefore(at, piece.Plain(s, e))
		}
	}

	for i := start; i < end; i++ {
		if store[i] != LineBreakRune {
			continue
		}
		emit(runStart, i)
		d.pieces.insertBefore(at, piece.LineBreak())
		runStart = i + 1
	}
	emit(runStart, end)
}

// lineSpan returns the positions [start, end) of line, where end includes
// the terminating line break if there is one.
func (d *Document) lineSpan(line int) (int, int, error) {
	if line < 0 {
		return 0, 0, d.lineError(line)
	}

	pos, cur, start := 0, 0, 0
	for h := d.pieces.head; h != nilNode; h = d.pieces.next(h) {
		p := d.pieces.at(h)
		pos += p.CharCount()
		if !p.IsLineBreak() {
			continue
		}
		if cur == line {
			return start, pos, nil
		}
		cur++
		start = pos
	}

	if cur == line {
		return start, pos, nil
	}
	return 0, 0, d.lineError(line)
}

func (d *Document) store(p piece.Piece) []rune {
	if p.IsOriginal() {
		return d.original
	}
	return d.added
}

func (d *Document) charInPiece(p piece.Piece, index int) rune {
	if p.IsLineBreak() {
		return LineBreakRune
	}
	return d.store(p)[p.Start()+index]
}

func (d *Document) checkPosition(position, max int) error {
	if position < 0 || position > max {
		return d.positionError(position, max)
	}
	return nil
}

func (d *Document) positionError(position, max int) error {
	if max < 0 {
		return fmt.Errorf("%w: %d in empty document", ErrPositionOutOfRange, position)
	}
	return fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, position, max)
}

func (d *Document) lineError(line int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrLineOutOfRange, line, d.LineCount())
}
