package view

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/engine/piece"
)

// Cell is one drawn glyph of a laid out line.
type Cell struct {
	// Rune is the base rune drawn.
	Rune rune
	// Combining holds zero-width runes drawn on top of Rune.
	Combining []rune
	// Width is the number of screen columns the glyph covers.
	Width int
	// Kind is the kind of piece the glyph came from.
	Kind piece.Kind
	// Piece is the 0-based ordinal of that piece in the chain.
	Piece int
	// Marker is set for the line-break marker.
	Marker bool
}

// Line is one document line laid out for display.
type Line struct {
	// Start is the document position of the line's first character.
	Start int
	// Len is the number of characters on the line, excluding its line break.
	Len int
	// Break reports whether the line ends with a line break.
	Break bool
	// Cells are the glyphs to draw, left to right.
	Cells []Cell
	// Cols maps a character offset to its screen column. Cols[Len] is the
	// column just past the last character.
	Cols []int
}

// Layout lays out every line of doc. Tabs expand to the next multiple of
// tabWidth. When marker is non-zero it is drawn in place of each line break.
func Layout(doc *document.Document, tabWidth int, marker rune) []Line {
	if tabWidth < 1 {
		tabWidth = 1
	}

	var (
		lines   []Line
		pos     int
		ordinal int
	)

	for it := doc.LineBegin(); !it.Done(); it.Next() {
		line := Line{Start: pos}
		col := 0

		for pit := it.Piece(); !pit.AtEnd(); pit = pit.Next() {
			p := pit.Piece()

			if p.IsLineBreak() {
				line.Break = true
				if marker != 0 {
					line.Cells = append(line.Cells, Cell{Rune: marker, Width: 1, Kind: p.Kind(), Piece: ordinal, Marker: true})
				}
				ordinal++
				pos++
				break
			}

			for _, r := range doc.CharsInPiece(p) {
				line.Cols = append(line.Cols, col)
				col = appendRune(&line, r, col, tabWidth, p.Kind(), ordinal)
				line.Len++
				pos++
			}
			ordinal++
		}

		line.Cols = append(line.Cols, col)
		lines = append(lines, line)
	}

	return lines
}

// appendRune adds the glyphs for r at column col and returns the next column.
func appendRune(line *Line, r rune, col, tabWidth int, kind piece.Kind, ordinal int) int {
	switch {
	case r == '\t':
		n := tabWidth - col%tabWidth
		for i := 0; i < n; i++ {
			line.Cells = append(line.Cells, Cell{Rune: ' ', Width: 1, Kind: kind, Piece: ordinal})
		}
		return col + n

	case r < 0x20:
		// Control characters, including '\n' held in text pieces, are shown
		// as their control picture.
		line.Cells = append(line.Cells, Cell{Rune: 0x2400 + r, Width: 1, Kind: kind, Piece: ordinal})
		return col + 1

	case r == 0x7f:
		line.Cells = append(line.Cells, Cell{Rune: 0x2421, Width: 1, Kind: kind, Piece: ordinal})
		return col + 1
	}

	w := uniseg.StringWidth(string(r))
	if w == 0 {
		if n := len(line.Cells); n > 0 && !line.Cells[n-1].Marker {
			line.Cells[n-1].Combining = append(line.Cells[n-1].Combining, r)
			return col
		}
		line.Cells = append(line.Cells, Cell{Rune: ' ', Combining: []rune{r}, Width: 1, Kind: kind, Piece: ordinal})
		return col + 1
	}

	line.Cells = append(line.Cells, Cell{Rune: r, Width: w, Kind: kind, Piece: ordinal})
	return col + w
}

// locate returns the line index and character offset of position pos.
// A position at the end of a line belongs to that line, not the next.
func locate(lines []Line, pos int) (int, int) {
	for i := range lines {
		end := lines[i].Start + lines[i].Len
		if pos <= end || i == len(lines)-1 {
			off := pos - lines[i].Start
			if off < 0 {
				off = 0
			}
			if off > lines[i].Len {
				off = lines[i].Len
			}
			return i, off
		}
	}
	return 0, 0
}
