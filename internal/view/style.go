package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/piecechain/internal/config"
	"github.com/dshills/piecechain/internal/engine/piece"
)

// pieceShade is how far every other piece is blended toward black so that
// neighbouring pieces of the same kind stay distinguishable.
const pieceShade = 0.3

// palette holds the styles used to draw a document.
type palette struct {
	original [2]tcell.Style
	plain    [2]tcell.Style
	marker   tcell.Style
	status   tcell.Style
}

func newPalette(cfg config.ViewConfig) (palette, error) {
	orig, err := colorful.Hex(cfg.OriginalColor)
	if err != nil {
		return palette{}, fmt.Errorf("original color: %w", err)
	}
	plain, err := colorful.Hex(cfg.PlainColor)
	if err != nil {
		return palette{}, fmt.Errorf("plain color: %w", err)
	}

	return palette{
		original: shades(orig),
		plain:    shades(plain),
		marker:   tcell.StyleDefault.Dim(true),
		status:   tcell.StyleDefault.Reverse(true),
	}, nil
}

// shades returns c and a darker variant of it as foreground styles.
func shades(c colorful.Color) [2]tcell.Style {
	black := colorful.Color{}
	return [2]tcell.Style{
		tcell.StyleDefault.Foreground(toTcell(c)),
		tcell.StyleDefault.Foreground(toTcell(c.BlendLab(black, pieceShade).Clamped())),
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellStyle picks the style for c. Without piece colouring every glyph
// except the marker uses the default style.
func (p palette) cellStyle(c Cell, showPieces bool) tcell.Style {
	if c.Marker {
		return p.marker
	}
	if !showPieces {
		return tcell.StyleDefault
	}
	if c.Kind == piece.KindOriginal {
		return p.original[c.Piece%2]
	}
	return p.plain[c.Piece%2]
}
