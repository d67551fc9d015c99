package view

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/piecechain/internal/config"
	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/logging"
	"github.com/dshills/piecechain/internal/textio"
)

// Viewer displays and edits a document on a terminal screen.
//
// Keys:
//
//	printable      insert before the caret
//	Enter          insert a line break
//	Backspace      erase before the caret
//	Delete         erase at the caret
//	arrows         move the caret
//	Home, End      start and end of line
//	PgUp, PgDn     move by a screen
//	Ctrl-P         toggle piece colouring
//	Ctrl-S         save
//	Esc, Ctrl-Q    quit
type Viewer struct {
	screen tcell.Screen
	doc    *document.Document
	cfg    config.ViewConfig
	marker rune
	pal    palette
	path   string
	enc    textio.Encoding
	logger *logging.Logger

	lines      []Line
	caret      int
	top        int
	showPieces bool
	modified   bool
	quit       bool
	message    string
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithFile sets the file Ctrl-S writes to and its encoding.
func WithFile(path string, enc textio.Encoding) Option {
	return func(v *Viewer) {
		v.path = path
		v.enc = enc
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(v *Viewer) {
		v.logger = l
	}
}

// New creates a viewer for doc drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, doc *document.Document, cfg config.ViewConfig, opts ...Option) (*Viewer, error) {
	pal, err := newPalette(cfg)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		screen:     screen,
		doc:        doc,
		cfg:        cfg,
		pal:        pal,
		logger:     logging.Null,
		showPieces: cfg.ShowPieces,
	}
	if cfg.LineBreakMarker != "" {
		v.marker, _ = utf8.DecodeRuneInString(cfg.LineBreakMarker)
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.WithComponent("view")

	v.relayout()
	return v, nil
}

// Run draws the document and handles events until the user quits or ctx is
// cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for !v.quit {
		v.Draw()

		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		v.HandleEvent(ev)
	}
	return nil
}

// Done reports whether the user asked to quit.
func (v *Viewer) Done() bool {
	return v.quit
}

// Caret returns the document position of the caret.
func (v *Viewer) Caret() int {
	return v.caret
}

// Modified reports whether the document changed since it was last saved.
func (v *Viewer) Modified() bool {
	return v.modified
}

// HandleEvent applies a single terminal event.
func (v *Viewer) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		v.message = ""
		v.handleKey(e)
	}
}

func (v *Viewer) handleKey(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		v.quit = true

	case tcell.KeyCtrlS:
		v.save()

	case tcell.KeyCtrlP:
		v.showPieces = !v.showPieces

	case tcell.KeyEnter:
		v.edit(v.doc.InsertLineBreakBefore(v.caret), 1)

	case tcell.KeyTab:
		v.edit(v.doc.InsertCharBefore('\t', v.caret), 1)

	case tcell.KeyRune:
		v.edit(v.doc.InsertCharBefore(e.Rune(), v.caret), 1)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if v.caret == 0 {
			return
		}
		line, off := locate(v.lines, v.caret-1)
		_, err := v.doc.EraseCharAtLine(line, off)
		v.edit(err, -1)

	case tcell.KeyDelete:
		if v.caret >= v.doc.CharCount() {
			return
		}
		line, off := locate(v.lines, v.caret)
		_, err := v.doc.EraseCharAtLine(line, off)
		v.edit(err, 0)

	case tcell.KeyLeft:
		if v.caret > 0 {
			v.caret--
		}

	case tcell.KeyRight:
		if v.caret < v.doc.CharCount() {
			v.caret++
		}

	case tcell.KeyUp:
		v.moveRows(-1)

	case tcell.KeyDown:
		v.moveRows(1)

	case tcell.KeyPgUp:
		v.moveRows(-v.textRows())

	case tcell.KeyPgDn:
		v.moveRows(v.textRows())

	case tcell.KeyHome:
		row, _ := locate(v.lines, v.caret)
		v.caret = v.lines[row].Start

	case tcell.KeyEnd:
		row, _ := locate(v.lines, v.caret)
		v.caret = v.lines[row].Start + v.lines[row].Len
	}
}

// edit finishes an edit that moved the caret by delta.
func (v *Viewer) edit(err error, delta int) {
	if err != nil {
		v.logger.Warn("edit at %d failed: %v", v.caret, err)
		v.message = err.Error()
		return
	}
	v.caret += delta
	v.modified = true
	v.relayout()
}

// moveRows moves the caret n lines down, keeping its screen column.
func (v *Viewer) moveRows(n int) {
	row, off := locate(v.lines, v.caret)
	col := v.lines[row].Cols[off]

	target := min(max(row+n, 0), len(v.lines)-1)
	line := v.lines[target]

	off = 0
	for off < line.Len && line.Cols[off+1] <= col {
		off++
	}
	v.caret = line.Start + off
}

func (v *Viewer) save() {
	if v.path == "" {
		v.message = "no file to save to"
		return
	}
	if err := textio.WriteFile(v.path, v.doc, v.enc); err != nil {
		v.logger.Error("save %s: %v", v.path, err)
		v.message = err.Error()
		return
	}
	v.modified = false
	v.message = fmt.Sprintf("wrote %d characters", v.doc.CharCount())
	v.logger.Info("saved %s", v.path)
}

func (v *Viewer) relayout() {
	v.lines = Layout(v.doc, v.cfg.TabWidth, v.marker)
}

func (v *Viewer) textRows() int {
	_, h := v.screen.Size()
	return max(h-1, 1)
}

// Draw renders the visible lines, the status line and the caret.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := v.textRows()

	row, off := locate(v.lines, v.caret)
	if row < v.top {
		v.top = row
	}
	if row >= v.top+rows {
		v.top = row - rows + 1
	}

	for y := 0; y < rows && v.top+y < len(v.lines); y++ {
		x := 0
		for _, c := range v.lines[v.top+y].Cells {
			if x+c.Width > w {
				break
			}
			v.screen.SetContent(x, y, c.Rune, c.Combining, v.pal.cellStyle(c, v.showPieces))
			x += c.Width
		}
	}

	if h > 1 {
		v.drawStatus(h-1, w, row, off)
	}

	if col := v.lines[row].Cols[off]; col < w {
		v.screen.ShowCursor(col, row-v.top)
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}

func (v *Viewer) drawStatus(y, w, row, off int) {
	name := "[scratch]"
	if v.path != "" {
		name = filepath.Base(v.path)
	}
	if v.modified {
		name += " +"
	}

	status := fmt.Sprintf(" %s  %d:%d  %d chars  %d pieces  %d added",
		name, row+1, off+1, v.doc.CharCount(), v.doc.PieceCount(), v.doc.AddedLen())
	if v.message != "" {
		status += "  " + v.message
	}

	x := 0
	for _, r := range status {
		rw := uniseg.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		v.screen.SetContent(x, y, r, nil, v.pal.status)
		x += rw
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, v.pal.status)
	}
}
