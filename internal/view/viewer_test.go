package view

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/piecechain/internal/config"
	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/textio"
)

func newTestViewer(t *testing.T, text string, opts ...Option) (*Viewer, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 5)

	cfg := config.Default().View
	v, err := New(screen, document.New(text, document.WithLineBreakPieces()), cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestViewerDraw(t *testing.T) {
	v, s := newTestViewer(t, "hello\nworld")
	v.Draw()

	if got := rowText(s, 0); got != "hello" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(s, 1); got != "world" {
		t.Errorf("row 1 = %q", got)
	}
	if got := rowText(s, 4); !strings.Contains(got, "1:1") || !strings.Contains(got, "11 chars") {
		t.Errorf("status = %q", got)
	}
}

func TestViewerTyping(t *testing.T) {
	v, _ := newTestViewer(t, "ac")

	v.HandleEvent(key(tcell.KeyRight))
	v.HandleEvent(typeRune('b'))
	v.HandleEvent(key(tcell.KeyEnter))

	if got := v.doc.Text(); got != "ab\nc" {
		t.Errorf("Text() = %q", got)
	}
	if v.Caret() != 3 {
		t.Errorf("Caret() = %d, want 3", v.Caret())
	}
	if !v.Modified() {
		t.Error("expected modified")
	}
	if v.doc.LineCount() != 2 {
		t.Errorf("LineCount() = %d", v.doc.LineCount())
	}
}

func TestViewerErase(t *testing.T) {
	v, _ := newTestViewer(t, "ab\ncd")

	// Caret to the start of line 1, then backspace joins the lines.
	v.HandleEvent(key(tcell.KeyDown))
	if v.Caret() != 3 {
		t.Fatalf("Caret() after Down = %d", v.Caret())
	}
	v.HandleEvent(key(tcell.KeyBackspace2))
	if got := v.doc.Text(); got != "abcd" {
		t.Errorf("after backspace Text() = %q", got)
	}
	if v.Caret() != 2 {
		t.Errorf("Caret() = %d, want 2", v.Caret())
	}

	v.HandleEvent(key(tcell.KeyDelete))
	if got := v.doc.Text(); got != "abd" {
		t.Errorf("after delete Text() = %q", got)
	}

	v.HandleEvent(key(tcell.KeyEnd))
	v.HandleEvent(key(tcell.KeyDelete))
	if got := v.doc.Text(); got != "abd" {
		t.Errorf("delete at end changed text to %q", got)
	}
}

func TestViewerBackspaceAtStart(t *testing.T) {
	v, _ := newTestViewer(t, "x")
	v.HandleEvent(key(tcell.KeyBackspace2))

	if v.doc.Text() != "x" || v.Modified() {
		t.Error("backspace at position 0 should do nothing")
	}
}

func TestViewerVerticalMotion(t *testing.T) {
	v, _ := newTestViewer(t, "long line\nab\nlonger")

	v.HandleEvent(key(tcell.KeyEnd))
	v.HandleEvent(key(tcell.KeyDown))
	if v.Caret() != 12 {
		t.Errorf("Down from a long line should clamp to the end of line 1, got %d", v.Caret())
	}
	v.HandleEvent(key(tcell.KeyDown))
	if v.Caret() != 15 {
		t.Errorf("Down should keep column 2, got %d", v.Caret())
	}
	v.HandleEvent(key(tcell.KeyHome))
	if v.Caret() != 13 {
		t.Errorf("Home = %d", v.Caret())
	}
	v.HandleEvent(key(tcell.KeyPgUp))
	if v.Caret() != 0 {
		t.Errorf("PgUp = %d", v.Caret())
	}
}

func TestViewerScroll(t *testing.T) {
	v, s := newTestViewer(t, "0\n1\n2\n3\n4\n5\n6")

	for range 6 {
		v.HandleEvent(key(tcell.KeyDown))
	}
	v.Draw()

	// Four text rows above the status line.
	if got := rowText(s, 3); got != "6" {
		t.Errorf("bottom row = %q, want %q", got, "6")
	}
	if got := rowText(s, 0); got != "3" {
		t.Errorf("top row = %q, want %q", got, "3")
	}
}

func TestViewerPieceColours(t *testing.T) {
	v, s := newTestViewer(t, "ab")
	v.HandleEvent(typeRune('X'))
	v.HandleEvent(key(tcell.KeyCtrlP))
	v.Draw()

	_, _, plain, _ := s.GetContent(0, 0)    //nolint:staticcheck // GetContent is the correct API
	_, _, original, _ := s.GetContent(1, 0) //nolint:staticcheck // GetContent is the correct API
	if plain == original {
		t.Error("plain and original text should be styled differently")
	}
	if plain != v.pal.plain[0] {
		t.Errorf("inserted text style = %v, want %v", plain, v.pal.plain[0])
	}
}

func TestViewerSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	v, _ := newTestViewer(t, "ab\ncd", WithFile(path, textio.UTF8))

	v.HandleEvent(typeRune('>'))
	v.HandleEvent(key(tcell.KeyCtrlS))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != ">ab\ncd" {
		t.Errorf("saved %q", data)
	}
	if v.Modified() {
		t.Error("expected clean state after save")
	}
}

func TestViewerSaveWithoutFile(t *testing.T) {
	v, s := newTestViewer(t, "ab")
	v.HandleEvent(key(tcell.KeyCtrlS))
	v.Draw()

	if got := rowText(s, 4); !strings.Contains(got, "no file") {
		t.Errorf("status = %q", got)
	}
}

func TestViewerQuit(t *testing.T) {
	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlQ} {
		v, _ := newTestViewer(t, "")
		v.HandleEvent(key(k))
		if !v.Done() {
			t.Errorf("key %v should quit", k)
		}
	}
}

func TestViewerRun(t *testing.T) {
	v, s := newTestViewer(t, "abc")

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	s.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	if v.doc.Text() != "zabc" {
		t.Errorf("Text() = %q", v.doc.Text())
	}
}

func TestViewerRunCancelled(t *testing.T) {
	v, _ := newTestViewer(t, "abc")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewRejectsBadColour(t *testing.T) {
	cfg := config.Default().View
	cfg.PlainColor = "green"

	s := tcell.NewSimulationScreen("")
	if _, err := New(s, document.New(""), cfg); err == nil {
		t.Error("expected error for invalid colour")
	}
}
