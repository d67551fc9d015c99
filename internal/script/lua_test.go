package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/logging"
)

func TestRunLua(t *testing.T) {
	doc := document.New("world")
	src := `
doc.insert(0, "hello ")
doc.insert_char(doc.len(), "!")
doc.line_break(5)
local ch = doc.erase(6)
assert(ch == " ", "erased " .. ch)
assert(doc.line_count() == 2)
assert(doc.line(1) == "world!", doc.line(1))
assert(doc.char_at(0) == "h")
`
	if err := RunLua(context.Background(), doc, "edit.lua", src); err != nil {
		t.Fatalf("RunLua: %v", err)
	}
	if got := doc.Text(); got != "hello\nworld!" {
		t.Errorf("Text() = %q", got)
	}
}

func TestRunLuaEraseAt(t *testing.T) {
	doc := document.New("ab\ncd", document.WithLineBreakPieces())
	src := `
local ch = doc.erase_at(0, 2)
assert(ch == "\n", "expected line break")
assert(doc.text() == "abcd")
assert(doc.piece_count() == 2)
`
	if err := RunLua(context.Background(), doc, "join.lua", src); err != nil {
		t.Fatalf("RunLua: %v", err)
	}
}

func TestRunLuaErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"out of range", `doc.erase(42)`, "erase:"},
		{"bad char", `doc.insert_char(0, "ab")`, "single character"},
		{"bad line", `doc.line(7)`, "line:"},
		{"syntax", `doc.insert(`, "loading"},
		{"no loadstring", `loadstring("x = 1")()`, "running"},
		{"no io", `io.write("x")`, "running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunLua(context.Background(), document.New("abc"), "t.lua", tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRunLuaCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := RunLua(ctx, document.New(""), "loop.lua", `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestRunLuaPrint(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})

	err := NewLuaRunner(logger).Run(context.Background(), document.New("abc"), "p.lua", `print("len", doc.len())`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "len\t3") || !strings.Contains(out, "component=lua") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "edit.yaml")
	if err := os.WriteFile(yamlPath, []byte("- op: insert\n  at: 0\n  text: \">> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	luaPath := filepath.Join(dir, "edit.lua")
	if err := os.WriteFile(luaPath, []byte(`doc.insert(doc.len(), " <<")`), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := document.New("x")
	res, err := RunFile(context.Background(), doc, yamlPath, nil)
	if err != nil {
		t.Fatalf("RunFile(yaml): %v", err)
	}
	if res.Applied != 1 {
		t.Errorf("Applied = %d", res.Applied)
	}
	if _, err := RunFile(context.Background(), doc, luaPath, nil); err != nil {
		t.Fatalf("RunFile(lua): %v", err)
	}
	if doc.Text() != ">> x <<" {
		t.Errorf("Text() = %q", doc.Text())
	}

	if _, err := RunFile(context.Background(), doc, filepath.Join(dir, "edit.txt"), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
