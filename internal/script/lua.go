package script

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/logging"
)

// LuaRunner executes Lua edit scripts.
type LuaRunner struct {
	logger *logging.Logger
}

// NewLuaRunner creates a runner. print() output goes to logger at info level.
func NewLuaRunner(logger *logging.Logger) *LuaRunner {
	if logger == nil {
		logger = logging.Null
	}
	return &LuaRunner{logger: logger.WithComponent("lua")}
}

// Run executes src against doc. name identifies the chunk in error messages.
// Cancelling ctx stops the script.
func (r *LuaRunner) Run(ctx context.Context, doc *document.Document, name, src string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)
	L.SetGlobal("print", L.NewFunction(r.print))

	mod := &docModule{doc: doc}
	mod.register(L)

	L.SetContext(ctx)

	fn, err := L.LoadString(src)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running %s: %w", name, ctxErr)
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

// RunLua executes src against doc without logging print output.
func RunLua(ctx context.Context, doc *document.Document, name, src string) error {
	return NewLuaRunner(nil).Run(ctx, doc, name, src)
}

// openSafeLibraries opens the base, table, string and math libraries and
// removes the base functions that load code from files or strings.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (r *LuaRunner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.logger.Info("%s", strings.Join(parts, "\t"))
	return 0
}

// docModule exposes a document to Lua as the global table doc.
type docModule struct {
	doc *document.Document
}

func (m *docModule) register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "insert_char", L.NewFunction(m.insertChar))
	L.SetField(mod, "line_break", L.NewFunction(m.lineBreak))
	L.SetField(mod, "erase", L.NewFunction(m.erase))
	L.SetField(mod, "erase_at", L.NewFunction(m.eraseAt))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "len", L.NewFunction(m.length))
	L.SetField(mod, "char_at", L.NewFunction(m.charAt))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "piece_count", L.NewFunction(m.pieceCount))

	L.SetGlobal("doc", mod)
}

// insert(pos, text)
func (m *docModule) insert(L *lua.LState) int {
	pos := L.CheckInt(1)
	text := L.CheckString(2)

	if err := m.doc.InsertStringBefore(text, pos); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// insert_char(pos, ch)
func (m *docModule) insertChar(L *lua.LState) int {
	pos := L.CheckInt(1)
	s := L.CheckString(2)

	if utf8.RuneCountInString(s) != 1 {
		L.ArgError(2, "expected a single character")
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(s)

	if err := m.doc.InsertCharBefore(ch, pos); err != nil {
		L.RaiseError("insert_char: %v", err)
	}
	return 0
}

// line_break(pos)
func (m *docModule) lineBreak(L *lua.LState) int {
	pos := L.CheckInt(1)

	if err := m.doc.InsertLineBreakBefore(pos); err != nil {
		L.RaiseError("line_break: %v", err)
	}
	return 0
}

// erase(pos) -> ch
func (m *docModule) erase(L *lua.LState) int {
	pos := L.CheckInt(1)

	ch, err := m.doc.EraseCharAt(pos)
	if err != nil {
		L.RaiseError("erase: %v", err)
		return 0
	}
	L.Push(lua.LString(string(ch)))
	return 1
}

// erase_at(line, offset) -> ch
func (m *docModule) eraseAt(L *lua.LState) int {
	line := L.CheckInt(1)
	offset := L.CheckInt(2)

	ch, err := m.doc.EraseCharAtLine(line, offset)
	if err != nil {
		L.RaiseError("erase_at: %v", err)
		return 0
	}
	L.Push(lua.LString(string(ch)))
	return 1
}

// text() -> string
func (m *docModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.doc.Text()))
	return 1
}

// len() -> number of characters
func (m *docModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.CharCount()))
	return 1
}

// char_at(pos) -> ch
func (m *docModule) charAt(L *lua.LState) int {
	pos := L.CheckInt(1)

	ch, err := m.doc.CharAt(pos)
	if err != nil {
		L.RaiseError("char_at: %v", err)
		return 0
	}
	L.Push(lua.LString(string(ch)))
	return 1
}

func (m *docModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.LineCount()))
	return 1
}

// line(n) -> string without the line break
func (m *docModule) line(L *lua.LState) int {
	n := L.CheckInt(1)

	text, err := m.doc.LineText(n)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func (m *docModule) pieceCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.PieceCount()))
	return 1
}
