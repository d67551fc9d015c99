// Package script replays edit scripts against a document.
//
// Two script formats are supported.
//
// YAML scripts are a list of operations applied in order:
//
//	- op: insert        # InsertStringBefore
//	  at: 0
//	  text: "hello "
//	- op: char          # InsertCharBefore
//	  at: 6
//	  char: "!"
//	- op: linebreak     # InsertLineBreakBefore
//	  at: 7
//	- op: erase         # EraseCharAt by position
//	  at: 0
//	- op: erase         # EraseCharAt by line and offset
//	  line: 1
//	  offset: 0
//
// Lua scripts receive a global table doc:
//
//	doc.insert(pos, text)       doc.insert_char(pos, ch)
//	doc.line_break(pos)         doc.erase(pos) -> ch
//	doc.erase_at(line, offset) -> ch
//	doc.text()  doc.len()  doc.char_at(pos)  doc.line_count()
//	doc.line(n)  doc.piece_count()
//
// All positions, lines and offsets are 0-based, matching the document API.
// Only the base, table, string and math libraries are available to Lua.
package script
