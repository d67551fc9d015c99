package document

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithLineBreakPieces makes New and InsertStringBefore represent every '\n'
// in incoming text as a LineBreak piece rather than a character inside a
// range. InsertCharBefore('\n', ...) is then equivalent to InsertLineBreakBefore.
//
// The newline runes are still written to the backing stores; the surrounding
// ranges skip over them.
func WithLineBreakPieces() Option {
	return func(d *Document) {
		d.lineBreakPieces = true
	}
}
