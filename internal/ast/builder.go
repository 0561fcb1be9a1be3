package ast

import (
	"cmp"

	"slang/internal/source"
)

// Hints pre-size the arenas. Zero fields fall back to defaults that fit a
// small single-file program.
type Hints struct{ Items, Stmts, Exprs uint }

// Builder owns every arena of one compilation unit. Nodes refer to each
// other by ID, never by pointer, so a Builder can be dropped as a whole.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
	Types *TypeExprs
	// StringsInterner is shared with sema and the interpreter.
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, strs *source.Interner) *Builder {
	items := cmp.Or(hints.Items, 32)
	if strs == nil {
		strs = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(1),
		Items:           NewItems(items),
		Stmts:           NewStmts(cmp.Or(hints.Stmts, 256)),
		Exprs:           NewExprs(cmp.Or(hints.Exprs, 256)),
		Types:           NewTypeExprs(items * 2), // параметры и результат на объявление
		StringsInterner: strs,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID { return b.Files.New(sp) }

// PushItem appends a top-level declaration in source order.
func (b *Builder) PushItem(file FileID, item ItemID) { b.Files.Append(file, item) }

// Name resolves an interned identifier; unknown ids give "".
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
