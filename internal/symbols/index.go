// Package symbols indexes the definitions and uses recorded by the checker,
// answering "go to definition" and "find references" for `slang def` and
// `slang refs`.
package symbols

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"slang/internal/sema"
	"slang/internal/source"
	"slang/internal/types"
)

// SymbolID is 1-based; NoSymbolID never names a symbol.
type SymbolID uint32

const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// Symbol is one declared name and every place that uses it.
type Symbol struct {
	ID   SymbolID
	Name string
	Kind sema.DefKind
	// Span covers exactly the identifier at the declaration.
	Span source.Span
	Type string
	Refs []source.Span // sorted by offset
}

// occurrence is a def or a use, kept sorted for binary search by offset.
type occurrence struct {
	span source.Span
	sym  SymbolID
}

// Index is immutable once built.
type Index struct {
	symbols []Symbol // [0] is a sentinel
	byDef   map[source.Span]SymbolID
	occs    []occurrence
}

// Build indexes a checker result. A result from a failed check is fine:
// names the checker could not resolve simply have no references.
func Build(res *sema.Result) *Index {
	ix := &Index{
		symbols: make([]Symbol, 1, 1+len(res.Defs)),
		byDef:   make(map[source.Span]SymbolID, len(res.Defs)),
	}
	for _, def := range res.Defs {
		if _, dup := ix.byDef[def.Span]; dup {
			continue
		}
		id := ix.nextID()
		typ := ""
		if def.Type != types.NoTypeID {
			typ = types.Label(res.TypeInterner, def.Type)
		}
		ix.symbols = append(ix.symbols, Symbol{ID: id, Name: def.Name, Kind: def.Kind, Span: def.Span, Type: typ})
		ix.byDef[def.Span] = id
		ix.occs = append(ix.occs, occurrence{span: def.Span, sym: id})
	}
	for _, ref := range res.Refs {
		id, ok := ix.byDef[ref.Def]
		if !ok || ref.Use == ref.Def {
			continue
		}
		sym := &ix.symbols[id]
		sym.Refs = append(sym.Refs, ref.Use)
		ix.occs = append(ix.occs, occurrence{span: ref.Use, sym: id})
	}
	for i := 1; i < len(ix.symbols); i++ {
		refs := ix.symbols[i].Refs
		sort.Slice(refs, func(a, b int) bool { return refs[a].Start < refs[b].Start })
		ix.symbols[i].Refs = dedupSpans(refs)
	}
	sort.SliceStable(ix.occs, func(a, b int) bool { return ix.occs[a].span.Start < ix.occs[b].span.Start })
	return ix
}

func (ix *Index) nextID() SymbolID {
	id, err := safecast.Conv[SymbolID](len(ix.symbols))
	if err != nil {
		panic(fmt.Errorf("symbol id overflow: %w", err))
	}
	return id
}

func dedupSpans(spans []source.Span) []source.Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, sp := range spans[1:] {
		if sp != out[len(out)-1] {
			out = append(out, sp)
		}
	}
	return out
}

// Len returns the number of indexed symbols.
func (ix *Index) Len() int { return len(ix.symbols) - 1 }

// Get returns the symbol by ID, or nil.
func (ix *Index) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(ix.symbols) {
		return nil
	}
	return &ix.symbols[id]
}

// Symbols lists every symbol in declaration order.
func (ix *Index) Symbols() []Symbol {
	return ix.symbols[1:]
}

// Lookup finds the symbol whose definition or use covers offset. An offset
// just past an identifier also matches, so a cursor after `foo` finds foo.
func (ix *Index) Lookup(offset uint32) (*Symbol, bool) {
	i := sort.Search(len(ix.occs), func(i int) bool { return ix.occs[i].span.Start > offset })
	for j := i - 1; j >= 0; j-- {
		occ := ix.occs[j]
		if occ.span.Start <= offset && offset <= occ.span.End {
			return ix.Get(occ.sym), true
		}
		if occ.span.End < offset {
			break
		}
	}
	return nil, false
}

// Definition returns the declaration span of the symbol at offset.
func (ix *Index) Definition(offset uint32) (source.Span, bool) {
	sym, ok := ix.Lookup(offset)
	if !ok {
		return source.Span{}, false
	}
	return sym.Span, true
}

// References returns every use of the symbol at offset; with includeDecl the
// declaration comes first.
func (ix *Index) References(offset uint32, includeDecl bool) []source.Span {
	sym, ok := ix.Lookup(offset)
	if !ok {
		return nil
	}
	out := make([]source.Span, 0, len(sym.Refs)+1)
	if includeDecl {
		out = append(out, sym.Span)
	}
	return append(out, sym.Refs...)
}
