package symbols

import (
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
	"slang/internal/sema"
	"slang/internal/source"
)

func buildIndex(t *testing.T, src string) (*Index, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.slang", []byte(src))
	file := fs.Get(fileID)
	toks, err := lexer.TokenizeFile(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	bag := diag.NewBag(50)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseTokens(toks, builder, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse: %v", bag.Messages())
	}
	checked, _ := sema.Check(builder, res.File, sema.Options{})
	return Build(checked), file
}

// offsetOf returns the byte offset of the n-th (0-based) occurrence of needle.
func offsetOf(t *testing.T, src, needle string, n int) uint32 {
	t.Helper()
	off := 0
	for i := 0; ; i++ {
		idx := strings.Index(src[off:], needle)
		if idx < 0 {
			t.Fatalf("occurrence %d of %q not found", n, needle)
		}
		if i == n {
			return uint32(off + idx)
		}
		off += idx + len(needle)
	}
}

const program = `struct Point { x: Int }
func shift(p: Point, by: Int) -> Point {
	var q = p
	q.x += by
	return q
}
func main() {
	var start = Point { x: 1 }
	print(shift(start, 2).x)
	print(start)
}
`

func TestDefinitionFromUse(t *testing.T) {
	ix, _ := buildIndex(t, program)
	use := offsetOf(t, program, "start", 1)
	def, ok := ix.Definition(use + 2)
	if !ok {
		t.Fatalf("no definition for use of start")
	}
	if want := offsetOf(t, program, "start", 0); def.Start != want || def.End != want+5 {
		t.Fatalf("definition span %v, want start at %d", def, want)
	}
}

func TestReferencesIncludeAllUses(t *testing.T) {
	ix, _ := buildIndex(t, program)
	decl := offsetOf(t, program, "shift", 0)
	refs := ix.References(decl, true)
	if len(refs) != 2 || refs[0].Start != decl || refs[1].Start != offsetOf(t, program, "shift", 1) {
		t.Fatalf("unexpected refs for shift: %v", refs)
	}
	sym, ok := ix.Lookup(decl)
	if !ok || sym.Kind != sema.DefFn || sym.Name != "shift" {
		t.Fatalf("lookup shift: %+v", sym)
	}
}

func TestStructTypeReferences(t *testing.T) {
	ix, _ := buildIndex(t, program)
	sym, ok := ix.Lookup(offsetOf(t, program, "Point", 0))
	if !ok || sym.Kind != sema.DefStruct {
		t.Fatalf("Point should be a struct symbol: %+v", sym)
	}
	if len(sym.Refs) < 3 {
		t.Fatalf("expected Point to be referenced by params, result and literal, got %v", sym.Refs)
	}
}

func TestParamTypeLabel(t *testing.T) {
	ix, _ := buildIndex(t, program)
	sym, ok := ix.Lookup(offsetOf(t, program, "by", 0))
	if !ok || sym.Kind != sema.DefParam || sym.Type != "Int" {
		t.Fatalf("unexpected param symbol %+v", sym)
	}
	if len(sym.Refs) != 1 {
		t.Fatalf("by is used once, got %v", sym.Refs)
	}
}

func TestLookupMisses(t *testing.T) {
	ix, _ := buildIndex(t, program)
	if _, ok := ix.Lookup(offsetOf(t, program, "struct", 0)); ok {
		t.Fatalf("keyword must not resolve to a symbol")
	}
	if ix.References(10_000, true) != nil {
		t.Fatalf("offset past end must yield nothing")
	}
	if ix.Get(NoSymbolID) != nil || ix.Len() != len(ix.Symbols()) {
		t.Fatalf("sentinel handling broken")
	}
}

func TestGetByID(t *testing.T) {
	ix, _ := buildIndex(t, program)
	if ix.Len() == 0 {
		t.Fatalf("expected indexed symbols")
	}
	if ix.Get(NoSymbolID) != nil {
		t.Fatalf("NoSymbolID must not resolve")
	}
	if ix.Get(SymbolID(ix.Len()+1)) != nil {
		t.Fatalf("out-of-range id must not resolve")
	}
	first := ix.Get(1)
	if first == nil || first.ID != 1 || !first.ID.IsValid() {
		t.Fatalf("Get(1) = %+v", first)
	}
}
