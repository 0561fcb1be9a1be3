package testkit

import (
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
	"slang/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.slang", []byte(src)))
	toks, err := lexer.TokenizeFile(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if err := CheckTokenInvariants(toks, file); err != nil {
		t.Fatalf("token invariants: %v", err)
	}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(32)
	res := parser.ParseTokens(toks, builder, parser.Options{MaxErrors: 32, Reporter: diag.BagReporter{Bag: bag}})
	return builder, res.File, file
}

func TestSpanInvariantsHold(t *testing.T) {
	for _, src := range []string{
		"",
		"func main() { print(1) }",
		"struct P { x: Int }\nenum C { case a, b }\nunion U = Int | String\nfunc main() {}\n",
		// синтаксическая ошибка посередине: соседние объявления уцелели
		"func a() {}\nvar 1 +\nfunc b() { print(\"\\(1)\") }\n",
	} {
		b, fileID, file := parseSource(t, src)
		if err := CheckSpanInvariants(b, fileID, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsDetectEscapedItem(t *testing.T) {
	b, fileID, file := parseSource(t, "func main() {}")
	f := b.Files.Get(fileID)
	item := b.Items.Get(f.Items[0])
	item.Span.End = f.Span.End + 10
	if err := CheckSpanInvariants(b, fileID, file); err == nil {
		t.Fatalf("expected violation for item outside the file span")
	}
}

func TestTokenInvariantsRequireEOF(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.slang", []byte("x")))
	toks, err := lexer.TokenizeFile(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if err := CheckTokenInvariants(toks[:len(toks)-1], file); err == nil {
		t.Fatalf("expected missing EOF to be reported")
	}
}
