package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
	"slang/internal/source"
)

func parseForDump(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("dump.slang", []byte(src))
	toks, err := lexer.TokenizeFile(fs.Get(fileID), lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	bag := diag.NewBag(10)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseTokens(toks, builder, parser.Options{MaxErrors: 10, Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Messages())
	}
	return builder, res.File, fs
}

func TestFormatASTPretty(t *testing.T) {
	builder, fileID, fs := parseForDump(t, `struct P { x: Int? }
func main() {
	var p = P { x: nil }
	for (n in [1, 2]) { print("\(n)") }
}
`)
	out := ASTString(builder, fileID, fs)
	for _, want := range []string{
		"Item[0]: struct P",
		"Field x: Int?",
		"Item[1]: func main",
		"Var p",
		"StructLit P",
		"For in",
		"Call",
		"└─ ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in dump:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	builder, fileID, fs := parseForDump(t, "enum C { case r, g }\n")
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, builder, fileID, fs); err != nil {
		t.Fatalf("json: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(root.Children) != 1 || len(root.Children[0].Children) != 2 {
		t.Fatalf("unexpected tree: %+v", root)
	}
	if root.Children[0].Children[1].Label != "Case g" {
		t.Fatalf("unexpected case label %q", root.Children[0].Children[1].Label)
	}
}
