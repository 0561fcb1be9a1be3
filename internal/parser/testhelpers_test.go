package parser

import (
	"fmt"
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.slang", []byte(input))
	toks, err := lexer.TokenizeFile(fs.Get(fileID), lexer.Options{})
	if err != nil {
		t.Fatalf("lex %q: %v", input, err)
	}

	bag := diag.NewBag(100)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseTokens(toks, builder, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	return builder, res.File, bag
}

func mustParse(t *testing.T, input string) (*ast.Builder, ast.FileID) {
	t.Helper()
	builder, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return builder, fileID
}

// firstFnBody returns the statements of the first function in the file.
func firstFnBody(t *testing.T, b *ast.Builder, fileID ast.FileID) []ast.StmtID {
	t.Helper()
	for _, itemID := range b.Files.Get(fileID).Items {
		if fn, ok := b.Items.Fn(itemID); ok {
			block, ok := b.Stmts.Block(fn.Body)
			if !ok {
				t.Fatalf("function body is not a block")
			}
			return block.Stmts
		}
	}
	t.Fatalf("no function in file")
	return nil
}

// exprOf returns the expression of an expression statement or var initializer.
func exprOf(t *testing.T, b *ast.Builder, stmtID ast.StmtID) ast.ExprID {
	t.Helper()
	if es, ok := b.Stmts.Expr(stmtID); ok {
		return es.Expr
	}
	if vs, ok := b.Stmts.Var(stmtID); ok {
		return vs.Value
	}
	t.Fatalf("statement %s carries no expression", b.Stmts.Get(stmtID).Kind)
	return ast.NoExprID
}

func spanText(src string, sp source.Span) string {
	return src[sp.Start:sp.End]
}
