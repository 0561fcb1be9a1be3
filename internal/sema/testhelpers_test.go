package sema

import (
	"fmt"
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
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

func checkSource(t *testing.T, input string) (*Result, *ast.Builder, ast.FileID) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.slang", []byte(input))
	toks, err := lexer.TokenizeFile(fs.Get(fileID), lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	pbag := diag.NewBag(100)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseTokens(toks, builder, parser.Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: pbag}})
	if pbag.HasErrors() {
		t.Fatalf("parse: %s", diagnosticsSummary(pbag))
	}
	result, _ := Check(builder, res.File, Options{})
	return result, builder, res.File
}

func mustCheck(t *testing.T, input string) *Result {
	t.Helper()
	result, _, _ := checkSource(t, input)
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(result.Bag))
	}
	return result
}

// expectDiag asserts that checking fails with a diagnostic of the given code
// whose message contains substr.
func expectDiag(t *testing.T, input string, code diag.Code, substr string) *Result {
	t.Helper()
	result, _, _ := checkSource(t, input)
	for _, d := range result.Bag.Items() {
		if d.Code == code && strings.Contains(d.Message, substr) {
			return result
		}
	}
	t.Fatalf("expected %s containing %q, got %s", code.ID(), substr, diagnosticsSummary(result.Bag))
	return nil
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}
