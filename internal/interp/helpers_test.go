package interp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
	"slang/internal/sema"
	"slang/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
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

// compile lexes, parses and checks input, failing the test on any error.
func compile(t *testing.T, input string) (*ast.Builder, ast.FileID, *sema.Result) {
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
	checked, err := sema.Check(builder, res.File, sema.Options{})
	if err != nil {
		t.Fatalf("check: %s", diagnosticsSummary(checked.Bag))
	}
	return builder, res.File, checked
}

// runSource executes input and returns the printed lines.
func runSource(t *testing.T, input string) ([]string, error) {
	t.Helper()
	builder, fileID, checked := compile(t, input)
	var out []string
	err := Run(context.Background(), builder, fileID, Options{
		Sema:  checked,
		Print: func(s string) { out = append(out, s) },
	})
	return out, err
}

func mustRun(t *testing.T, input string) []string {
	t.Helper()
	out, err := runSource(t, input)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return out
}

func expectOutput(t *testing.T, input string, want ...string) {
	t.Helper()
	got := mustRun(t, input)
	if strings.Join(got, "\n") != strings.Join(want, "\n") || len(got) != len(want) {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func expectRuntimeError(t *testing.T, input string, code diag.Code, substr string) *RuntimeError {
	t.Helper()
	_, err := runSource(t, input)
	if err == nil {
		t.Fatalf("expected runtime error %s, program succeeded", code.ID())
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rerr.Code != code || !strings.Contains(rerr.Message, substr) {
		t.Fatalf("expected %s containing %q, got %s: %s", code.ID(), substr, rerr.Code.ID(), rerr.Message)
	}
	return rerr
}
