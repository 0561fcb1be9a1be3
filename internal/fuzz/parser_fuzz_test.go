package fuzztests

import (
	"context"
	"testing"
	"time"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/parser"
	"slang/internal/sema"
	"slang/internal/source"
	"slang/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input. Longer runs point
// at an error-recovery loop that never advances.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.slang", input))
		toks, err := lexer.TokenizeFile(file, lexer.Options{})
		if err != nil {
			return
		}

		bag := diag.NewBag(128)
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseTokens(toks, builder, parser.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			MaxErrors: 128,
		})
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzCheckerNoHang runs the whole static pipeline under a timeout; the
// checker must return a result for any tree the parser recovered.
func FuzzCheckerNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("func f() { for (true) { switch (1) { } } }"))
	f.Add([]byte("struct A { b: B }\nstruct B { a: A? }"))
	f.Add([]byte("func f() -> Int? { return nil }\nfunc main() { var x = f()\nswitch (x) { some -> print(x) } }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.slang", input))
			toks, err := lexer.TokenizeFile(file, lexer.Options{})
			if err != nil {
				return
			}
			builder := ast.NewBuilder(ast.Hints{}, nil)
			res := parser.ParseTokens(toks, builder, parser.Options{
				Reporter:  diag.BagReporter{Bag: diag.NewBag(128)},
				MaxErrors: 128,
			})
			checked, _ := sema.Check(builder, res.File, sema.Options{})
			if checked == nil {
				t.Errorf("checker returned no result\ninput: %q", truncateForLog(input, 200))
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
