package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/source"
	"slang/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func mustTokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(src, "test.slang")
	if err != nil {
		t.Fatalf("unexpected lexer error for %q: %v", src, err)
	}
	return toks
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks := mustTokenize(t, src)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: expected %v, got %v", src, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d expected %v, got %v (all: %v)", src, i, want[i], got[i], got)
		}
	}
	return toks
}

func TestOperatorDisambiguation(t *testing.T) {
	expectKinds(t, "- -> -= -",
		token.Minus, token.Arrow, token.MinusAssign, token.Minus)
	expectKinds(t, "a==b!=c<=d>=e&&f||!g",
		token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident, token.LtEq,
		token.Ident, token.GtEq, token.Ident, token.AndAnd, token.Ident, token.OrOr,
		token.Bang, token.Ident)
	expectKinds(t, "x += 1; y %= 2",
		token.Ident, token.PlusAssign, token.IntLit, token.Semicolon,
		token.Ident, token.PercentAssign, token.IntLit)
}

func TestNumbers(t *testing.T) {
	toks := expectKinds(t, "42 3.14 1_000 2e3 7.count",
		token.IntLit, token.FloatLit, token.IntLit, token.FloatLit,
		token.IntLit, token.Dot, token.Ident)
	if toks[1].Text != "3.14" || toks[2].Text != "1_000" {
		t.Fatalf("unexpected texts %q %q", toks[1].Text, toks[2].Text)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "func Struct union some none nil default",
		token.KwFunc, token.Ident, token.KwUnion, token.KwSome, token.KwNone, token.KwNil, token.KwDefault)
}

func TestCommentsSkipped(t *testing.T) {
	expectKinds(t, "a // line\n/* block /* nested */ */ b",
		token.Ident, token.Newline, token.Ident)
}

func TestNewlineSignificance(t *testing.T) {
	// после '+' и '{' перевод строки не значим, после ')' и идентификатора — значим
	expectKinds(t, "a +\nb\n\nfoo(\n)\n{\n}",
		token.Ident, token.Plus, token.Ident, token.Newline,
		token.Ident, token.LParen, token.RParen, token.Newline,
		token.LBrace, token.RBrace)
	expectKinds(t, "return\nx", token.KwReturn, token.Newline, token.Ident)
}

func TestStringInterpolation(t *testing.T) {
	toks := expectKinds(t, `"a\(x + f(1))b"`,
		token.StringLit, token.InterpStart, token.Ident, token.Plus, token.Ident,
		token.LParen, token.IntLit, token.RParen, token.InterpEnd, token.StringLit)
	if toks[0].Text != "a" || toks[9].Text != "b" {
		t.Fatalf("unexpected segments %q %q", toks[0].Text, toks[9].Text)
	}
	toks = expectKinds(t, `"\("in\("ner")")"`,
		token.StringLit, token.InterpStart,
		token.StringLit, token.InterpStart, token.StringLit, token.InterpEnd, token.StringLit,
		token.InterpEnd, token.StringLit)
	if toks[2].Text != "in" || toks[4].Text != "ner" {
		t.Fatalf("unexpected nested segments %q %q", toks[2].Text, toks[4].Text)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := expectKinds(t, `"tab\tquote\"nl\n\\"`, token.StringLit)
	if toks[0].Text != "tab\tquote\"nl\n\\" {
		t.Fatalf("unexpected decoded text %q", toks[0].Text)
	}
}

func TestFailFast(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
		msg  string
	}{
		{"var x = 1 @ 2 # 3", diag.LexUnknownChar, "unexpected character '@'"},
		{`print("abc`, diag.LexUnterminatedString, "unterminated string"},
		{"print(\"abc\n\")", diag.LexUnterminatedString, "unterminated string"},
		{`print("\(1 + 2")`, diag.LexUnterminatedInterpolation, "unterminated string interpolation"},
		{`print("\("x") abc`, diag.LexUnterminatedString, "unterminated string"},
		{`"\(1 + 2`, diag.LexUnterminatedInterpolation, "unterminated string interpolation"},
		{`"bad \q"`, diag.LexBadEscape, "invalid escape"},
		{"/* open", diag.LexUnterminatedBlockComment, "unterminated block comment"},
		{"12abc", diag.LexBadNumber, "invalid number literal"},
	}
	for _, tc := range cases {
		_, err := lexer.Tokenize(tc.src, "test.slang")
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: expected *lexer.Error, got %v", tc.src, err)
		}
		ds := lexErr.Diagnostics()
		if len(ds) != 1 {
			t.Fatalf("%q: expected exactly one diagnostic, got %d", tc.src, len(ds))
		}
		if ds[0].Code != tc.code || !strings.Contains(ds[0].Message, tc.msg) {
			t.Fatalf("%q: expected %s %q, got %s %q", tc.src, tc.code.ID(), tc.msg, ds[0].Code.ID(), ds[0].Message)
		}
	}
}

func TestFailFastReportsFirstOnly(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.slang", []byte("a @ b # c"))
	bag := diag.NewBag(10)
	_, err := lexer.TokenizeFile(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if bag.Len() != 1 || bag.Items()[0].Primary.Start != 2 {
		t.Fatalf("expected single diagnostic at offset 2, got %v", bag.Items())
	}
}

func TestSpansCoverIdentifiers(t *testing.T) {
	src := "func main() { var count: Int = 1 }"
	toks := mustTokenize(t, src)
	for _, tok := range toks {
		if tok.Kind != token.Ident {
			continue
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v covers %q, want %q", tok.Span, got, tok.Text)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		`func main() { print("\(1 + 2 * 3)") }`,
		"enum C { case r, g, b }\nfunc main(){ var x: C = C.g; switch(x){ C.r -> print(\"r\") C.g -> print(\"g\") C.b -> print(\"b\") } }",
		"union V = Int | String // tail comment\nfunc main(){ var v:V = V.Int(5) }",
		`func main(){ var d:[String:Int]=["a":1]; print("\(d["b"]) and \("x\(1)y")") }`,
		"func f(a: Int?) -> Float { return 1.5e2 }",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("a.slang", []byte(src)))
		first, err := lexer.TokenizeFile(file, lexer.Options{})
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		rebuilt := lexer.Reconstruct(file, first)
		second := mustTokenize(t, rebuilt)
		if len(first) != len(second) {
			t.Fatalf("%q: rebuilt %q has %d tokens, want %d", src, rebuilt, len(second), len(first))
		}
		for i := range first {
			if first[i].Kind != second[i].Kind || first[i].Text != second[i].Text {
				t.Fatalf("%q: token %d differs: %v %q vs %v %q", src, i, first[i].Kind, first[i].Text, second[i].Kind, second[i].Text)
			}
		}
		if strip(rebuilt) != strip(stripComments(src)) {
			t.Fatalf("significant characters changed:\n%q\n%q", strip(rebuilt), strip(stripComments(src)))
		}
	}
}

func strip(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
}

func stripComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func TestStrayQuoteInInterpolationPointsAtOpener(t *testing.T) {
	_, err := lexer.Tokenize(`"a\(1 + 2")`, "test.slang")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	d := lexErr.Diagnostics()[0]
	if d.Code != diag.LexUnterminatedInterpolation {
		t.Fatalf("code = %v, want unterminated interpolation", d.Code)
	}
	if d.Primary.Start != 2 || d.Primary.End != 4 {
		t.Fatalf("span = %v, want the \\( marker at 2-4", d.Primary)
	}
}
