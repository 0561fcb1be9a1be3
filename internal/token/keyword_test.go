package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"func":    KwFunc,
		"union":   KwUnion,
		"switch":  KwSwitch,
		"default": KwDefault,
		"some":    KwSome,
		"none":    KwNone,
		"nil":     KwNil,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен, имена типов остаются идентификаторами
	for _, s := range []string{"Func", "SWITCH", "Int", "String", "Set", "print", "fn", "let"} {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", s, k)
		}
	}
}

func TestKindClassification(t *testing.T) {
	tok := func(k Kind) Token { return Token{Kind: k} }
	for k := range keywords {
		kind := keywords[k]
		if !tok(kind).IsKeyword() || tok(kind).IsPunctOrOp() {
			t.Fatalf("%v must be keyword only", kind)
		}
		if kind.String() != k {
			t.Fatalf("String() of %q = %q", k, kind.String())
		}
	}
	for _, k := range []Kind{Plus, Arrow, PercentAssign, RBracket, Pipe} {
		if !tok(k).IsPunctOrOp() || tok(k).IsKeyword() {
			t.Fatalf("%v must be punct/op only", k)
		}
	}
	if !tok(RParen).EndsStatement() || tok(Plus).EndsStatement() || tok(LBrace).EndsStatement() {
		t.Fatalf("unexpected statement-end classification")
	}
	if !KwUnion.StartsDecl() || KwElse.StartsDecl() {
		t.Fatalf("unexpected resync classification")
	}
}
