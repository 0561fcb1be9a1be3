package token

import (
	"slang/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunc && t.Kind <= KwNone
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// EndsStatement reports whether a line break after this token is significant.
func (t Token) EndsStatement() bool {
	switch t.Kind {
	case Ident, IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil, KwNone,
		KwReturn, RParen, RBrace, RBracket, Question:
		return true
	default:
		return false
	}
}

// StartsDecl reports whether the token may begin a declaration or statement
// the parser resynchronizes on.
func (k Kind) StartsDecl() bool {
	switch k {
	case KwFunc, KwStruct, KwEnum, KwUnion, KwVar, KwIf, KwFor, KwSwitch, KwReturn:
		return true
	default:
		return false
	}
}
