package lexer

import (
	"strings"

	"slang/internal/source"
	"slang/internal/token"
)

// Reconstruct joins the raw lexemes of toks with single spaces, keeping the
// pieces of an interpolated string literal glued together. Comments and
// insignificant whitespace of the original file are dropped.
func Reconstruct(file *source.File, toks []token.Token) string {
	var b strings.Builder
	var prev token.Kind = token.Invalid
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		glued := (prev == token.StringLit && tok.Kind == token.InterpStart) ||
			(prev == token.InterpEnd && tok.Kind == token.StringLit)
		if i > 0 && !glued && tok.Kind != token.Newline && prev != token.Newline {
			b.WriteByte(' ')
		}
		b.Write(file.Content[tok.Span.Start:tok.Span.End])
		prev = tok.Kind
	}
	return b.String()
}
