package lexer

import (
	"fmt"
	"unicode/utf8"

	"slang/internal/diag"
	"slang/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.mark()

	r, sz := lx.cursor.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.cursor.nextRune()
		sp := lx.cursor.spanFrom(start)
		lx.fail(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", r))
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	lx.cursor.nextRune()
	for {
		b := lx.cursor.peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.next()
			continue
		}
		r2, sz2 := lx.cursor.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.cursor.nextRune()
	}

	sp := lx.cursor.spanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
