package lexer

import (
	"slang/internal/diag"
	"slang/internal/token"
)

// Поддержка: 0, 123, 1_000, 1.5, 2.0e10, 3e-2.
// Float только если после '.' идёт цифра: "1.count" остаётся IntLit + Dot + Ident.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.mark()
	kind := token.IntLit

	lx.eatDigits()

	if b0, b1, ok := lx.cursor.peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.next() // '.'
		lx.eatDigits()
	}

	// экспонента
	if b := lx.cursor.peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.mark()
		lx.cursor.next()
		if s := lx.cursor.peek(); s == '+' || s == '-' {
			lx.cursor.next()
		}
		if !isDec(lx.cursor.peek()) {
			lx.cursor.rewind(mark)
		} else {
			kind = token.FloatLit
			lx.eatDigits()
		}
	}

	sp := lx.cursor.spanFrom(start)
	if isIdentContinueByte(lx.cursor.peek()) {
		for isIdentContinueByte(lx.cursor.peek()) {
			lx.cursor.next()
		}
		sp = lx.cursor.spanFrom(start)
		lx.fail(diag.LexBadNumber, sp, "invalid number literal '"+lx.text(sp)+"'")
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.peek()) || lx.cursor.peek() == '_' {
		lx.cursor.next()
	}
}
