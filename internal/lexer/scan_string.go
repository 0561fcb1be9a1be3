package lexer

import (
	"strings"

	"slang/internal/diag"
	"slang/internal/token"
)

// scanString разбирает "..." с интерполяцией \( expr ).
// Каждый литерал даёт поток: StringLit (InterpStart ... InterpEnd StringLit)*.
// Первый StringLit включает открывающую кавычку, последний — закрывающую.
// Text у StringLit — уже раскодированный текст сегмента.
func (lx *Lexer) scanString() {
	litStart := lx.cursor.mark()
	segStart := litStart
	lx.cursor.next() // opening '"'

	var buf strings.Builder
	for !lx.cursor.atEnd() {
		b := lx.cursor.peek()
		switch b {
		case '"':
			lx.cursor.next()
			lx.push(token.Token{Kind: token.StringLit, Span: lx.cursor.spanFrom(segStart), Text: buf.String()})
			return
		case '\n':
			lx.failUnterminated(litStart)
			return
		case '\\':
			escStart := lx.cursor.mark()
			lx.cursor.next()
			if lx.cursor.peek() == '(' {
				// сегмент до \( закрываем отдельным токеном
				lx.push(token.Token{Kind: token.StringLit, Span: lx.spanBetween(segStart, escStart), Text: buf.String()})
				buf.Reset()
				lx.cursor.next()
				lx.push(token.Token{Kind: token.InterpStart, Span: lx.cursor.spanFrom(escStart), Text: `\(`})
				lx.interps = append(lx.interps, escStart)
				closed := lx.scanLoop(true)
				lx.interps = lx.interps[:len(lx.interps)-1]
				if !closed {
					lx.fail(diag.LexUnterminatedInterpolation, lx.cursor.spanFrom(escStart), "unterminated string interpolation")
					return
				}
				segStart = lx.cursor.mark()
				continue
			}
			r, ok := unescape(lx.cursor.peek())
			if !ok {
				if lx.cursor.atEnd() {
					lx.failUnterminated(litStart)
					return
				}
				lx.cursor.nextRune()
				lx.fail(diag.LexBadEscape, lx.cursor.spanFrom(escStart), "invalid escape sequence '"+lx.text(lx.cursor.spanFrom(escStart))+"'")
				return
			}
			lx.cursor.next()
			buf.WriteByte(r)
		default:
			buf.WriteByte(lx.cursor.next())
		}
	}
	lx.failUnterminated(litStart)
}

// failUnterminated reports a string that runs off its line. Inside `\(...)`
// the stray quote is almost always a missing ')', so the diagnostic points
// at the innermost open `\(` instead.
func (lx *Lexer) failUnterminated(litStart mark) {
	if n := len(lx.interps); n > 0 {
		open := lx.interps[n-1]
		lx.fail(diag.LexUnterminatedInterpolation, lx.spanBetween(open, open+2), "unterminated string interpolation")
		return
	}
	lx.fail(diag.LexUnterminatedString, lx.cursor.spanFrom(litStart), "unterminated string literal")
}

func unescape(b byte) (byte, bool) {
	switch b {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	}
	return 0, false
}
