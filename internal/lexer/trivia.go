package lexer

import "slang/internal/diag"

// skipTrivia пропускает пробелы, табы, \r и комментарии. Перевод строки
// не trivia: он становится токеном.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.atEnd() {
		switch lx.cursor.peek() {
		case ' ', '\t', '\r':
			lx.cursor.next()
			continue
		}
		start := lx.cursor.mark()
		switch {
		case lx.cursor.skip2('/', '/'):
			for !lx.cursor.atEnd() && lx.cursor.peek() != '\n' {
				lx.cursor.next()
			}
		case lx.cursor.skip2('/', '*'):
			if !lx.skipBlockComment(start) {
				return
			}
		default:
			return
		}
	}
}

// skipBlockComment runs after the opening "/*". Block comments nest.
func (lx *Lexer) skipBlockComment(start mark) bool {
	for depth := 1; !lx.cursor.atEnd(); {
		switch {
		case lx.cursor.skip2('/', '*'):
			depth++
		case lx.cursor.skip2('*', '/'):
			if depth--; depth == 0 {
				return true
			}
		default:
			lx.cursor.next()
		}
	}
	lx.fail(diag.LexUnterminatedBlockComment, lx.cursor.spanFrom(start), "unterminated block comment")
	return false
}
