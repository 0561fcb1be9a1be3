package lexer

import (
	"unicode/utf8"

	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor cursor
	opts   Options
	out    []token.Token
	err    *Error // первая ошибка; после неё лексер останавливается
	// interps holds the offsets of the open `\(` markers, innermost last.
	interps []mark
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: newCursor(file),
		opts:   opts,
		out:    make([]token.Token, 0, len(file.Content)/4+1),
	}
}

// Tokenize lexes src as a standalone file named filename.
func Tokenize(src, filename string) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(filename, []byte(src))
	return New(fs.Get(id), Options{}).Run()
}

// TokenizeFile lexes a file that already lives in a FileSet.
func TokenizeFile(file *source.File, opts Options) ([]token.Token, error) {
	return New(file, opts).Run()
}

// Run scans the whole file. The returned slice always ends with EOF on success.
func (lx *Lexer) Run() ([]token.Token, error) {
	lx.scanLoop(false)
	if lx.err != nil {
		return nil, lx.err
	}
	lx.out = append(lx.out, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	return lx.out, nil
}

// scanLoop is the main token loop. Inside an interpolation (nested == true)
// it returns when the ')' matching the opening `\(` is consumed.
func (lx *Lexer) scanLoop(nested bool) bool {
	depth := 0
	for lx.err == nil {
		lx.skipTrivia()
		if lx.err != nil {
			return false
		}
		if lx.cursor.atEnd() {
			return !nested
		}

		ch := lx.cursor.peek()
		switch {
		case ch == '\n' && nested:
			// интерполяция не может переходить через строку
			return false
		case ch == '\n':
			start := lx.cursor.mark()
			lx.cursor.next()
			lx.emitNewline(lx.cursor.spanFrom(start))
		case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
			lx.push(lx.scanIdentOrKeyword())
		case isDec(ch):
			lx.push(lx.scanNumber())
		case ch == '"':
			lx.scanString()
		case nested && ch == '(':
			depth++
			lx.push(lx.scanOperatorOrPunct())
		case nested && ch == ')':
			if depth == 0 {
				start := lx.cursor.mark()
				lx.cursor.next()
				lx.push(token.Token{Kind: token.InterpEnd, Span: lx.cursor.spanFrom(start), Text: ")"})
				return true
			}
			depth--
			lx.push(lx.scanOperatorOrPunct())
		default:
			lx.push(lx.scanOperatorOrPunct())
		}
	}
	return false
}

func (lx *Lexer) push(tok token.Token) {
	if lx.err != nil || tok.Kind == token.Invalid {
		return
	}
	lx.out = append(lx.out, tok)
}

// emitNewline добавляет Newline только если предыдущий токен может завершать инструкцию.
func (lx *Lexer) emitNewline(sp source.Span) {
	if len(lx.out) == 0 || !lx.out[len(lx.out)-1].EndsStatement() {
		return
	}
	lx.out = append(lx.out, token.Token{Kind: token.Newline, Span: sp, Text: "\n"})
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) {
	if lx.err != nil {
		return
	}
	d := diag.NewError(code, sp, msg)
	lx.err = &Error{Diag: d}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) spanBetween(a, b mark) source.Span {
	return source.Span{File: lx.file.ID, Start: uint32(a), End: uint32(b)}
}

func (lx *Lexer) emptySpan() source.Span {
	return lx.cursor.here()
}
