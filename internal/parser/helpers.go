package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд (0 — текущий).
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает текущий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// skipNewlines пропускает незначимые внутри конструкции переводы строк.
func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// skipSeparators пропускает переводы строк и ';'.
func (p *Parser) skipSeparators() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

// atAfterNewlines reports whether the next non-newline token has kind k.
func (p *Parser) atAfterNewlines(k token.Kind) bool {
	i := 0
	for p.peekN(i).Kind == token.Newline {
		i++
	}
	return p.peekN(i).Kind == k
}

// getDiagnosticSpan — на EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF || peek.Kind == token.Newline {
		return p.lastSpan.AtEnd()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, fmt.Sprintf("%s, got %s", msg, describe(p.peek())))
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// parseIdent — ожидает Ident и интернирует его.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, fmt.Sprintf("expected %s, got %s", what, describe(p.peek())))
	return source.NoStringID, source.Span{}, false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "newline"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.IntLit, token.FloatLit:
		return "number " + tok.Text
	case token.StringLit:
		return "string literal"
	case token.InterpStart:
		return "string interpolation"
	}
	return "'" + tok.Kind.String() + "'"
}

func isTypeName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
