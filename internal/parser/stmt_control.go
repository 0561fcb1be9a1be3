package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/token"
)

// if cond { } else if cond { } else { }
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseHeaderExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.skipNewlines()
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.atAfterNewlines(token.KwElse) {
		p.skipNewlines()
		p.advance() // else
		if p.at(token.KwIf) {
			els, ok = p.parseIfStmt()
		} else {
			p.skipNewlines()
			els, ok = p.parseBlock()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(p.lastSpan), cond, then, els), true
}

// parseForStmt различает три формы:
//
//	for (init; cond; post) { }
//	for x in coll { }      for (x in coll) { }
//	for cond { }
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance()

	switch {
	case p.at(token.LParen) && p.forHeaderIsClassic():
		return p.parseForClassic(kw.Span)
	case p.at(token.Ident) && p.peekN(1).Kind == token.KwIn:
		return p.parseForIn(kw.Span, false)
	case p.at(token.LParen) && p.peekN(1).Kind == token.Ident && p.peekN(2).Kind == token.KwIn:
		p.advance()
		return p.parseForIn(kw.Span, true)
	}

	cond, ok := p.parseHeaderExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.skipNewlines()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), ast.ForStmt{
		Form: ast.ForCond,
		Cond: cond,
		Body: body,
	}), true
}

// forHeaderIsClassic ищет ';' на глубине первой скобки заголовка.
func (p *Parser) forHeaderIsClassic() bool {
	depth := 0
	for i := 0; ; i++ {
		switch p.peekN(i).Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth <= 0 {
				return false
			}
		case token.Semicolon:
			if depth == 1 {
				return true
			}
		case token.EOF:
			return false
		}
	}
}

func (p *Parser) parseForClassic(start source.Span) (ast.StmtID, bool) {
	p.advance() // '('
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	var f ast.ForStmt
	f.Form = ast.ForClassic
	var ok bool

	if !p.at(token.Semicolon) {
		if p.at(token.KwVar) {
			f.Init, ok = p.parseVarStmt()
		} else {
			f.Init, ok = p.parseExprStmt()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for-loop initializer"); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.Semicolon) {
		if f.Cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for-loop condition"); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if f.Post, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for-loop header"); !ok {
		return ast.NoStmtID, false
	}

	p.skipNewlines()
	p.noStructLit = saved
	if f.Body, ok = p.parseBlock(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(start.Cover(p.lastSpan), f), true
}

func (p *Parser) parseForIn(start source.Span, parenthesized bool) (ast.StmtID, bool) {
	varTok := p.advance()
	p.advance() // in

	var (
		iterable ast.ExprID
		ok       bool
	)
	if parenthesized {
		iterable, ok = p.parseNestedExpr()
		if ok {
			_, ok = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for-in header")
		}
	} else {
		iterable, ok = p.parseHeaderExpr()
	}
	if !ok {
		return ast.NoStmtID, false
	}

	p.skipNewlines()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(start.Cover(p.lastSpan), ast.ForStmt{
		Form:     ast.ForIn,
		Var:      p.arenas.StringsInterner.Intern(varTok.Text),
		VarSpan:  varTok.Span,
		Iterable: iterable,
		Body:     body,
	}), true
}

func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	kw := p.advance()
	data, ok := p.parseSwitchBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(kw.Span.Cover(p.lastSpan), data), true
}

// parseSwitchBody — общий разбор `subject { arms }` для инструкции и выражения.
// Ключевое слово switch уже съедено.
func (p *Parser) parseSwitchBody() (ast.SwitchData, bool) {
	subject, ok := p.parseHeaderExpr()
	if !ok {
		return ast.SwitchData{}, false
	}
	p.skipNewlines()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch subject"); !ok {
		return ast.SwitchData{}, false
	}
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	data := ast.SwitchData{Subject: subject}
	for {
		p.skipSeparators()
		if p.at(token.RBrace) || p.at(token.EOF) || p.atItemStart() {
			break
		}
		start := p.pos
		arm, ok := p.parseSwitchCase()
		if ok {
			data.Cases = append(data.Cases, arm)
			continue
		}
		p.resyncArm()
		if p.pos == start {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch"); !ok {
		return ast.SwitchData{}, false
	}
	return data, true
}

// parseSwitchCase — `[case] pattern -> stmt`, где pattern это default, some,
// none или выражение вида C.r / V.Int / литерал.
func (p *Parser) parseSwitchCase() (ast.SwitchCase, bool) {
	startSpan := p.peek().Span
	if p.at(token.KwCase) {
		p.advance()
	}

	var pat ast.Pattern
	switch p.peek().Kind {
	case token.KwDefault:
		pat = ast.Pattern{Kind: ast.PatDefault, Span: p.advance().Span}
	case token.KwSome:
		pat = ast.Pattern{Kind: ast.PatSome, Span: p.advance().Span}
	case token.KwNone:
		pat = ast.Pattern{Kind: ast.PatNone, Span: p.advance().Span}
	case token.Arrow:
		p.err(diag.SynExpectPattern, "expected case pattern before '->'")
		return ast.SwitchCase{}, false
	default:
		expr, ok := p.parseHeaderExpr()
		if !ok {
			return ast.SwitchCase{}, false
		}
		pat = ast.Pattern{Kind: ast.PatExpr, Span: p.arenas.Exprs.Get(expr).Span, Expr: expr}
	}

	if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after case pattern"); !ok {
		return ast.SwitchCase{}, false
	}
	p.skipNewlines()
	body, ok := p.parseStmt()
	if !ok {
		return ast.SwitchCase{}, false
	}
	return ast.SwitchCase{
		Span:    startSpan.Cover(p.lastSpan),
		Pattern: pat,
		Body:    body,
	}, true
}

// resyncArm — до конца строки или до '}' switch'а.
func (p *Parser) resyncArm() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		if p.advance().Kind == token.Newline {
			return
		}
	}
}
