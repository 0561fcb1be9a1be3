package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/token"
)

// parseBlock — `{ stmt* }`. Ошибки внутри блока восстанавливаются на уровне
// инструкций, так что одна функция может дать несколько диагностик.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	var stmts []ast.StmtID
	for {
		p.skipSeparators()
		if p.at(token.RBrace) || p.at(token.EOF) || p.atItemStart() {
			break
		}
		start := p.pos
		stmtID, ok := p.parseStmt()
		if ok && p.isSimpleStmt(stmtID) && !p.atStmtEnd() {
			p.err(diag.SynExpectStatementEnd, "expected newline or ';' after statement, got "+describe(p.peek()))
			ok = false
		}
		if stmtID.IsValid() {
			stmts = append(stmts, stmtID)
		}
		if !ok {
			p.resync()
			if p.pos == start {
				p.advance()
			}
		}
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(open.Span.Cover(p.lastSpan), stmts), true
}

// atItemStart — внутри блока встретилось объявление верхнего уровня:
// скорее всего, не закрыта предыдущая функция.
func (p *Parser) atItemStart() bool {
	switch p.peek().Kind {
	case token.KwFunc, token.KwStruct, token.KwEnum, token.KwUnion:
		return true
	}
	return false
}

func (p *Parser) atStmtEnd() bool {
	switch p.peek().Kind {
	case token.Newline, token.Semicolon, token.RBrace, token.EOF:
		return true
	}
	return false
}

// isSimpleStmt — var/expr/return требуют терминатора; составные инструкции нет.
func (p *Parser) isSimpleStmt(id ast.StmtID) bool {
	if !id.IsValid() {
		return false
	}
	switch p.arenas.Stmts.Get(id).Kind {
	case ast.StmtVar, ast.StmtExpr, ast.StmtReturn:
		return true
	}
	return false
}

// parseStmt выбирает инструкцию по первому токену; по умолчанию — выражение.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar:
		return p.parseVarStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	default:
		return p.parseExprStmt()
	}
}

// var name[: Type] = value
func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("variable name")
	if !ok {
		return ast.NoStmtID, false
	}
	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' with an initializer in variable declaration"); !ok {
		return ast.NoStmtID, false
	}
	p.skipNewlines()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVar(kw.Span.Cover(p.lastSpan), ast.VarStmt{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Value:    value,
	}), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	if p.atStmtEnd() {
		return p.arenas.Stmts.NewReturn(kw.Span, ast.NoExprID), true
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr), true
}
