package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseHeaderExpr разбирает выражение заголовка if/for/switch, где `Name {`
// открывает тело, а не литерал структуры.
func (p *Parser) parseHeaderExpr() (ast.ExprID, bool) {
	saved := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = saved }()
	return p.parseExpr()
}

// parseNestedExpr — выражение внутри скобок, где литералы структур снова разрешены.
func (p *Parser) parseNestedExpr() (ast.ExprID, bool) {
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()
	return p.parseExpr()
}

// parseBinaryExpr реализует precedence climbing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		info, isInfix := infixOps[p.peek().Kind]
		if !isInfix || info.prec < minPrec {
			break
		}
		p.advance()

		right, ok := p.parseBinaryExpr(info.nextMinPrec())
		if !ok {
			return ast.NoExprID, false
		}

		leftSpan := p.arenas.Exprs.Get(left).Span
		finalSpan := leftSpan.Cover(p.arenas.Exprs.Get(right).Span)

		if info.prec == precAssignment {
			if !p.isAssignTarget(left) {
				p.report(diag.SynInvalidAssignTarget, diag.SevError, leftSpan,
					"invalid assignment target: expected a variable, field or subscript")
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewAssign(finalSpan, info.assign, left, right)
			continue
		}
		left = p.arenas.Exprs.NewBinary(finalSpan, info.binary, left, right)
	}

	return left, true
}

func (p *Parser) isAssignTarget(id ast.ExprID) bool {
	switch p.arenas.Exprs.Get(id).Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	}
	return false
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := prefixOps[p.peek().Kind]
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		exprSpan := p.arenas.Exprs.Get(expr).Span
		finalSpan := prefixes[i].span.Cover(exprSpan)
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr обрабатывает постфиксные операторы: вызов, поле, индекс.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallSuffix(expr)
		case token.Dot:
			expr, ok = p.parseMemberSuffix(expr)
		case token.LBracket:
			expr, ok = p.parseIndexSuffix(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('
	args, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewCall(span, target, args), true
}

func (p *Parser) parseMemberSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '.'
	name, nameSpan, ok := p.parseIdent("member name after '.'")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(nameSpan)
	return p.arenas.Exprs.NewMember(span, target, name, nameSpan), true
}

func (p *Parser) parseIndexSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '['
	p.skipNewlines()
	index, ok := p.parseNestedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after subscript"); !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewIndex(span, target, index), true
}

// parseExprList разбирает `a, b, c` до закрывающего токена включительно.
func (p *Parser) parseExprList(closer token.Kind, code diag.Code, msg string) ([]ast.ExprID, bool) {
	var out []ast.ExprID
	p.skipNewlines()
	for !p.at(closer) {
		e, ok := p.parseNestedExpr()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		p.skipNewlines()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		p.skipNewlines()
	}
	if _, ok := p.expect(closer, code, msg); !ok {
		return nil, false
	}
	return out, true
}

// parsePrimaryExpr — литералы, идентификаторы, скобки, коллекции, switch.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprIntLit, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprFloatLit, tok.Text), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprBoolLit, tok.Text), true
	case token.KwNil, token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewNil(tok.Span), true
	case token.StringLit:
		return p.parseStringExpr()
	case token.Ident:
		p.advance()
		if !p.noStructLit && p.at(token.LBrace) && isTypeName(tok.Text) {
			return p.parseStructLiteral(tok)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.LParen:
		p.advance()
		p.skipNewlines()
		inner, ok := p.parseNestedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		p.skipNewlines()
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression"); !ok {
			return ast.NoExprID, false
		}
		return inner, true
	case token.LBracket:
		return p.parseCollectionLiteral()
	case token.KwSwitch:
		start := p.advance()
		data, ok := p.parseSwitchBody()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewSwitch(start.Span.Cover(p.lastSpan), data), true
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

// parseStructLiteral — `Name { field: value, ... }`, имя уже съедено.
func (p *Parser) parseStructLiteral(nameTok token.Token) (ast.ExprID, bool) {
	p.advance() // '{'
	var fields []ast.StructLitField
	for {
		p.skipFieldSeparators()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		name, nameSpan, ok := p.parseIdent("field name in struct literal")
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return ast.NoExprID, false
		}
		p.skipNewlines()
		value, ok := p.parseNestedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		fields = append(fields, ast.StructLitField{Name: name, NameSpan: nameSpan, Value: value})
		p.skipNewlines()
		if !p.at(token.Comma) && !p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "expected ',' or '}' in struct literal, got "+describe(p.peek()))
			return ast.NoExprID, false
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStruct(nameTok.Span.Cover(p.lastSpan), ast.ExprStructData{
		Type:     p.arenas.StringsInterner.Intern(nameTok.Text),
		TypeSpan: nameTok.Span,
		Fields:   fields,
	}), true
}

// parseCollectionLiteral: `[a, b]` — массив, `[k: v, ...]` — словарь, `[:]` — пустой словарь.
func (p *Parser) parseCollectionLiteral() (ast.ExprID, bool) {
	open := p.advance() // '['
	p.skipNewlines()

	if p.at(token.Colon) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		closeTok := p.advance()
		return p.arenas.Exprs.NewDict(open.Span.Cover(closeTok.Span), nil), true
	}
	if p.at(token.RBracket) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewArray(open.Span.Cover(closeTok.Span), nil), true
	}

	first, ok := p.parseNestedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	p.skipNewlines()
	if p.at(token.Colon) {
		return p.parseDictRest(open, first)
	}

	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		p.skipNewlines()
		if p.at(token.RBracket) {
			break // висячая запятая
		}
		e, ok := p.parseNestedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
		p.skipNewlines()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(open.Span.Cover(p.lastSpan), elems), true
}

func (p *Parser) parseDictRest(open token.Token, firstKey ast.ExprID) (ast.ExprID, bool) {
	var entries []ast.DictEntry
	key := firstKey
	for {
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' between dictionary key and value"); !ok {
			return ast.NoExprID, false
		}
		p.skipNewlines()
		value, ok := p.parseNestedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		p.skipNewlines()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		p.skipNewlines()
		if p.at(token.RBracket) {
			break
		}
		if key, ok = p.parseNestedExpr(); !ok {
			return ast.NoExprID, false
		}
		p.skipNewlines()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close dictionary literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(open.Span.Cover(p.lastSpan), entries), true
}
