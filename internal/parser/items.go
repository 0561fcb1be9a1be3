package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/token"
)

// func name(a: T, b: U) -> R { ... }
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	fnTok := p.advance()
	name, nameSpan, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}

	var params []ast.FnParam
	p.skipNewlines()
	for !p.at(token.RParen) {
		pname, pspan, ok := p.parseIdent("parameter name")
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
			return ast.NoItemID, false
		}
		typ, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		params = append(params, ast.FnParam{Name: pname, NameSpan: pspan, Type: typ})
		p.skipNewlines()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		p.skipNewlines()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return ast.NoItemID, false
	}

	result := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		if result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}

	p.skipNewlines()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}
	span := fnTok.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewFn(span, ast.FnItem{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Result:   result,
		Body:     body,
	}), true
}

// struct P { x: Int, y: Int } — поля через запятую или перевод строки.
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("struct name")
	if !ok {
		return ast.NoItemID, false
	}
	p.skipNewlines()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !ok {
		return ast.NoItemID, false
	}

	var fields []ast.StructField
	for {
		p.skipFieldSeparators()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		if p.at(token.KwVar) {
			p.advance()
		}
		fname, fspan, ok := p.parseIdent("field name")
		if ok {
			if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); ok {
				var typ ast.TypeID
				if typ, ok = p.parseType(); ok {
					fields = append(fields, ast.StructField{Name: fname, NameSpan: fspan, Type: typ})
				}
			}
		}
		if !ok {
			p.resyncMember()
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewStruct(kw.Span.Cover(p.lastSpan), ast.StructDecl{
		Name:     name,
		NameSpan: nameSpan,
		Fields:   fields,
	}), true
}

// enum C { case r, g, b } — допускается несколько строк `case`.
func (p *Parser) parseEnumItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("enum name")
	if !ok {
		return ast.NoItemID, false
	}
	p.skipNewlines()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}

	var cases []ast.EnumCase
	for {
		p.skipFieldSeparators()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		if p.at(token.KwCase) {
			p.advance()
		}
		cname, cspan, ok := p.parseIdent("enum case name")
		if !ok {
			p.resyncMember()
			continue
		}
		cases = append(cases, ast.EnumCase{Name: cname, NameSpan: cspan})
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewEnum(kw.Span.Cover(p.lastSpan), ast.EnumDecl{
		Name:     name,
		NameSpan: nameSpan,
		Cases:    cases,
	}), true
}

// union V = Int | String | P
func (p *Parser) parseUnionItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("union name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after union name"); !ok {
		return ast.NoItemID, false
	}
	p.skipNewlines()
	if p.at(token.Pipe) {
		p.advance()
	}

	var variants []ast.UnionVariant
	for {
		typ, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		variants = append(variants, ast.UnionVariant{Type: typ, Span: p.arenas.Types.Get(typ).Span})
		if !p.at(token.Pipe) && !(p.at(token.Newline) && p.peekN(1).Kind == token.Pipe) {
			break
		}
		p.skipNewlines()
		p.advance() // '|'
		p.skipNewlines()
	}
	return p.arenas.Items.NewUnion(kw.Span.Cover(p.lastSpan), ast.UnionDecl{
		Name:     name,
		NameSpan: nameSpan,
		Variants: variants,
	}), true
}

func (p *Parser) skipFieldSeparators() {
	for p.at(token.Newline) || p.at(token.Comma) || p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncMember прокручивает до следующего члена struct/enum, не съедая '}'.
func (p *Parser) resyncMember() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		k := p.advance().Kind
		if k == token.Newline || k == token.Comma || k == token.Semicolon {
			return
		}
	}
}
