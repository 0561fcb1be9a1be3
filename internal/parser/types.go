package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/token"
)

// parseType разбирает Name, Set<T>, [T], [K: V] и суффикс '?'.
func (p *Parser) parseType() (ast.TypeID, bool) {
	var id ast.TypeID
	switch {
	case p.at(token.Ident) && p.peek().Text == "Set" && p.peekN(1).Kind == token.Lt:
		nameTok := p.advance()
		p.advance() // '<'
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.Gt, diag.SynExpectType, "expected '>' to close Set<...>"); !ok {
			return ast.NoTypeID, false
		}
		id = p.arenas.Types.NewSet(nameTok.Span.Cover(p.lastSpan), nameTok.Span,
			p.arenas.StringsInterner.Intern(nameTok.Text), elem)

	case p.at(token.Ident):
		tok := p.advance()
		id = p.arenas.Types.NewNamed(tok.Span, p.arenas.StringsInterner.Intern(tok.Text))

	case p.at(token.LBracket):
		open := p.advance()
		first, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		if p.at(token.Colon) {
			p.advance()
			value, ok := p.parseType()
			if !ok {
				return ast.NoTypeID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close dictionary type"); !ok {
				return ast.NoTypeID, false
			}
			id = p.arenas.Types.NewDict(open.Span.Cover(p.lastSpan), first, value)
		} else {
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array type"); !ok {
				return ast.NoTypeID, false
			}
			id = p.arenas.Types.NewArray(open.Span.Cover(p.lastSpan), first)
		}

	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(p.peek()))
		return ast.NoTypeID, false
	}

	for p.at(token.Question) {
		q := p.advance()
		id = p.arenas.Types.NewOptional(p.arenas.Types.Get(id).Span.Cover(q.Span), id)
	}
	return id, true
}
