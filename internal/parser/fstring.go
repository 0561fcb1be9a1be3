package parser

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/token"
)

// parseStringExpr собирает строку из сегментов лексера:
// StringLit (InterpStart expr InterpEnd StringLit)*.
// Без интерполяции получается обычный ExprStringLit.
func (p *Parser) parseStringExpr() (ast.ExprID, bool) {
	first := p.advance()
	if !p.at(token.InterpStart) {
		return p.arenas.Exprs.NewLiteral(first.Span, ast.ExprStringLit, first.Text), true
	}

	var parts []ast.InterpPart
	if first.Text != "" {
		parts = append(parts, ast.InterpPart{Text: first.Text})
	}
	for p.at(token.InterpStart) {
		p.advance()
		inner, ok := p.parseNestedExpr()
		if !ok {
			return ast.NoExprID, false
		}
		parts = append(parts, ast.InterpPart{Expr: inner})
		if _, ok := p.expect(token.InterpEnd, diag.SynUnclosedParen, "expected ')' to close interpolation"); !ok {
			return ast.NoExprID, false
		}
		seg, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected string continuation after interpolation")
		if !ok {
			return ast.NoExprID, false
		}
		if seg.Text != "" {
			parts = append(parts, ast.InterpPart{Text: seg.Text})
		}
	}
	return p.arenas.Exprs.NewInterp(first.Span.Cover(p.lastSpan), parts), true
}
