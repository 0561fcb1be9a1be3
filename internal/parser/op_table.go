package parser

import (
	"slang/internal/ast"
	"slang/internal/token"
)

// Уровни приоритета, от слабого к сильному. Присваивание правоассоциативно,
// остальные уровни левоассоциативны.
const (
	precNone = iota
	precAssignment
	precLogicalOr
	precLogicalAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
)

// infixOp describes a token in infix position. Exactly one of binary and
// assign is meaningful, chosen by prec == precAssignment.
type infixOp struct {
	prec   int
	binary ast.ExprBinaryOp
	assign ast.ExprAssignOp
}

var infixOps = map[token.Kind]infixOp{
	token.Assign:        {prec: precAssignment, assign: ast.ExprAssignPlain},
	token.PlusAssign:    {prec: precAssignment, assign: ast.ExprAssignAdd},
	token.MinusAssign:   {prec: precAssignment, assign: ast.ExprAssignSub},
	token.StarAssign:    {prec: precAssignment, assign: ast.ExprAssignMul},
	token.SlashAssign:   {prec: precAssignment, assign: ast.ExprAssignDiv},
	token.PercentAssign: {prec: precAssignment, assign: ast.ExprAssignMod},

	token.OrOr:   {prec: precLogicalOr, binary: ast.ExprBinaryLogicalOr},
	token.AndAnd: {prec: precLogicalAnd, binary: ast.ExprBinaryLogicalAnd},

	token.EqEq:   {prec: precEquality, binary: ast.ExprBinaryEq},
	token.BangEq: {prec: precEquality, binary: ast.ExprBinaryNotEq},

	token.Lt:   {prec: precComparison, binary: ast.ExprBinaryLess},
	token.LtEq: {prec: precComparison, binary: ast.ExprBinaryLessEq},
	token.Gt:   {prec: precComparison, binary: ast.ExprBinaryGreater},
	token.GtEq: {prec: precComparison, binary: ast.ExprBinaryGreaterEq},

	token.Plus:    {prec: precAdditive, binary: ast.ExprBinaryAdd},
	token.Minus:   {prec: precAdditive, binary: ast.ExprBinarySub},
	token.Star:    {prec: precMultiplicative, binary: ast.ExprBinaryMul},
	token.Slash:   {prec: precMultiplicative, binary: ast.ExprBinaryDiv},
	token.Percent: {prec: precMultiplicative, binary: ast.ExprBinaryMod},
}

// nextMinPrec is the floor for the right operand.
func (op infixOp) nextMinPrec() int {
	if op.prec == precAssignment {
		return op.prec
	}
	return op.prec + 1
}

var prefixOps = map[token.Kind]ast.ExprUnaryOp{
	token.Minus: ast.ExprUnaryMinus,
	token.Bang:  ast.ExprUnaryNot,
}
