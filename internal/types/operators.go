package types

import "slang/internal/ast"

// FamilyMask groups types by what operators may do with them.
type FamilyMask uint8

const (
	FamilyBool FamilyMask = 1 << iota
	FamilyInt
	FamilyFloat
	FamilyString
	// FamilyOther covers every composite and nominal type.
	FamilyOther

	FamilyNone    FamilyMask = 0
	FamilyNumeric            = FamilyInt | FamilyFloat
	// ключи словаря и элементы множества
	FamilyHashable = FamilyBool | FamilyNumeric | FamilyString
	FamilyAny      = FamilyHashable | FamilyOther
)

// Rule says which operand families an operator takes and whether it yields
// Bool or the operand type. Operands of a binary rule share one type; there
// are no implicit conversions.
type Rule struct {
	Operands     FamilyMask
	YieldsBool   bool
	ShortCircuit bool
}

var binaryRules = map[ast.ExprBinaryOp]Rule{
	ast.ExprBinaryAdd: {Operands: FamilyNumeric | FamilyString},
	ast.ExprBinarySub: {Operands: FamilyNumeric},
	ast.ExprBinaryMul: {Operands: FamilyNumeric},
	ast.ExprBinaryDiv: {Operands: FamilyNumeric},
	ast.ExprBinaryMod: {Operands: FamilyNumeric},

	ast.ExprBinaryLess:      {Operands: FamilyNumeric | FamilyString, YieldsBool: true},
	ast.ExprBinaryLessEq:    {Operands: FamilyNumeric | FamilyString, YieldsBool: true},
	ast.ExprBinaryGreater:   {Operands: FamilyNumeric | FamilyString, YieldsBool: true},
	ast.ExprBinaryGreaterEq: {Operands: FamilyNumeric | FamilyString, YieldsBool: true},

	ast.ExprBinaryEq:    {Operands: FamilyAny, YieldsBool: true},
	ast.ExprBinaryNotEq: {Operands: FamilyAny, YieldsBool: true},

	ast.ExprBinaryLogicalAnd: {Operands: FamilyBool, YieldsBool: true, ShortCircuit: true},
	ast.ExprBinaryLogicalOr:  {Operands: FamilyBool, YieldsBool: true, ShortCircuit: true},
}

var unaryRules = map[ast.ExprUnaryOp]Rule{
	ast.ExprUnaryMinus: {Operands: FamilyNumeric},
	ast.ExprUnaryNot:   {Operands: FamilyBool, YieldsBool: true},
}

func BinaryRule(op ast.ExprBinaryOp) (Rule, bool) {
	r, ok := binaryRules[op]
	return r, ok
}

func UnaryRule(op ast.ExprUnaryOp) (Rule, bool) {
	r, ok := unaryRules[op]
	return r, ok
}

// Result picks the type an accepted application produces.
func (r Rule) Result(operand, boolType TypeID) TypeID {
	if r.YieldsBool {
		return boolType
	}
	return operand
}

// Admits reports whether f falls inside the mask.
func (m FamilyMask) Admits(f FamilyMask) bool {
	return f != FamilyNone && m&f == f
}

// Family classifies a type for operator matching.
func (in *Interner) Family(id TypeID) FamilyMask {
	switch in.KindOf(id) {
	case KindInvalid:
		return FamilyNone
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindString:
		return FamilyString
	default:
		return FamilyOther
	}
}

// IsHashable reports whether the type may key a dictionary or fill a set.
func (in *Interner) IsHashable(id TypeID) bool {
	return FamilyHashable.Admits(in.Family(id))
}

// IsError reports the poison type.
func (in *Interner) IsError(id TypeID) bool {
	return in.KindOf(id) == KindError
}
