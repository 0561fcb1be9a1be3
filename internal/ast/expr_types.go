package ast

import (
	"slang/internal/source"
)

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprStringLit
	ExprBoolLit
	ExprNil
	ExprInterp
	ExprIdent
	ExprBinary
	ExprUnary
	ExprCall
	ExprMember
	ExprStructLit
	ExprSwitch
	ExprArray
	ExprDict
	ExprIndex
	ExprAssign
)

var exprKindNames = [...]string{
	ExprIntLit:    "IntLit",
	ExprFloatLit:  "FloatLit",
	ExprStringLit: "StringLit",
	ExprBoolLit:   "BoolLit",
	ExprNil:       "Nil",
	ExprInterp:    "Interp",
	ExprIdent:     "Ident",
	ExprBinary:    "Binary",
	ExprUnary:     "Unary",
	ExprCall:      "Call",
	ExprMember:    "Member",
	ExprStructLit: "StructLit",
	ExprSwitch:    "Switch",
	ExprArray:     "Array",
	ExprDict:      "Dict",
	ExprIndex:     "Index",
	ExprAssign:    "Assign",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsArithmetic reports + - * / %.
func (op ExprBinaryOp) IsArithmetic() bool { return op <= ExprBinaryMod }

// IsComparison reports < <= > >=.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryLess && op <= ExprBinaryGreaterEq
}

type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

// ExprAssignOp covers plain and compound assignment.
type ExprAssignOp uint8

const (
	ExprAssignPlain ExprAssignOp = iota
	ExprAssignAdd
	ExprAssignSub
	ExprAssignMul
	ExprAssignDiv
	ExprAssignMod
)

func (op ExprAssignOp) String() string {
	switch op {
	case ExprAssignAdd:
		return "+="
	case ExprAssignSub:
		return "-="
	case ExprAssignMul:
		return "*="
	case ExprAssignDiv:
		return "/="
	case ExprAssignMod:
		return "%="
	}
	return "="
}

// Binary maps a compound assignment to its arithmetic operator.
func (op ExprAssignOp) Binary() (ExprBinaryOp, bool) {
	switch op {
	case ExprAssignAdd:
		return ExprBinaryAdd, true
	case ExprAssignSub:
		return ExprBinarySub, true
	case ExprAssignMul:
		return ExprBinaryMul, true
	case ExprAssignDiv:
		return ExprBinaryDiv, true
	case ExprAssignMod:
		return ExprBinaryMod, true
	}
	return 0, false
}

// ExprLiteralData holds the raw text of numbers and the decoded text of strings.
type ExprLiteralData struct {
	Text string
}

// InterpPart is literal text when Expr is NoExprID, otherwise an embedded expression.
type InterpPart struct {
	Text string
	Expr ExprID
}

type ExprInterpData struct {
	Parts []InterpPart
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Target    ExprID
	Field     source.StringID
	FieldSpan source.Span
}

type StructLitField struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ExprStructData struct {
	Type     source.StringID
	TypeSpan source.Span
	Fields   []StructLitField
}

type ExprArrayData struct {
	Elems []ExprID
}

type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprAssignData struct {
	Op     ExprAssignOp
	Target ExprID
	Value  ExprID
}
