package interp

import (
	"math"
	"strings"

	"slang/internal/ast"
	"slang/internal/source"
)

func (in *Interpreter) evalBinary(data *ast.ExprBinaryData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	switch data.Op {
	case ast.ExprBinaryLogicalAnd, ast.ExprBinaryLogicalOr:
		left, err := in.evalBool(data.Left, scope)
		if err != nil {
			return Value{}, err
		}
		if data.Op == ast.ExprBinaryLogicalAnd && !left {
			return BoolValue(false), nil
		}
		if data.Op == ast.ExprBinaryLogicalOr && left {
			return BoolValue(true), nil
		}
		right, err := in.evalBool(data.Right, scope)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right), nil
	}

	left, err := in.eval(data.Left, scope)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(data.Right, scope)
	if err != nil {
		return Value{}, err
	}
	switch {
	case data.Op == ast.ExprBinaryEq:
		return BoolValue(left.Equal(right)), nil
	case data.Op == ast.ExprBinaryNotEq:
		return BoolValue(!left.Equal(right)), nil
	case data.Op.IsComparison():
		return in.compare(data.Op, left, right, span)
	}
	return in.arith(data.Op, left, right, span)
}

// arith applies + - * / %. Int arithmetic wraps on overflow; division and
// modulo by zero fail for both Int and Float.
func (in *Interpreter) arith(op ast.ExprBinaryOp, left, right Value, span source.Span) (Value, *RuntimeError) {
	if left.Kind != right.Kind {
		return Value{}, in.mismatch(span, left.Kind.String(), right)
	}
	switch left.Kind {
	case KindInt:
		a, b := left.Int, right.Int
		switch op {
		case ast.ExprBinaryAdd:
			return IntValue(a + b), nil
		case ast.ExprBinarySub:
			return IntValue(a - b), nil
		case ast.ExprBinaryMul:
			return IntValue(a * b), nil
		case ast.ExprBinaryDiv:
			if b == 0 {
				return Value{}, in.divByZero(span, "division")
			}
			return IntValue(a / b), nil
		case ast.ExprBinaryMod:
			if b == 0 {
				return Value{}, in.divByZero(span, "modulo")
			}
			return IntValue(a % b), nil
		}
	case KindFloat:
		a, b := left.Float, right.Float
		switch op {
		case ast.ExprBinaryAdd:
			return FloatValue(a + b), nil
		case ast.ExprBinarySub:
			return FloatValue(a - b), nil
		case ast.ExprBinaryMul:
			return FloatValue(a * b), nil
		case ast.ExprBinaryDiv:
			if b == 0 {
				return Value{}, in.divByZero(span, "division")
			}
			return FloatValue(a / b), nil
		case ast.ExprBinaryMod:
			if b == 0 {
				return Value{}, in.divByZero(span, "modulo")
			}
			return FloatValue(math.Mod(a, b)), nil
		}
	case KindString:
		if op == ast.ExprBinaryAdd {
			return StringValue(left.Str + right.Str), nil
		}
	}
	return Value{}, in.mismatch(span, "operands supporting '"+op.String()+"'", left)
}

func (in *Interpreter) compare(op ast.ExprBinaryOp, left, right Value, span source.Span) (Value, *RuntimeError) {
	if left.Kind != right.Kind {
		return Value{}, in.mismatch(span, left.Kind.String(), right)
	}
	var c int
	switch left.Kind {
	case KindInt:
		c = cmpOrdered(left.Int, right.Int)
	case KindFloat:
		c = cmpOrdered(left.Float, right.Float)
	case KindString:
		c = strings.Compare(left.Str, right.Str)
	default:
		return Value{}, in.mismatch(span, "Int, Float or String", left)
	}
	switch op {
	case ast.ExprBinaryLess:
		return BoolValue(c < 0), nil
	case ast.ExprBinaryLessEq:
		return BoolValue(c <= 0), nil
	case ast.ExprBinaryGreater:
		return BoolValue(c > 0), nil
	default:
		return BoolValue(c >= 0), nil
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (in *Interpreter) unary(op ast.ExprUnaryOp, v Value, span source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.ExprUnaryNot:
		if v.Kind != KindBool {
			return Value{}, in.mismatch(span, "Bool", v)
		}
		return BoolValue(!v.Bool), nil
	case ast.ExprUnaryMinus:
		switch v.Kind {
		case KindInt:
			return IntValue(-v.Int), nil
		case KindFloat:
			return FloatValue(-v.Float), nil
		}
		return Value{}, in.mismatch(span, "Int or Float", v)
	}
	return Value{}, in.mismatch(span, "operand", v)
}
