package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

func (tc *typeChecker) checkBinary(id ast.ExprID, span source.Span) types.TypeID {
	data, _ := tc.builder.Exprs.Binary(id)
	b := tc.types.Builtins()

	switch data.Op {
	case ast.ExprBinaryEq, ast.ExprBinaryNotEq:
		return tc.checkEquality(data, span)
	case ast.ExprBinaryLogicalAnd, ast.ExprBinaryLogicalOr:
		lt := tc.checkExpr(data.Left, b.Bool)
		rt := tc.checkExpr(data.Right, b.Bool)
		if tc.isError(lt) || tc.isError(rt) {
			return b.Bool
		}
		if lt != b.Bool || rt != b.Bool {
			tc.report(diag.SemaInvalidOperands, span,
				"operator '%s' requires Bool operands, found %s and %s", data.Op, tc.label(lt), tc.label(rt))
		}
		return b.Bool
	}

	lt := tc.checkExpr(data.Left, types.NoTypeID)
	rt := tc.checkExpr(data.Right, lt)
	return tc.applyBinary(data.Op, lt, rt, span)
}

// applyBinary resolves an arithmetic or relational operator against the
// operator table. Both operands must already have the same type.
func (tc *typeChecker) applyBinary(op ast.ExprBinaryOp, lt, rt types.TypeID, span source.Span) types.TypeID {
	b := tc.types.Builtins()
	if tc.isError(lt) || tc.isError(rt) {
		if op.IsComparison() {
			return b.Bool
		}
		return tc.errorType()
	}
	rule, ok := types.BinaryRule(op)
	if ok && lt == rt && rule.Operands.Admits(tc.types.Family(lt)) {
		return rule.Result(lt, b.Bool)
	}
	tc.report(diag.SemaInvalidOperands, span,
		"invalid operands to '%s': %s and %s", op, tc.label(lt), tc.label(rt))
	if op.IsComparison() {
		return b.Bool
	}
	return tc.errorType()
}

func (tc *typeChecker) checkEquality(data *ast.ExprBinaryData, span source.Span) types.TypeID {
	b := tc.types.Builtins()
	var lt, rt types.TypeID
	if tc.isNilLit(data.Left) {
		rt = tc.checkExpr(data.Right, types.NoTypeID)
		lt = tc.checkExpr(data.Left, rt)
	} else {
		lt = tc.checkExpr(data.Left, types.NoTypeID)
		rt = tc.checkExpr(data.Right, lt)
	}
	if tc.isError(lt) || tc.isError(rt) {
		return b.Bool
	}
	if tc.types.KindOf(lt) == types.KindVoid || tc.types.KindOf(rt) == types.KindVoid {
		tc.report(diag.SemaVoidValue, span, "cannot compare Void values")
		return b.Bool
	}
	// x == 5 при x: Int? сравнивает с обёрнутым значением
	if lt == rt || tc.coerce(data.Right, rt, lt) || tc.coerce(data.Left, lt, rt) {
		return b.Bool
	}
	tc.report(diag.SemaInvalidOperands, span, "cannot compare %s and %s", tc.label(lt), tc.label(rt))
	return b.Bool
}

func (tc *typeChecker) checkUnary(id ast.ExprID, span source.Span, expected types.TypeID) types.TypeID {
	data, _ := tc.builder.Exprs.Unary(id)
	b := tc.types.Builtins()
	rule, _ := types.UnaryRule(data.Op)
	hint := expected
	if data.Op == ast.ExprUnaryNot {
		hint = b.Bool
	}
	t := tc.checkExpr(data.Operand, hint)
	if tc.isError(t) {
		return rule.Result(t, b.Bool)
	}
	if !rule.Operands.Admits(tc.types.Family(t)) {
		tc.report(diag.SemaInvalidOperands, span, "invalid operand to unary '%s': %s", data.Op, tc.label(t))
		return rule.Result(tc.errorType(), b.Bool)
	}
	return rule.Result(t, b.Bool)
}

func (tc *typeChecker) isNilLit(id ast.ExprID) bool {
	expr := tc.builder.Exprs.Get(id)
	return expr != nil && expr.Kind == ast.ExprNil
}

// checkAssign handles plain and compound assignment; the value of the
// expression is the target's type.
func (tc *typeChecker) checkAssign(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Assign(id)
	tt := tc.checkPlace(data.Target)
	vt := tc.checkExpr(data.Value, tt)
	if tc.isError(tt) {
		return tt
	}
	span := tc.exprSpan(id)
	if binop, compound := data.Op.Binary(); compound {
		tc.applyBinary(binop, tt, vt, span)
		return tt
	}
	tc.expectAssignable(diag.SemaTypeMismatch, data.Value, vt, tt,
		"cannot assign a value of type %s to %s", tc.label(vt), tc.label(tt))
	return tt
}

// checkPlace types an assignable location: a variable, a struct field of a
// place, or an element of an array or dictionary place. A dictionary element
// place has the value type, not its optional.
func (tc *typeChecker) checkPlace(id ast.ExprID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return tc.errorType()
	}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := tc.builder.Exprs.Ident(id)
		b, ok := tc.lookup(ident.Name)
		if !ok {
			return tc.recordType(id, tc.checkIdent(id, expr.Span))
		}
		tc.addRef(expr.Span, b.span)
		switch {
		case b.fn:
			tc.report(diag.SemaNotAssignable, expr.Span, "cannot assign to function '%s'", tc.name(ident.Name))
			return tc.recordType(id, tc.errorType())
		case b.narrowed:
			tc.report(diag.SemaNarrowedAssign, expr.Span,
				"cannot assign to '%s' inside a switch case that narrows it", tc.name(ident.Name))
			return tc.recordType(id, tc.errorType())
		}
		return tc.recordType(id, b.typ)
	case ast.ExprMember:
		m, _ := tc.builder.Exprs.Member(id)
		if _, static := tc.staticTypeName(m.Target); static {
			tc.report(diag.SemaNotAssignable, expr.Span, "cannot assign to a type member")
			return tc.recordType(id, tc.errorType())
		}
		owner := tc.checkPlace(m.Target)
		if tc.isError(owner) {
			return tc.recordType(id, owner)
		}
		if _, ok := tc.types.StructInfo(owner); !ok {
			tc.report(diag.SemaNotAssignable, expr.Span, "cannot assign to member '%s' of %s", tc.name(m.Field), tc.label(owner))
			return tc.recordType(id, tc.errorType())
		}
		return tc.recordType(id, tc.structField(owner, m.Field, m.FieldSpan))
	case ast.ExprIndex:
		ix, _ := tc.builder.Exprs.Index(id)
		owner := tc.checkPlace(ix.Target)
		if tc.isError(owner) {
			tc.checkExpr(ix.Index, types.NoTypeID)
			return tc.recordType(id, owner)
		}
		elem, _ := tc.indexElem(owner, ix.Index)
		return tc.recordType(id, elem)
	}
	tc.checkExpr(id, types.NoTypeID)
	tc.report(diag.SemaNotAssignable, expr.Span, "cannot assign to this expression")
	return tc.errorType()
}

func (tc *typeChecker) checkIndex(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Index(id)
	owner := tc.checkExpr(data.Target, types.NoTypeID)
	if tc.isError(owner) {
		tc.checkExpr(data.Index, types.NoTypeID)
		return owner
	}
	elem, isDict := tc.indexElem(owner, data.Index)
	if isDict && !tc.isError(elem) {
		if tc.types.KindOf(elem) == types.KindOptional {
			return elem
		}
		return tc.types.Optional(elem)
	}
	return elem
}

// indexElem checks the subscript against the container and returns the
// element (array) or value (dictionary) type.
func (tc *typeChecker) indexElem(owner types.TypeID, index ast.ExprID) (types.TypeID, bool) {
	tt, _ := tc.types.Lookup(owner)
	switch tt.Kind {
	case types.KindArray:
		b := tc.types.Builtins()
		it := tc.checkExpr(index, b.Int)
		if !tc.isError(it) && it != b.Int {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(index), "array index must be Int, found %s", tc.label(it))
		}
		return tt.Elem, false
	case types.KindDict:
		kt := tc.checkExpr(index, tt.Key)
		tc.expectAssignable(diag.SemaTypeMismatch, index, kt, tt.Key,
			"dictionary key must be %s, found %s", tc.label(tt.Key), tc.label(kt))
		return tt.Elem, true
	}
	tc.checkExpr(index, types.NoTypeID)
	tc.report(diag.SemaNotIndexable, tc.exprSpan(index), "cannot index a value of type %s", tc.label(owner))
	return tc.errorType(), false
}
