package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/types"
)

// coerce reports whether a value of type src may be stored where dst is
// expected, recording an implicit optional wrap on expr when one is needed.
// Error types are compatible with everything.
func (tc *typeChecker) coerce(expr ast.ExprID, src, dst types.TypeID) bool {
	if tc.isError(src) || tc.isError(dst) {
		return true
	}
	if src == dst {
		return true
	}
	if elem, ok := tc.optionalElem(dst); ok && elem == src {
		tc.result.Coercions[expr] |= CoerceWrapSome
		return true
	}
	return false
}

// expectAssignable reports code when src cannot be stored into dst.
func (tc *typeChecker) expectAssignable(code diag.Code, expr ast.ExprID, src, dst types.TypeID, format string, args ...interface{}) bool {
	if tc.coerce(expr, src, dst) {
		return true
	}
	tc.report(code, tc.exprSpan(expr), format, args...)
	return false
}

func (tc *typeChecker) optionalElem(id types.TypeID) (types.TypeID, bool) {
	tt, ok := tc.types.Lookup(id)
	if !ok || tt.Kind != types.KindOptional {
		return types.NoTypeID, false
	}
	return tt.Elem, true
}

// contextType strips an optional wrapper from an expected type so that
// literals can be inferred against the wrapped type.
func (tc *typeChecker) contextType(expected types.TypeID) types.TypeID {
	if elem, ok := tc.optionalElem(expected); ok {
		return elem
	}
	return expected
}
