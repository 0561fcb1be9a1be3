package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

// checkArrayLit types [a, b, ...]. In a Set<T> context the literal becomes a
// set; otherwise elements must share one type. An empty literal needs context.
func (tc *typeChecker) checkArrayLit(id ast.ExprID, span source.Span, expected types.TypeID) types.TypeID {
	data, _ := tc.builder.Exprs.Array(id)
	ctx := tc.contextType(expected)
	ct, _ := tc.types.Lookup(ctx)
	// тип аннотации уже отравлен и ошибка выдана
	if tc.types.IsError(ctx) {
		for _, e := range data.Elems {
			tc.checkExpr(e, types.NoTypeID)
		}
		return ctx
	}

	switch ct.Kind {
	case types.KindArray, types.KindSet:
		for _, e := range data.Elems {
			et := tc.checkExpr(e, ct.Elem)
			tc.expectAssignable(diag.SemaTypeMismatch, e, et, ct.Elem,
				"element of %s must be %s, found %s", tc.label(ctx), tc.label(ct.Elem), tc.label(et))
		}
		if ct.Kind == types.KindSet {
			tc.result.Coercions[id] |= CoerceToSet
		}
		return ctx
	}

	if len(data.Elems) == 0 {
		tc.report(diag.SemaEmptyLiteralNoType, span, "cannot infer the type of an empty array literal; add a type annotation")
		return tc.errorType()
	}
	first := tc.checkExpr(data.Elems[0], types.NoTypeID)
	if tc.isError(first) {
		for _, e := range data.Elems[1:] {
			tc.checkExpr(e, types.NoTypeID)
		}
		return first
	}
	if tc.types.KindOf(first) == types.KindVoid {
		tc.report(diag.SemaVoidValue, tc.exprSpan(data.Elems[0]), "array element cannot be Void")
		return tc.errorType()
	}
	for _, e := range data.Elems[1:] {
		et := tc.checkExpr(e, first)
		tc.expectAssignable(diag.SemaTypeMismatch, e, et, first,
			"array elements must have the same type: expected %s, found %s", tc.label(first), tc.label(et))
	}
	return tc.types.Array(first)
}

func (tc *typeChecker) checkDictLit(id ast.ExprID, span source.Span, expected types.TypeID) types.TypeID {
	data, _ := tc.builder.Exprs.Dict(id)
	ctx := tc.contextType(expected)
	ct, _ := tc.types.Lookup(ctx)
	if tc.types.IsError(ctx) {
		for _, entry := range data.Entries {
			tc.checkExpr(entry.Key, types.NoTypeID)
			tc.checkExpr(entry.Value, types.NoTypeID)
		}
		return ctx
	}

	if ct.Kind == types.KindDict {
		for _, entry := range data.Entries {
			tc.checkDictEntry(entry, ct.Key, ct.Elem)
		}
		return ctx
	}

	if len(data.Entries) == 0 {
		tc.report(diag.SemaEmptyLiteralNoType, span, "cannot infer the type of an empty dictionary literal; add a type annotation")
		return tc.errorType()
	}
	head := data.Entries[0]
	key := tc.checkExpr(head.Key, types.NoTypeID)
	val := tc.checkExpr(head.Value, types.NoTypeID)
	if tc.isError(key) || tc.isError(val) {
		for _, entry := range data.Entries[1:] {
			tc.checkExpr(entry.Key, types.NoTypeID)
			tc.checkExpr(entry.Value, types.NoTypeID)
		}
		return tc.errorType()
	}
	if !tc.types.IsHashable(key) {
		tc.report(diag.SemaUnhashable, tc.exprSpan(head.Key), "dictionary key type %s is not hashable", tc.label(key))
		return tc.errorType()
	}
	if tc.types.KindOf(val) == types.KindVoid {
		tc.report(diag.SemaVoidValue, tc.exprSpan(head.Value), "dictionary value cannot be Void")
		return tc.errorType()
	}
	for _, entry := range data.Entries[1:] {
		tc.checkDictEntry(entry, key, val)
	}
	return tc.types.Dict(key, val)
}

func (tc *typeChecker) checkDictEntry(entry ast.DictEntry, key, val types.TypeID) {
	kt := tc.checkExpr(entry.Key, key)
	tc.expectAssignable(diag.SemaTypeMismatch, entry.Key, kt, key,
		"dictionary key must be %s, found %s", tc.label(key), tc.label(kt))
	vt := tc.checkExpr(entry.Value, val)
	tc.expectAssignable(diag.SemaTypeMismatch, entry.Value, vt, val,
		"dictionary value must be %s, found %s", tc.label(val), tc.label(vt))
}
