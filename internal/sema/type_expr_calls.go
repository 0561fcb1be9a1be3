package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

func (tc *typeChecker) checkCall(id ast.ExprID, span source.Span) types.TypeID {
	call, _ := tc.builder.Exprs.Call(id)

	if ident, ok := tc.builder.Exprs.Ident(call.Target); ok && ident.Name == tc.printName {
		if _, shadowed := tc.lookup(ident.Name); !shadowed {
			return tc.checkPrint(call, span)
		}
	}

	if m, ok := tc.builder.Exprs.Member(call.Target); ok {
		if owner, static := tc.staticTypeName(m.Target); static {
			return tc.checkConstructor(call, m, owner, span)
		}
		if t, handled := tc.checkMethodCall(call, m, span); handled {
			return t
		}
	}

	ft := tc.checkExpr(call.Target, types.NoTypeID)
	if tc.isError(ft) {
		tc.checkArgs(call.Args)
		return ft
	}
	info, ok := tc.types.FnInfo(ft)
	if !ok {
		tc.checkArgs(call.Args)
		tc.report(diag.SemaNotCallable, tc.exprSpan(call.Target), "cannot call a value of type %s", tc.label(ft))
		return tc.errorType()
	}

	callee := "function"
	if ident, ok := tc.builder.Exprs.Ident(call.Target); ok {
		callee = "'" + tc.name(ident.Name) + "'"
	}
	if len(call.Args) != len(info.Params) {
		tc.report(diag.SemaArity, span, "%s expects %d argument(s), got %d", callee, len(info.Params), len(call.Args))
		tc.checkArgs(call.Args)
		return info.Result
	}
	for i, arg := range call.Args {
		param := info.Params[i]
		at := tc.checkExpr(arg, param)
		tc.expectAssignable(diag.SemaTypeMismatch, arg, at, param,
			"argument %d of %s: cannot use %s as %s", i+1, callee, tc.label(at), tc.label(param))
	}
	return info.Result
}

func (tc *typeChecker) checkArgs(args []ast.ExprID) {
	for _, arg := range args {
		tc.checkExpr(arg, types.NoTypeID)
	}
}

func (tc *typeChecker) checkPrint(call *ast.ExprCallData, span source.Span) types.TypeID {
	void := tc.types.Builtins().Void
	if len(call.Args) != 1 {
		tc.report(diag.SemaArity, span, "'print' expects 1 argument, got %d", len(call.Args))
		tc.checkArgs(call.Args)
		return void
	}
	t := tc.checkExpr(call.Args[0], types.NoTypeID)
	if !tc.isError(t) && tc.types.KindOf(t) == types.KindVoid {
		tc.report(diag.SemaVoidValue, tc.exprSpan(call.Args[0]), "cannot print a Void value")
	}
	return void
}

// checkConstructor handles V.Variant(payload) for unions.
func (tc *typeChecker) checkConstructor(call *ast.ExprCallData, m *ast.ExprMemberData, owner types.TypeID, span source.Span) types.TypeID {
	info, ok := tc.types.UnionInfo(owner)
	if !ok {
		tc.checkArgs(call.Args)
		tc.report(diag.SemaNotCallable, span, "%s.%s is not callable", tc.label(owner), tc.name(m.Field))
		return tc.errorType()
	}
	variant, ok := info.Variant(m.Field)
	if !ok {
		tc.checkArgs(call.Args)
		tc.report(diag.SemaNoMember, m.FieldSpan, "union %s has no variant '%s'", tc.label(owner), tc.name(m.Field))
		return tc.errorType()
	}
	tc.addRef(m.FieldSpan, tc.variantDeclSpan(variant.Type))
	tc.recordType(call.Target, owner)
	if len(call.Args) != 1 {
		tc.report(diag.SemaArity, span, "%s.%s expects 1 argument, got %d", tc.label(owner), tc.name(m.Field), len(call.Args))
		tc.checkArgs(call.Args)
		return owner
	}
	at := tc.checkExpr(call.Args[0], variant.Type)
	tc.expectAssignable(diag.SemaTypeMismatch, call.Args[0], at, variant.Type,
		"%s.%s expects %s, found %s", tc.label(owner), tc.name(m.Field), tc.label(variant.Type), tc.label(at))
	return owner
}

// checkMethodCall types the builtin collection methods. handled is false when
// the member is not a method, so the caller falls back to a plain call.
func (tc *typeChecker) checkMethodCall(call *ast.ExprCallData, m *ast.ExprMemberData, span source.Span) (types.TypeID, bool) {
	method := tc.name(m.Field)
	b := tc.types.Builtins()
	var recv types.TypeID
	switch method {
	case "append", "insert":
		recv = tc.checkPlace(m.Target)
	case "contains":
		recv = tc.checkExpr(m.Target, types.NoTypeID)
	default:
		return types.NoTypeID, false
	}
	if tc.isError(recv) {
		tc.checkArgs(call.Args)
		return tc.errorType(), true
	}

	tt, _ := tc.types.Lookup(recv)
	var result types.TypeID
	switch {
	case method == "append" && tt.Kind == types.KindArray:
		result = b.Void
	case method == "insert" && tt.Kind == types.KindSet:
		result = b.Void
	case method == "contains" && (tt.Kind == types.KindArray || tt.Kind == types.KindSet):
		result = b.Bool
	default:
		tc.checkArgs(call.Args)
		tc.report(diag.SemaNoMember, m.FieldSpan, "type %s has no method '%s'", tc.label(recv), method)
		return tc.errorType(), true
	}
	tc.recordType(call.Target, result)

	if len(call.Args) != 1 {
		tc.report(diag.SemaArity, span, "'%s' expects 1 argument, got %d", method, len(call.Args))
		tc.checkArgs(call.Args)
		return result, true
	}
	at := tc.checkExpr(call.Args[0], tt.Elem)
	tc.expectAssignable(diag.SemaTypeMismatch, call.Args[0], at, tt.Elem,
		"'%s' expects %s, found %s", method, tc.label(tt.Elem), tc.label(at))
	return result, true
}

// variantDeclSpan returns the declaration span of a nominal variant type.
func (tc *typeChecker) variantDeclSpan(t types.TypeID) source.Span {
	item, ok := tc.typeItems[t]
	if !ok {
		return source.Span{}
	}
	_, span := tc.builder.Items.DeclName(item)
	return span
}
