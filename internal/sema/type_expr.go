package sema

import (
	"errors"
	"strconv"
	"strings"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

// checkExpr computes and records the type of an expression. expected is the
// type demanded by the context, or NoTypeID; it only guides inference of
// nil and empty collection literals, and the caller still checks
// assignability.
func (tc *typeChecker) checkExpr(id ast.ExprID, expected types.TypeID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return tc.errorType()
	}
	b := tc.types.Builtins()
	var t types.TypeID
	switch expr.Kind {
	case ast.ExprIntLit:
		t = tc.checkIntLit(id, expr.Span)
	case ast.ExprFloatLit:
		t = tc.checkFloatLit(id, expr.Span)
	case ast.ExprStringLit:
		t = b.String
	case ast.ExprBoolLit:
		t = b.Bool
	case ast.ExprNil:
		t = tc.checkNil(expr.Span, expected)
	case ast.ExprInterp:
		t = tc.checkInterp(id)
	case ast.ExprIdent:
		t = tc.checkIdent(id, expr.Span)
	case ast.ExprBinary:
		t = tc.checkBinary(id, expr.Span)
	case ast.ExprUnary:
		t = tc.checkUnary(id, expr.Span, expected)
	case ast.ExprCall:
		t = tc.checkCall(id, expr.Span)
	case ast.ExprMember:
		t = tc.checkMember(id)
	case ast.ExprStructLit:
		t = tc.checkStructLit(id, expr.Span)
	case ast.ExprSwitch:
		sw, _ := tc.builder.Exprs.Switch(id)
		t = tc.checkSwitch(sw, expr.Span, true, expected)
	case ast.ExprArray:
		t = tc.checkArrayLit(id, expr.Span, expected)
	case ast.ExprDict:
		t = tc.checkDictLit(id, expr.Span, expected)
	case ast.ExprIndex:
		t = tc.checkIndex(id)
	case ast.ExprAssign:
		t = tc.checkAssign(id)
	default:
		t = tc.errorType()
	}
	return tc.recordType(id, t)
}

func (tc *typeChecker) checkIntLit(id ast.ExprID, span source.Span) types.TypeID {
	lit, _ := tc.builder.Exprs.Literal(id)
	text := strings.ReplaceAll(lit.Text, "_", "")
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		if errors.Is(err, strconv.ErrRange) {
			tc.report(diag.SemaLiteralRange, span, "integer literal %s overflows Int", lit.Text)
		} else {
			tc.report(diag.SemaLiteralRange, span, "malformed integer literal %s", lit.Text)
		}
		return tc.errorType()
	}
	return tc.types.Builtins().Int
}

func (tc *typeChecker) checkFloatLit(id ast.ExprID, span source.Span) types.TypeID {
	lit, _ := tc.builder.Exprs.Literal(id)
	text := strings.ReplaceAll(lit.Text, "_", "")
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		tc.report(diag.SemaLiteralRange, span, "float literal %s is out of range", lit.Text)
		return tc.errorType()
	}
	return tc.types.Builtins().Float
}

func (tc *typeChecker) checkNil(span source.Span, expected types.TypeID) types.TypeID {
	switch {
	case expected == types.NoTypeID:
		tc.report(diag.SemaEmptyLiteralNoType, span, "cannot infer the type of nil; add a type annotation")
		return tc.errorType()
	case tc.isError(expected):
		return expected
	case tc.types.KindOf(expected) == types.KindOptional:
		return expected
	}
	tc.report(diag.SemaNilNotOptional, span, "nil cannot be used as non-optional type %s", tc.label(expected))
	return tc.errorType()
}

func (tc *typeChecker) checkInterp(id ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Interp(id)
	for _, part := range data.Parts {
		if !part.Expr.IsValid() {
			continue
		}
		t := tc.checkExpr(part.Expr, types.NoTypeID)
		if !tc.isError(t) && tc.types.KindOf(t) == types.KindVoid {
			tc.report(diag.SemaVoidValue, tc.exprSpan(part.Expr), "cannot interpolate a Void value")
		}
	}
	return tc.types.Builtins().String
}

func (tc *typeChecker) checkIdent(id ast.ExprID, span source.Span) types.TypeID {
	ident, _ := tc.builder.Exprs.Ident(id)
	if b, ok := tc.lookup(ident.Name); ok {
		tc.addRef(span, b.span)
		return b.typ
	}
	if _, isType := tc.typeNames[ident.Name]; isType {
		tc.report(diag.SemaUndefinedVariable, span, "'%s' is a type, not a value", tc.name(ident.Name))
		return tc.errorType()
	}
	if ident.Name == tc.printName {
		tc.report(diag.SemaUndefinedVariable, span, "builtin 'print' can only be called")
		return tc.errorType()
	}
	tc.report(diag.SemaUndefinedVariable, span, "undefined variable '%s'", tc.name(ident.Name))
	return tc.errorType()
}

// staticTypeName resolves an identifier that names a user type and is not
// shadowed by a value in scope. Used for C.case and V.Variant(x).
func (tc *typeChecker) staticTypeName(id ast.ExprID) (types.TypeID, bool) {
	ident, ok := tc.builder.Exprs.Ident(id)
	if !ok {
		return types.NoTypeID, false
	}
	if _, shadowed := tc.lookup(ident.Name); shadowed {
		return types.NoTypeID, false
	}
	t, ok := tc.typeNames[ident.Name]
	if !ok {
		return types.NoTypeID, false
	}
	_, declSpan := tc.builder.Items.DeclName(tc.typeItems[t])
	tc.addRef(tc.exprSpan(id), declSpan)
	tc.recordType(id, t)
	return t, true
}
