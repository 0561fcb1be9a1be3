package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/trace"
	"slang/internal/types"
)

func (tc *typeChecker) walkItem(id ast.ItemID) {
	fn, ok := tc.builder.Items.Fn(id)
	if !ok {
		return
	}
	sig := tc.fns[fn.Name]
	if sig == nil || sig.item != id || !sig.resolved {
		return
	}

	span := trace.Begin(tc.tracer, trace.ScopeDecl, tc.name(fn.Name), 0)
	defer span.End("")

	// корень: глобальная область, только функции
	tc.scopes = tc.scopes[:0]
	tc.pushScope()
	for _, name := range tc.fnOrder {
		other := tc.fns[name]
		tc.scopes[0].names[name] = binding{typ: other.typ, span: other.nameSpan, fn: true}
	}

	// параметры и тело функции делят одну область
	tc.pushScope()
	for i, p := range fn.Params {
		tc.declare(p.Name, p.NameSpan, sig.params[i], DefParam)
	}

	ctx := &returnContext{expected: sig.result}
	pop := tc.pushReturn(ctx)
	if block, ok := tc.builder.Stmts.Block(fn.Body); ok {
		for _, stmtID := range block.Stmts {
			tc.walkStmt(stmtID)
		}
	}
	pop()
	tc.popScope()
	tc.popScope()

	if tc.types.KindOf(sig.result) != types.KindVoid && !tc.definitelyReturns(fn.Body) {
		tc.report(diag.SemaMissingReturn, fn.NameSpan,
			"function '%s' must return a value of type %s on every path", tc.name(fn.Name), tc.label(sig.result))
	}
}

func (tc *typeChecker) walkStmt(id ast.StmtID) {
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := tc.builder.Stmts.Block(id)
		tc.pushScope()
		for _, s := range block.Stmts {
			tc.walkStmt(s)
		}
		tc.popScope()
	case ast.StmtVar:
		v, _ := tc.builder.Stmts.Var(id)
		tc.walkVar(v)
	case ast.StmtExpr:
		es, _ := tc.builder.Stmts.Expr(id)
		t := tc.checkExpr(es.Expr, types.NoTypeID)
		if !tc.isError(t) && tc.types.KindOf(t) != types.KindVoid && tc.isPureExpr(es.Expr) {
			tc.warn(diag.SemaUnusedValue, stmt.Span, "value of type %s is unused", tc.label(t))
		}
	case ast.StmtReturn:
		ret, _ := tc.builder.Stmts.Return(id)
		tc.walkReturn(ret, stmt)
	case ast.StmtIf:
		ifs, _ := tc.builder.Stmts.If(id)
		tc.checkCond(ifs.Cond)
		tc.walkStmt(ifs.Then)
		if ifs.Else.IsValid() {
			tc.walkStmt(ifs.Else)
		}
	case ast.StmtFor:
		f, _ := tc.builder.Stmts.For(id)
		tc.walkFor(f)
	case ast.StmtSwitch:
		sw, _ := tc.builder.Stmts.Switch(id)
		tc.checkSwitch(sw, stmt.Span, false, types.NoTypeID)
	}
}

func (tc *typeChecker) walkVar(v *ast.VarStmt) {
	declared := types.NoTypeID
	if v.Type.IsValid() {
		declared = tc.resolveTypeExpr(v.Type)
	}

	bound := declared
	switch {
	case declared != types.NoTypeID && !tc.isError(declared):
		vt := tc.checkExpr(v.Value, declared)
		if tc.types.KindOf(declared) == types.KindVoid {
			tc.report(diag.SemaVoidValue, v.NameSpan, "variable '%s' cannot have type Void", tc.name(v.Name))
			bound = tc.errorType()
			break
		}
		tc.expectAssignable(diag.SemaTypeMismatch, v.Value, vt, declared,
			"cannot initialize '%s' of type %s with a value of type %s", tc.name(v.Name), tc.label(declared), tc.label(vt))
	case declared != types.NoTypeID:
		tc.checkExpr(v.Value, types.NoTypeID)
	default:
		vt := tc.checkExpr(v.Value, types.NoTypeID)
		if tc.types.KindOf(vt) == types.KindVoid {
			tc.report(diag.SemaVoidValue, tc.exprSpan(v.Value), "cannot initialize '%s' with a Void value", tc.name(v.Name))
			vt = tc.errorType()
		}
		bound = vt
	}
	tc.declare(v.Name, v.NameSpan, bound, DefVar)
}

func (tc *typeChecker) walkReturn(ret *ast.ReturnStmt, stmt *ast.Stmt) {
	ctx := tc.currentReturn()
	if ctx == nil {
		return
	}
	if ctx.isSwitch {
		if !ret.Value.IsValid() {
			tc.report(diag.SemaSwitchExprNoReturn, stmt.Span, "switch expression case must return a value")
			return
		}
		t := tc.checkExpr(ret.Value, ctx.expected)
		if tc.isError(t) {
			return
		}
		if tc.types.KindOf(t) == types.KindVoid {
			tc.report(diag.SemaVoidValue, tc.exprSpan(ret.Value), "switch expression case returns Void")
			return
		}
		if ctx.expected == types.NoTypeID {
			ctx.expected = t
		} else if !tc.coerce(ret.Value, t, ctx.expected) {
			tc.report(diag.SemaSwitchExprMismatch, tc.exprSpan(ret.Value),
				"switch expression case returns %s, expected %s", tc.label(t), tc.label(ctx.expected))
		}
		ctx.returned = append(ctx.returned, t)
		ctx.spans = append(ctx.spans, stmt.Span)
		return
	}

	isVoid := tc.types.KindOf(ctx.expected) == types.KindVoid
	switch {
	case !ret.Value.IsValid():
		if !isVoid {
			tc.report(diag.SemaReturnMismatch, stmt.Span, "missing return value of type %s", tc.label(ctx.expected))
		}
	case isVoid:
		tc.checkExpr(ret.Value, types.NoTypeID)
		tc.report(diag.SemaReturnMismatch, tc.exprSpan(ret.Value), "unexpected return value in function without result type")
	default:
		t := tc.checkExpr(ret.Value, ctx.expected)
		tc.expectAssignable(diag.SemaReturnMismatch, ret.Value, t, ctx.expected,
			"cannot return %s from function returning %s", tc.label(t), tc.label(ctx.expected))
	}
}

func (tc *typeChecker) walkFor(f *ast.ForStmt) {
	switch f.Form {
	case ast.ForCond:
		if f.Cond.IsValid() {
			tc.checkCond(f.Cond)
		}
		tc.walkStmt(f.Body)
	case ast.ForClassic:
		tc.pushScope()
		if f.Init.IsValid() {
			tc.walkStmt(f.Init)
		}
		if f.Cond.IsValid() {
			tc.checkCond(f.Cond)
		}
		if f.Post.IsValid() {
			tc.checkExpr(f.Post, types.NoTypeID)
		}
		tc.walkStmt(f.Body)
		tc.popScope()
	case ast.ForIn:
		it := tc.checkExpr(f.Iterable, types.NoTypeID)
		elem := tc.errorType()
		if !tc.isError(it) {
			tt, _ := tc.types.Lookup(it)
			switch tt.Kind {
			case types.KindArray, types.KindSet:
				elem = tt.Elem
			case types.KindDict:
				elem = tt.Key
			case types.KindString:
				elem = tc.types.Builtins().String
			default:
				tc.report(diag.SemaNotIndexable, tc.exprSpan(f.Iterable), "cannot iterate over value of type %s", tc.label(it))
			}
		}
		tc.pushScope()
		tc.declare(f.Var, f.VarSpan, elem, DefVar)
		tc.walkStmt(f.Body)
		tc.popScope()
	}
}

func (tc *typeChecker) checkCond(id ast.ExprID) {
	b := tc.types.Builtins().Bool
	t := tc.checkExpr(id, b)
	if !tc.isError(t) && t != b {
		tc.report(diag.SemaConditionNotBool, tc.exprSpan(id), "condition must be Bool, found %s", tc.label(t))
	}
}

// isPureExpr reports expressions whose only effect is their value.
func (tc *typeChecker) isPureExpr(id ast.ExprID) bool {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprStringLit, ast.ExprBoolLit, ast.ExprIdent, ast.ExprInterp:
		return true
	case ast.ExprBinary:
		b, _ := tc.builder.Exprs.Binary(id)
		// деление может упасть во время выполнения
		return b.Op != ast.ExprBinaryDiv && b.Op != ast.ExprBinaryMod && tc.isPureExpr(b.Left) && tc.isPureExpr(b.Right)
	case ast.ExprUnary:
		u, _ := tc.builder.Exprs.Unary(id)
		return tc.isPureExpr(u.Operand)
	}
	return false
}
