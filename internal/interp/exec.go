package interp

import (
	"slang/internal/ast"
	"slang/internal/diag"
)

type ctrlKind uint8

const (
	ctrlNext ctrlKind = iota
	ctrlReturn
)

// ctrl is the outcome of a statement. A return travels up as a ctrl, not as
// an error, until a function or switch-expression boundary consumes it.
type ctrl struct {
	kind  ctrlKind
	value Value
}

func (in *Interpreter) execStmts(stmts []ast.StmtID, scope ScopeID) (ctrl, *RuntimeError) {
	for _, id := range stmts {
		c, err := in.exec(id, scope)
		if err != nil || c.kind != ctrlNext {
			return c, err
		}
	}
	return ctrl{}, nil
}

func (in *Interpreter) exec(id ast.StmtID, scope ScopeID) (ctrl, *RuntimeError) {
	stmt := in.builder.Stmts.Get(id)
	if stmt == nil {
		return ctrl{}, nil
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := in.builder.Stmts.Block(id)
		child := in.env.Push(scope)
		defer in.env.Pop(child)
		return in.execStmts(block.Stmts, child)

	case ast.StmtVar:
		v, _ := in.builder.Stmts.Var(id)
		val, err := in.eval(v.Value, scope)
		if err != nil {
			return ctrl{}, err
		}
		in.env.Define(scope, v.Name, val.Clone())
		return ctrl{}, nil

	case ast.StmtExpr:
		es, _ := in.builder.Stmts.Expr(id)
		_, err := in.eval(es.Expr, scope)
		return ctrl{}, err

	case ast.StmtReturn:
		ret, _ := in.builder.Stmts.Return(id)
		if !ret.Value.IsValid() {
			return ctrl{kind: ctrlReturn, value: VoidValue()}, nil
		}
		val, err := in.eval(ret.Value, scope)
		if err != nil {
			return ctrl{}, err
		}
		return ctrl{kind: ctrlReturn, value: val.Clone()}, nil

	case ast.StmtIf:
		ifs, _ := in.builder.Stmts.If(id)
		cond, err := in.evalBool(ifs.Cond, scope)
		if err != nil {
			return ctrl{}, err
		}
		if cond {
			return in.exec(ifs.Then, scope)
		}
		if ifs.Else.IsValid() {
			return in.exec(ifs.Else, scope)
		}
		return ctrl{}, nil

	case ast.StmtFor:
		f, _ := in.builder.Stmts.For(id)
		return in.execFor(f, stmt, scope)

	case ast.StmtSwitch:
		sw, _ := in.builder.Stmts.Switch(id)
		return in.execSwitch(sw, stmt.Span, scope)
	}
	return ctrl{}, in.fail(diag.RunInternal, stmt.Span, "unsupported statement %s", stmt.Kind)
}

func (in *Interpreter) execFor(f *ast.ForStmt, stmt *ast.Stmt, scope ScopeID) (ctrl, *RuntimeError) {
	switch f.Form {
	case ast.ForCond:
		for {
			if err := in.tick(stmt.Span); err != nil {
				return ctrl{}, err
			}
			if f.Cond.IsValid() {
				ok, err := in.evalBool(f.Cond, scope)
				if err != nil || !ok {
					return ctrl{}, err
				}
			}
			c, err := in.exec(f.Body, scope)
			if err != nil || c.kind != ctrlNext {
				return c, err
			}
		}

	case ast.ForClassic:
		loop := in.env.Push(scope)
		defer in.env.Pop(loop)
		if f.Init.IsValid() {
			if _, err := in.exec(f.Init, loop); err != nil {
				return ctrl{}, err
			}
		}
		for {
			if err := in.tick(stmt.Span); err != nil {
				return ctrl{}, err
			}
			if f.Cond.IsValid() {
				ok, err := in.evalBool(f.Cond, loop)
				if err != nil || !ok {
					return ctrl{}, err
				}
			}
			c, err := in.exec(f.Body, loop)
			if err != nil || c.kind != ctrlNext {
				return c, err
			}
			if f.Post.IsValid() {
				if _, err := in.eval(f.Post, loop); err != nil {
					return ctrl{}, err
				}
			}
		}

	case ast.ForIn:
		coll, err := in.eval(f.Iterable, scope)
		if err != nil {
			return ctrl{}, err
		}
		items, rerr := in.iterationItems(coll, in.exprSpan(f.Iterable))
		if rerr != nil {
			return ctrl{}, rerr
		}
		for _, item := range items {
			if err := in.tick(stmt.Span); err != nil {
				return ctrl{}, err
			}
			iter := in.env.Push(scope)
			in.env.Define(iter, f.Var, item)
			c, err := in.exec(f.Body, iter)
			in.env.Pop(iter)
			if err != nil || c.kind != ctrlNext {
				return c, err
			}
		}
		return ctrl{}, nil
	}
	return ctrl{}, in.fail(diag.RunInternal, stmt.Span, "unsupported loop form")
}
