package interp

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
)

// selectArm evaluates the subject once and returns the first matching case
// together with the scope its body runs in. Union and optional cases rebind
// an identifier subject to the payload inside that scope.
func (in *Interpreter) selectArm(data *ast.SwitchData, span source.Span, scope ScopeID) (*ast.SwitchCase, ScopeID, *RuntimeError) {
	subject, err := in.eval(data.Subject, scope)
	if err != nil {
		return nil, noScope, err
	}
	subject = subject.Clone()
	for i := range data.Cases {
		arm := &data.Cases[i]
		ok, unwrap, err := in.matches(arm.Pattern, subject, scope)
		if err != nil {
			return nil, noScope, err
		}
		if !ok {
			continue
		}
		armScope := in.env.Push(scope)
		if unwrap {
			if ident, isIdent := in.builder.Exprs.Ident(data.Subject); isIdent {
				payload, _ := subject.Payload()
				in.env.Define(armScope, ident.Name, payload)
			}
		}
		return arm, armScope, nil
	}
	return nil, noScope, in.fail(diag.RunSwitchNoMatch, span, "no case matches %s", subject.String())
}

// matches reports whether pattern accepts subject and whether the case
// narrows the subject to its payload.
func (in *Interpreter) matches(pattern ast.Pattern, subject Value, scope ScopeID) (bool, bool, *RuntimeError) {
	switch pattern.Kind {
	case ast.PatDefault:
		return true, false, nil
	case ast.PatSome:
		return subject.Kind == KindSome, true, nil
	case ast.PatNone:
		return subject.Kind == KindNone, false, nil
	}
	want, err := in.eval(pattern.Expr, scope)
	if err != nil {
		return false, false, err
	}
	if want.Kind == KindUnion && len(want.Elems) == 0 {
		ok := subject.Kind == KindUnion && subject.Type == want.Type && subject.Case == want.Case
		return ok, ok, nil
	}
	return subject.Equal(want), false, nil
}

func (in *Interpreter) execSwitch(data *ast.SwitchData, span source.Span, scope ScopeID) (ctrl, *RuntimeError) {
	arm, armScope, err := in.selectArm(data, span, scope)
	if err != nil {
		return ctrl{}, err
	}
	defer in.env.Pop(armScope)
	return in.exec(arm.Body, armScope)
}

// evalSwitchExpr runs the selected case; its return supplies the value of
// the whole switch.
func (in *Interpreter) evalSwitchExpr(data *ast.SwitchData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	arm, armScope, err := in.selectArm(data, span, scope)
	if err != nil {
		return Value{}, err
	}
	defer in.env.Pop(armScope)
	c, err := in.exec(arm.Body, armScope)
	if err != nil {
		return Value{}, err
	}
	if c.kind != ctrlReturn {
		return Value{}, in.fail(diag.RunInternal, arm.Span, "switch expression case produced no value")
	}
	return c.value, nil
}
