package interp

import (
	"strconv"
	"strings"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/sema"
	"slang/internal/source"
)

// eval evaluates id and applies the implicit conversions recorded by the
// checker. The result may share storage with a variable; callers that store
// it must Clone.
func (in *Interpreter) eval(id ast.ExprID, scope ScopeID) (Value, *RuntimeError) {
	v, err := in.evalRaw(id, scope)
	if err != nil {
		return Value{}, err
	}
	if in.sema == nil {
		return v, nil
	}
	c := in.sema.CoercionOf(id)
	if c.Has(sema.CoerceToSet) && v.Kind == KindArray {
		v = SetValue(v.Elems)
	}
	if c.Has(sema.CoerceWrapSome) && v.Kind != KindSome && v.Kind != KindNone {
		v = SomeValue(v)
	}
	return v, nil
}

func (in *Interpreter) evalBool(id ast.ExprID, scope ScopeID) (bool, *RuntimeError) {
	v, err := in.eval(id, scope)
	if err != nil {
		return false, err
	}
	if v.Kind != KindBool {
		return false, in.mismatch(in.exprSpan(id), "Bool", v)
	}
	return v.Bool, nil
}

func (in *Interpreter) exprSpan(id ast.ExprID) source.Span {
	if expr := in.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (in *Interpreter) evalRaw(id ast.ExprID, scope ScopeID) (Value, *RuntimeError) {
	expr := in.builder.Exprs.Get(id)
	if expr == nil {
		return Value{}, in.fail(diag.RunInternal, source.Span{}, "missing expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprIntLit:
		lit, _ := in.builder.Exprs.Literal(id)
		n, err := strconv.ParseInt(strings.ReplaceAll(lit.Text, "_", ""), 10, 64)
		if err != nil {
			return Value{}, in.fail(diag.RunInternal, expr.Span, "bad integer literal %q", lit.Text)
		}
		return IntValue(n), nil

	case ast.ExprFloatLit:
		lit, _ := in.builder.Exprs.Literal(id)
		f, err := strconv.ParseFloat(strings.ReplaceAll(lit.Text, "_", ""), 64)
		if err != nil {
			return Value{}, in.fail(diag.RunInternal, expr.Span, "bad float literal %q", lit.Text)
		}
		return FloatValue(f), nil

	case ast.ExprStringLit:
		lit, _ := in.builder.Exprs.Literal(id)
		return StringValue(lit.Text), nil

	case ast.ExprBoolLit:
		lit, _ := in.builder.Exprs.Literal(id)
		return BoolValue(lit.Text == "true"), nil

	case ast.ExprNil:
		return NoneValue(), nil

	case ast.ExprInterp:
		data, _ := in.builder.Exprs.Interp(id)
		var sb strings.Builder
		for _, part := range data.Parts {
			if !part.Expr.IsValid() {
				sb.WriteString(part.Text)
				continue
			}
			v, err := in.eval(part.Expr, scope)
			if err != nil {
				return Value{}, err
			}
			sb.WriteString(v.String())
		}
		return StringValue(sb.String()), nil

	case ast.ExprIdent:
		data, _ := in.builder.Exprs.Ident(id)
		return in.evalIdent(data.Name, expr.Span, scope)

	case ast.ExprBinary:
		data, _ := in.builder.Exprs.Binary(id)
		return in.evalBinary(data, expr.Span, scope)

	case ast.ExprUnary:
		data, _ := in.builder.Exprs.Unary(id)
		operand, err := in.eval(data.Operand, scope)
		if err != nil {
			return Value{}, err
		}
		return in.unary(data.Op, operand, expr.Span)

	case ast.ExprCall:
		data, _ := in.builder.Exprs.Call(id)
		return in.evalCall(data, expr.Span, scope)

	case ast.ExprMember:
		data, _ := in.builder.Exprs.Member(id)
		target, err := in.eval(data.Target, scope)
		if err != nil {
			return Value{}, err
		}
		return in.member(target, in.builder.Name(data.Field), expr.Span)

	case ast.ExprStructLit:
		data, _ := in.builder.Exprs.Struct(id)
		return in.evalStructLit(data, expr.Span, scope)

	case ast.ExprSwitch:
		data, _ := in.builder.Exprs.Switch(id)
		return in.evalSwitchExpr(data, expr.Span, scope)

	case ast.ExprArray:
		data, _ := in.builder.Exprs.Array(id)
		elems := make([]Value, 0, len(data.Elems))
		for _, e := range data.Elems {
			v, err := in.eval(e, scope)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v.Clone())
		}
		return ArrayValue(elems), nil

	case ast.ExprDict:
		data, _ := in.builder.Exprs.Dict(id)
		entries := make([]Entry, 0, len(data.Entries))
		for _, e := range data.Entries {
			k, err := in.eval(e.Key, scope)
			if err != nil {
				return Value{}, err
			}
			v, err := in.eval(e.Value, scope)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: k.Clone(), Value: v.Clone()})
		}
		return DictValue(entries), nil

	case ast.ExprIndex:
		data, _ := in.builder.Exprs.Index(id)
		return in.evalIndex(data, expr.Span, scope)

	case ast.ExprAssign:
		data, _ := in.builder.Exprs.Assign(id)
		return in.evalAssign(data, expr.Span, scope)
	}
	return Value{}, in.fail(diag.RunInternal, expr.Span, "unsupported expression %s", expr.Kind)
}

// evalIdent reads a variable. A name bound to no variable but to a type
// yields a placeholder that member access turns into a case or variant.
func (in *Interpreter) evalIdent(name source.StringID, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	if slot, ok := in.env.Lookup(scope, name); ok {
		return *slot, nil
	}
	if kind, ok := in.typeKinds[name]; ok {
		placeholder := EnumValue(in.builder.Name(name), "")
		if kind == ast.ItemUnion {
			placeholder.Kind = KindUnion
		}
		return placeholder, nil
	}
	return Value{}, in.undefined(span, in.builder.Name(name))
}

func (in *Interpreter) evalStructLit(data *ast.ExprStructData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	typeName := in.builder.Name(data.Type)
	decl, ok := in.structs[typeName]
	if !ok {
		return Value{}, in.fail(diag.RunUndefined, span, "unknown struct %s", typeName)
	}
	// поля вычисляются в порядке литерала, хранятся в порядке объявления
	given := make(map[source.StringID]Value, len(data.Fields))
	for _, f := range data.Fields {
		v, err := in.eval(f.Value, scope)
		if err != nil {
			return Value{}, err
		}
		given[f.Name] = v.Clone()
	}
	fields := make([]Field, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		v, ok := given[f.Name]
		if !ok {
			return Value{}, in.fail(diag.RunInternal, span, "missing field '%s' in %s literal", in.builder.Name(f.Name), typeName)
		}
		fields = append(fields, Field{Name: in.builder.Name(f.Name), Value: v})
	}
	return StructValue(typeName, fields), nil
}

func (in *Interpreter) evalIndex(data *ast.ExprIndexData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	target, err := in.eval(data.Target, scope)
	if err != nil {
		return Value{}, err
	}
	index, err := in.eval(data.Index, scope)
	if err != nil {
		return Value{}, err
	}
	switch target.Kind {
	case KindArray:
		if index.Kind != KindInt {
			return Value{}, in.mismatch(in.exprSpan(data.Index), "Int", index)
		}
		if index.Int < 0 || index.Int >= int64(len(target.Elems)) {
			return Value{}, in.outOfBounds(span, index.Int, len(target.Elems))
		}
		return target.Elems[index.Int].Clone(), nil
	case KindDict:
		entry := target.lookupEntry(index)
		if entry == nil {
			return NoneValue(), nil
		}
		// V? values are already optional; lookup does not wrap them twice
		if entry.Value.Kind == KindSome || entry.Value.Kind == KindNone {
			return entry.Value.Clone(), nil
		}
		return SomeValue(entry.Value.Clone()), nil
	}
	return Value{}, in.fail(diag.RunValueMismatch, span, "cannot index a value of kind %s", target.Kind)
}

// evalAssign evaluates the right-hand side before resolving the target
// place; the stored value is a copy.
func (in *Interpreter) evalAssign(data *ast.ExprAssignData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	val, err := in.eval(data.Value, scope)
	if err != nil {
		return Value{}, err
	}
	op, compound := data.Op.Binary()
	slot, err := in.place(data.Target, scope, !compound)
	if err != nil {
		return Value{}, err
	}
	if compound {
		val, err = in.arith(op, *slot, val, span)
		if err != nil {
			return Value{}, err
		}
	}
	*slot = val.Clone()
	return val, nil
}
