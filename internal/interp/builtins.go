package interp

import (
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
)

const printName = "print"

func (in *Interpreter) evalCall(data *ast.ExprCallData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	if m, ok := in.builder.Exprs.Member(data.Target); ok {
		return in.evalMemberCall(data, m, span, scope)
	}

	if ident, ok := in.builder.Exprs.Ident(data.Target); ok {
		if _, bound := in.env.Lookup(scope, ident.Name); !bound && in.builder.Name(ident.Name) == printName {
			args, err := in.evalArgs(data.Args, scope)
			if err != nil {
				return Value{}, err
			}
			if len(args) != 1 {
				return Value{}, in.fail(diag.RunInternal, span, "'print' expects 1 argument, got %d", len(args))
			}
			in.print(args[0].String())
			return VoidValue(), nil
		}
	}

	callee, err := in.eval(data.Target, scope)
	if err != nil {
		return Value{}, err
	}
	if callee.Kind != KindFunc {
		return Value{}, in.mismatch(in.exprSpan(data.Target), "function", callee)
	}
	fn, ok := in.fns[in.builder.StringsInterner.Intern(callee.Type)]
	if !ok {
		return Value{}, in.undefined(span, callee.Type)
	}
	args, err := in.evalArgs(data.Args, scope)
	if err != nil {
		return Value{}, err
	}
	return in.call(callee.Type, fn, args, span)
}

func (in *Interpreter) evalArgs(ids []ast.ExprID, scope ScopeID) ([]Value, *RuntimeError) {
	args := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, err := in.eval(id, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, v.Clone())
	}
	return args, nil
}

// evalMemberCall handles union construction V.Variant(x) and the builtin
// collection methods.
func (in *Interpreter) evalMemberCall(data *ast.ExprCallData, m *ast.ExprMemberData, span source.Span, scope ScopeID) (Value, *RuntimeError) {
	method := in.builder.Name(m.Field)
	args, err := in.evalArgs(data.Args, scope)
	if err != nil {
		return Value{}, err
	}
	if len(args) != 1 {
		return Value{}, in.fail(diag.RunInternal, span, "'%s' expects 1 argument, got %d", method, len(args))
	}
	arg := args[0]

	if ident, ok := in.builder.Exprs.Ident(m.Target); ok {
		if _, bound := in.env.Lookup(scope, ident.Name); !bound {
			if kind, isType := in.typeKinds[ident.Name]; isType && kind == ast.ItemUnion {
				return UnionValue(in.builder.Name(ident.Name), method, arg), nil
			}
		}
	}

	switch method {
	case "append", "insert":
		recv, err := in.place(m.Target, scope, false)
		if err != nil {
			return Value{}, err
		}
		switch {
		case method == "append" && recv.Kind == KindArray:
			recv.Elems = append(recv.Elems, arg)
		case method == "insert" && recv.Kind == KindSet:
			if !containsValue(recv.Elems, arg) {
				recv.Elems = append(recv.Elems, arg)
			}
		default:
			return Value{}, in.fail(diag.RunValueMismatch, m.FieldSpan, "%s has no method '%s'", recv.Kind, method)
		}
		return VoidValue(), nil
	case "contains":
		recv, err := in.eval(m.Target, scope)
		if err != nil {
			return Value{}, err
		}
		if recv.Kind != KindArray && recv.Kind != KindSet {
			return Value{}, in.fail(diag.RunValueMismatch, m.FieldSpan, "%s has no method 'contains'", recv.Kind)
		}
		return BoolValue(containsValue(recv.Elems, arg)), nil
	}
	return Value{}, in.fail(diag.RunUndefined, m.FieldSpan, "unknown method '%s'", method)
}

// member implements field access, enum case and union variant selection and
// the builtin collection properties.
func (in *Interpreter) member(target Value, name string, span source.Span) (Value, *RuntimeError) {
	switch target.Kind {
	case KindEnum, KindUnion:
		if target.Case == "" {
			placeholder := target
			placeholder.Case = name
			return placeholder, nil
		}
	case KindStruct:
		if f := target.Field(name); f != nil {
			return f.Clone(), nil
		}
		return Value{}, in.fail(diag.RunUndefined, span, "struct %s has no field '%s'", target.Type, name)
	case KindArray, KindSet:
		if name == "count" {
			return in.count(len(target.Elems), span)
		}
	case KindDict:
		switch name {
		case "count":
			return in.count(len(target.Entries), span)
		case "keys":
			keys := make([]Value, 0, len(target.Entries))
			for _, e := range target.Entries {
				keys = append(keys, e.Key.Clone())
			}
			return ArrayValue(keys), nil
		}
	case KindString:
		if name == "count" {
			return in.count(utf8.RuneCountInString(norm.NFC.String(target.Str)), span)
		}
	}
	return Value{}, in.fail(diag.RunUndefined, span, "%s has no member '%s'", target.Kind, name)
}

func (in *Interpreter) count(n int, span source.Span) (Value, *RuntimeError) {
	c, err := safecast.Conv[int64](n)
	if err != nil {
		return Value{}, in.fail(diag.RunInternal, span, "count overflows Int: %v", err)
	}
	return IntValue(c), nil
}

// iterationItems snapshots what a for-in loop visits: array and set
// elements, dictionary keys, or the characters of a string.
func (in *Interpreter) iterationItems(coll Value, span source.Span) ([]Value, *RuntimeError) {
	switch coll.Kind {
	case KindArray, KindSet:
		items := make([]Value, len(coll.Elems))
		for i, e := range coll.Elems {
			items[i] = e.Clone()
		}
		return items, nil
	case KindDict:
		items := make([]Value, len(coll.Entries))
		for i, e := range coll.Entries {
			items[i] = e.Key.Clone()
		}
		return items, nil
	case KindString:
		s := norm.NFC.String(coll.Str)
		items := make([]Value, 0, len(s))
		for _, r := range s {
			items = append(items, StringValue(string(r)))
		}
		return items, nil
	}
	return nil, in.fail(diag.RunValueMismatch, span, "cannot iterate over %s", coll.Kind)
}
