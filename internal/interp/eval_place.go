package interp

import (
	"strings"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
)

// place resolves an assignable expression to its storage. With create set,
// indexing a dictionary by a missing key appends an empty entry for the key.
func (in *Interpreter) place(id ast.ExprID, scope ScopeID, create bool) (*Value, *RuntimeError) {
	expr := in.builder.Exprs.Get(id)
	if expr == nil {
		return nil, in.fail(diag.RunInternal, source.Span{}, "missing assignment target")
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := in.builder.Exprs.Ident(id)
		slot, ok := in.env.Lookup(scope, data.Name)
		if !ok {
			return nil, in.undefined(expr.Span, in.builder.Name(data.Name))
		}
		return slot, nil

	case ast.ExprMember:
		data, _ := in.builder.Exprs.Member(id)
		owner, err := in.place(data.Target, scope, false)
		if err != nil {
			return nil, err
		}
		if owner.Kind != KindStruct {
			return nil, in.mismatch(expr.Span, "struct", *owner)
		}
		name := in.builder.Name(data.Field)
		field := owner.Field(name)
		if field == nil {
			return nil, in.fail(diag.RunUndefined, data.FieldSpan, "struct %s has no field '%s'", owner.Type, name)
		}
		return field, nil

	case ast.ExprIndex:
		data, _ := in.builder.Exprs.Index(id)
		index, err := in.eval(data.Index, scope)
		if err != nil {
			return nil, err
		}
		owner, err := in.place(data.Target, scope, false)
		if err != nil {
			return nil, err
		}
		switch owner.Kind {
		case KindArray:
			if index.Kind != KindInt {
				return nil, in.mismatch(in.exprSpan(data.Index), "Int", index)
			}
			if index.Int < 0 || index.Int >= int64(len(owner.Elems)) {
				return nil, in.outOfBounds(expr.Span, index.Int, len(owner.Elems))
			}
			return &owner.Elems[index.Int], nil
		case KindDict:
			if entry := owner.lookupEntry(index); entry != nil {
				return &entry.Value, nil
			}
			if !create {
				return nil, in.fail(diag.RunIndexOutOfBounds, expr.Span, "key %s not found in dictionary", keyText(index))
			}
			owner.Entries = append(owner.Entries, Entry{Key: index.Clone()})
			return &owner.Entries[len(owner.Entries)-1].Value, nil
		}
		return nil, in.fail(diag.RunValueMismatch, expr.Span, "cannot index a value of kind %s", owner.Kind)
	}
	return nil, in.fail(diag.RunInternal, expr.Span, "expression is not assignable")
}

func keyText(v Value) string {
	var sb strings.Builder
	v.write(&sb, true)
	return sb.String()
}
