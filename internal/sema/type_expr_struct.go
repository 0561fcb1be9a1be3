package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

func (tc *typeChecker) checkMember(id ast.ExprID) types.TypeID {
	m, _ := tc.builder.Exprs.Member(id)

	if owner, static := tc.staticTypeName(m.Target); static {
		return tc.checkStaticMember(owner, m)
	}

	t := tc.checkExpr(m.Target, types.NoTypeID)
	if tc.isError(t) {
		return t
	}
	b := tc.types.Builtins()
	tt, _ := tc.types.Lookup(t)
	field := tc.name(m.Field)

	switch tt.Kind {
	case types.KindStruct:
		return tc.structField(t, m.Field, m.FieldSpan)
	case types.KindOptional:
		tc.report(diag.SemaNoMember, m.FieldSpan,
			"cannot access '%s' on optional %s; unwrap it with a switch first", field, tc.label(t))
		return tc.errorType()
	case types.KindArray, types.KindSet, types.KindString:
		if field == "count" {
			return b.Int
		}
	case types.KindDict:
		switch field {
		case "count":
			return b.Int
		case "keys":
			return tc.types.Array(tt.Key)
		}
	}
	tc.report(diag.SemaNoMember, m.FieldSpan, "type %s has no member '%s'", tc.label(t), field)
	return tc.errorType()
}

// checkStaticMember types C.case; a union variant without payload is rejected.
func (tc *typeChecker) checkStaticMember(owner types.TypeID, m *ast.ExprMemberData) types.TypeID {
	if info, ok := tc.types.EnumInfo(owner); ok {
		if !info.HasCase(m.Field) {
			tc.report(diag.SemaNoMember, m.FieldSpan, "enum %s has no case '%s'", tc.label(owner), tc.name(m.Field))
			return tc.errorType()
		}
		tc.addRef(m.FieldSpan, tc.enumCaseSpan(owner, m.Field))
		return owner
	}
	if info, ok := tc.types.UnionInfo(owner); ok {
		if _, ok := info.Variant(m.Field); ok {
			tc.report(diag.SemaNoMember, m.FieldSpan,
				"union variant %s.%s needs a payload: %s.%s(value)", tc.label(owner), tc.name(m.Field), tc.label(owner), tc.name(m.Field))
		} else {
			tc.report(diag.SemaNoMember, m.FieldSpan, "union %s has no variant '%s'", tc.label(owner), tc.name(m.Field))
		}
		return tc.errorType()
	}
	tc.report(diag.SemaNoMember, m.FieldSpan, "type %s has no member '%s'", tc.label(owner), tc.name(m.Field))
	return tc.errorType()
}

func (tc *typeChecker) structField(owner types.TypeID, name source.StringID, span source.Span) types.TypeID {
	info, ok := tc.types.StructInfo(owner)
	if !ok {
		return tc.errorType()
	}
	f, ok := info.Field(name)
	if !ok {
		tc.report(diag.SemaUnknownField, span, "struct %s has no field '%s'", tc.label(owner), tc.name(name))
		return tc.errorType()
	}
	tc.addRef(span, tc.structFieldSpan(owner, name))
	return f.Type
}

func (tc *typeChecker) checkStructLit(id ast.ExprID, span source.Span) types.TypeID {
	data, _ := tc.builder.Exprs.Struct(id)
	owner, known := tc.typeNames[data.Type]
	info, isStruct := tc.types.StructInfo(owner)
	if !known || !isStruct {
		for _, f := range data.Fields {
			tc.checkExpr(f.Value, types.NoTypeID)
		}
		if !known {
			tc.report(diag.SemaUnknownType, data.TypeSpan, "unknown type '%s'", tc.name(data.Type))
		} else {
			tc.report(diag.SemaTypeMismatch, data.TypeSpan, "'%s' is not a struct", tc.name(data.Type))
		}
		return tc.errorType()
	}
	tc.addRef(data.TypeSpan, info.Decl)

	seen := make(map[source.StringID]source.Span, len(data.Fields))
	for _, f := range data.Fields {
		decl, ok := info.Field(f.Name)
		if !ok {
			tc.checkExpr(f.Value, types.NoTypeID)
			tc.report(diag.SemaUnknownField, f.NameSpan, "struct %s has no field '%s'", tc.label(owner), tc.name(f.Name))
			continue
		}
		if prev, dup := seen[f.Name]; dup {
			tc.checkExpr(f.Value, decl.Type)
			tc.reportWithNote(diag.SemaDuplicateSymbol, f.NameSpan, prev, "first value here",
				"field '%s' is initialized twice", tc.name(f.Name))
			continue
		}
		seen[f.Name] = f.NameSpan
		tc.addRef(f.NameSpan, tc.structFieldSpan(owner, f.Name))
		vt := tc.checkExpr(f.Value, decl.Type)
		tc.expectAssignable(diag.SemaTypeMismatch, f.Value, vt, decl.Type,
			"field '%s' of %s expects %s, found %s", tc.name(f.Name), tc.label(owner), tc.label(decl.Type), tc.label(vt))
	}
	for _, f := range info.Fields {
		if _, ok := seen[f.Name]; !ok {
			tc.report(diag.SemaMissingField, span, "missing field '%s' in %s literal", tc.name(f.Name), tc.label(owner))
		}
	}
	return owner
}

func (tc *typeChecker) structFieldSpan(owner types.TypeID, name source.StringID) source.Span {
	decl, ok := tc.builder.Items.Struct(tc.typeItems[owner])
	if !ok {
		return source.Span{}
	}
	for _, f := range decl.Fields {
		if f.Name == name {
			return f.NameSpan
		}
	}
	return source.Span{}
}

func (tc *typeChecker) enumCaseSpan(owner types.TypeID, name source.StringID) source.Span {
	decl, ok := tc.builder.Items.Enum(tc.typeItems[owner])
	if !ok {
		return source.Span{}
	}
	for _, c := range decl.Cases {
		if c.Name == name {
			return c.NameSpan
		}
	}
	return source.Span{}
}
