package sema

import (
	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/types"
)

// registerTypeNames allocates a nominal type for every struct, enum and union
// so that declarations may reference each other regardless of order.
func (tc *typeChecker) registerTypeNames(items []ast.ItemID) {
	setName := tc.intern("Set")
	for _, itemID := range items {
		item := tc.builder.Items.Get(itemID)
		if item == nil || item.Kind == ast.ItemFn {
			continue
		}
		name, nameSpan := tc.builder.Items.DeclName(itemID)
		if name == source.NoStringID {
			continue
		}
		if _, builtin := tc.builtins[name]; builtin || name == setName {
			tc.report(diag.SemaDuplicateSymbol, nameSpan, "'%s' is a builtin type name", tc.name(name))
			continue
		}
		if prev, ok := tc.typeNames[name]; ok {
			prevItem := tc.typeItems[prev]
			_, prevSpan := tc.builder.Items.DeclName(prevItem)
			tc.reportWithNote(diag.SemaDuplicateSymbol, nameSpan, prevSpan, "previous declaration here",
				"type '%s' is already declared", tc.name(name))
			continue
		}
		var id types.TypeID
		var kind DefKind
		switch item.Kind {
		case ast.ItemStruct:
			id = tc.types.RegisterStruct(name, nameSpan)
			kind = DefStruct
		case ast.ItemEnum:
			id = tc.types.RegisterEnum(name, nameSpan)
			kind = DefEnum
		case ast.ItemUnion:
			id = tc.types.RegisterUnion(name, nameSpan)
			kind = DefUnion
		default:
			continue
		}
		tc.typeNames[name] = id
		tc.typeItems[id] = itemID
		tc.addDef(name, kind, nameSpan, id)
	}
}

// resolveTypeShapes fills fields, cases and variants of the registered types.
func (tc *typeChecker) resolveTypeShapes(items []ast.ItemID) {
	for _, itemID := range items {
		name, _ := tc.builder.Items.DeclName(itemID)
		id, ok := tc.typeNames[name]
		if !ok || tc.typeItems[id] != itemID {
			continue
		}
		if decl, ok := tc.builder.Items.Struct(itemID); ok {
			tc.resolveStruct(id, decl)
		} else if decl, ok := tc.builder.Items.Enum(itemID); ok {
			tc.resolveEnum(id, decl)
		} else if decl, ok := tc.builder.Items.Union(itemID); ok {
			tc.resolveUnion(id, decl)
		}
	}
}

func (tc *typeChecker) resolveStruct(id types.TypeID, decl *ast.StructDecl) {
	fields := make([]types.StructField, 0, len(decl.Fields))
	seen := make(map[source.StringID]source.Span, len(decl.Fields))
	for _, f := range decl.Fields {
		if prev, dup := seen[f.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateSymbol, f.NameSpan, prev, "previous field here",
				"duplicate field '%s' in struct '%s'", tc.name(f.Name), tc.name(decl.Name))
			continue
		}
		seen[f.Name] = f.NameSpan
		ft := tc.resolveTypeExpr(f.Type)
		fields = append(fields, types.StructField{Name: f.Name, Type: ft})
		tc.addDef(f.Name, DefField, f.NameSpan, ft)
	}
	tc.types.SetStructFields(id, fields)
}

func (tc *typeChecker) resolveEnum(id types.TypeID, decl *ast.EnumDecl) {
	cases := make([]source.StringID, 0, len(decl.Cases))
	seen := make(map[source.StringID]source.Span, len(decl.Cases))
	for _, c := range decl.Cases {
		if prev, dup := seen[c.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateSymbol, c.NameSpan, prev, "previous case here",
				"duplicate case '%s' in enum '%s'", tc.name(c.Name), tc.name(decl.Name))
			continue
		}
		seen[c.Name] = c.NameSpan
		cases = append(cases, c.Name)
		tc.addDef(c.Name, DefCase, c.NameSpan, id)
	}
	tc.types.SetEnumCases(id, cases)
}

func (tc *typeChecker) resolveUnion(id types.TypeID, decl *ast.UnionDecl) {
	variants := make([]types.UnionVariant, 0, len(decl.Variants))
	seen := make(map[source.StringID]source.Span, len(decl.Variants))
	for _, v := range decl.Variants {
		texpr := tc.builder.Types.Get(v.Type)
		if texpr == nil || texpr.Kind != ast.TypeExprNamed {
			tc.report(diag.SemaBadUnionVariant, v.Span, "union variant must be a named type")
			continue
		}
		if prev, dup := seen[texpr.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateSymbol, v.Span, prev, "previous variant here",
				"duplicate variant '%s' in union '%s'", tc.name(texpr.Name), tc.name(decl.Name))
			continue
		}
		seen[texpr.Name] = texpr.NameSpan
		vt := tc.resolveTypeExpr(v.Type)
		if vt == id {
			tc.report(diag.SemaBadUnionVariant, v.Span, "union '%s' cannot contain itself", tc.name(decl.Name))
			continue
		}
		variants = append(variants, types.UnionVariant{Name: texpr.Name, Type: vt})
	}
	tc.types.SetUnionVariants(id, variants)
}

// registerFunctions resolves signatures; bodies are checked later.
func (tc *typeChecker) registerFunctions(items []ast.ItemID) {
	for _, itemID := range items {
		fn, ok := tc.builder.Items.Fn(itemID)
		if !ok {
			continue
		}
		if fn.Name == tc.printName {
			tc.report(diag.SemaDuplicateSymbol, fn.NameSpan, "'print' is a builtin function")
			continue
		}
		if prev, dup := tc.fns[fn.Name]; dup {
			tc.reportWithNote(diag.SemaDuplicateSymbol, fn.NameSpan, prev.nameSpan, "previous declaration here",
				"function '%s' is already declared", tc.name(fn.Name))
			continue
		}
		if _, clash := tc.typeNames[fn.Name]; clash {
			tc.report(diag.SemaDuplicateSymbol, fn.NameSpan, "'%s' is already declared as a type", tc.name(fn.Name))
			continue
		}
		sig := &fnSig{item: itemID, nameSpan: fn.NameSpan, resolved: true}
		for _, p := range fn.Params {
			pt := tc.resolveTypeExpr(p.Type)
			if tc.isError(pt) {
				sig.resolved = false
			}
			sig.params = append(sig.params, pt)
		}
		if fn.Result.IsValid() {
			sig.result = tc.resolveTypeExpr(fn.Result)
			if tc.isError(sig.result) {
				sig.resolved = false
			}
		} else {
			sig.result = tc.types.Builtins().Void
		}
		sig.typ = tc.types.RegisterFn(sig.params, sig.result)
		tc.fns[fn.Name] = sig
		tc.fnOrder = append(tc.fnOrder, fn.Name)
		tc.addDef(fn.Name, DefFn, fn.NameSpan, sig.typ)
	}
}

// resolveTypeExpr maps a syntactic type to a TypeID; unknown names yield the
// poison type after reporting.
func (tc *typeChecker) resolveTypeExpr(id ast.TypeID) types.TypeID {
	texpr := tc.builder.Types.Get(id)
	if texpr == nil {
		return tc.errorType()
	}
	switch texpr.Kind {
	case ast.TypeExprNamed:
		if bt, ok := tc.builtins[texpr.Name]; ok {
			return bt
		}
		if nt, ok := tc.typeNames[texpr.Name]; ok {
			_, declSpan := tc.builder.Items.DeclName(tc.typeItems[nt])
			tc.addRef(texpr.NameSpan, declSpan)
			return nt
		}
		tc.report(diag.SemaUnknownType, texpr.NameSpan, "unknown type '%s'", tc.name(texpr.Name))
		return tc.errorType()
	case ast.TypeExprOptional:
		elem := tc.resolveTypeExpr(texpr.Elem)
		if tc.isError(elem) {
			return elem
		}
		if tc.types.KindOf(elem) == types.KindOptional {
			// T?? схлопывается в T?
			return elem
		}
		return tc.types.Optional(elem)
	case ast.TypeExprArray:
		elem := tc.resolveTypeExpr(texpr.Elem)
		if tc.isError(elem) {
			return elem
		}
		return tc.types.Array(elem)
	case ast.TypeExprDict:
		key := tc.resolveTypeExpr(texpr.Key)
		val := tc.resolveTypeExpr(texpr.Elem)
		if tc.isError(key) || tc.isError(val) {
			return tc.errorType()
		}
		if !tc.types.IsHashable(key) {
			tc.report(diag.SemaUnhashable, tc.typeExprSpan(texpr.Key),
				"dictionary key type '%s' is not hashable", tc.label(key))
			return tc.errorType()
		}
		return tc.types.Dict(key, val)
	case ast.TypeExprSet:
		elem := tc.resolveTypeExpr(texpr.Elem)
		if tc.isError(elem) {
			return elem
		}
		if !tc.types.IsHashable(elem) {
			tc.report(diag.SemaUnhashable, tc.typeExprSpan(texpr.Elem),
				"set element type '%s' is not hashable", tc.label(elem))
			return tc.errorType()
		}
		return tc.types.Set(elem)
	}
	return tc.errorType()
}

func (tc *typeChecker) typeExprSpan(id ast.TypeID) source.Span {
	if texpr := tc.builder.Types.Get(id); texpr != nil {
		return texpr.Span
	}
	return source.Span{}
}
