package types

import (
	"strings"

	"slang/internal/source"
)

// Label returns a user-friendly label for a TypeID, spelled the way the
// type is written in source: Int, [String], [String: Int], Set<Int>, P?.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindVoid:
		return "Void"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindError:
		return "<error>"
	case KindStruct, KindEnum, KindUnion:
		name, _ := typesIn.NominalName(id)
		return lookupNameFallback(typesIn.Strings, name)
	case KindOptional:
		return labelDepth(typesIn, tt.Elem, depth+1) + "?"
	case KindArray:
		return "[" + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindDict:
		return "[" + labelDepth(typesIn, tt.Key, depth+1) + ": " + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindSet:
		return "Set<" + labelDepth(typesIn, tt.Elem, depth+1) + ">"
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			return "func(?)"
		}
		params := make([]string, len(info.Params))
		for i, param := range info.Params {
			params[i] = labelDepth(typesIn, param, depth+1)
		}
		out := "(" + strings.Join(params, ", ") + ")"
		if typesIn.KindOf(info.Result) != KindVoid {
			out += " -> " + labelDepth(typesIn, info.Result, depth+1)
		}
		return out
	}
	return tt.Kind.String()
}

func lookupNameFallback(strs *source.Interner, id source.StringID) string {
	if strs == nil || id == source.NoStringID {
		return "?"
	}
	if s, ok := strs.Lookup(id); ok {
		return s
	}
	return "?"
}
