package types

import (
	"slang/internal/source"
)

// StructField describes a named struct field.
type StructField struct {
	Name source.StringID
	Type TypeID
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Name   source.StringID
	Decl   source.Span
	Fields []StructField
}

// EnumInfo lists the cases of an enum in declaration order.
type EnumInfo struct {
	Name  source.StringID
	Decl  source.Span
	Cases []source.StringID
}

// UnionVariant is a single union alternative; its name is the spelled type name.
type UnionVariant struct {
	Name source.StringID
	Type TypeID
}

// UnionInfo stores metadata for a union type.
type UnionInfo struct {
	Name     source.StringID
	Decl     source.Span
	Variants []UnionVariant
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
func (in *Interner) RegisterStruct(name source.StringID, decl source.Span) TypeID {
	slot := addInfo(&in.structs, StructInfo{Name: name, Decl: decl})
	return in.push(Type{Kind: KindStruct, Payload: slot})
}

// SetStructFields stores the resolved fields for the struct type.
func (in *Interner) SetStructFields(id TypeID, fields []StructField) {
	if info, ok := in.StructInfo(id); ok {
		info.Fields = append([]StructField(nil), fields...)
	}
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct || int(tt.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// Field finds a struct field by name.
func (info *StructInfo) Field(name source.StringID) (StructField, bool) {
	for _, f := range info.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// RegisterEnum allocates a nominal enum type slot.
func (in *Interner) RegisterEnum(name source.StringID, decl source.Span) TypeID {
	slot := addInfo(&in.enums, EnumInfo{Name: name, Decl: decl})
	return in.push(Type{Kind: KindEnum, Payload: slot})
}

// SetEnumCases stores the enum cases in declaration order.
func (in *Interner) SetEnumCases(id TypeID, cases []source.StringID) {
	if info, ok := in.EnumInfo(id); ok {
		info.Cases = append([]source.StringID(nil), cases...)
	}
}

// EnumInfo returns metadata for the provided enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum || int(tt.Payload) >= len(in.enums) {
		return nil, false
	}
	return &in.enums[tt.Payload], true
}

// HasCase reports whether the enum declares the case.
func (info *EnumInfo) HasCase(name source.StringID) bool {
	for _, c := range info.Cases {
		if c == name {
			return true
		}
	}
	return false
}

// RegisterUnion allocates a nominal union type slot and returns its TypeID.
func (in *Interner) RegisterUnion(name source.StringID, decl source.Span) TypeID {
	slot := addInfo(&in.unions, UnionInfo{Name: name, Decl: decl})
	return in.push(Type{Kind: KindUnion, Payload: slot})
}

// SetUnionVariants stores the resolved variants for the union type.
func (in *Interner) SetUnionVariants(id TypeID, variants []UnionVariant) {
	if info, ok := in.UnionInfo(id); ok {
		info.Variants = append([]UnionVariant(nil), variants...)
	}
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// Variant finds a union variant by name.
func (info *UnionInfo) Variant(name source.StringID) (UnionVariant, bool) {
	for _, v := range info.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return UnionVariant{}, false
}

// NominalName returns the declared name of a struct, enum or union type.
func (in *Interner) NominalName(id TypeID) (source.StringID, bool) {
	if info, ok := in.StructInfo(id); ok {
		return info.Name, true
	}
	if info, ok := in.EnumInfo(id); ok {
		return info.Name, true
	}
	if info, ok := in.UnionInfo(id); ok {
		return info.Name, true
	}
	return source.NoStringID, false
}
