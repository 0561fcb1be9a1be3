package ast

import (
	"slang/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemUnion
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "func"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemUnion:
		return "union"
	}
	return "item(?)"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// FnParam is a single `name: Type` parameter.
type FnParam struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []FnParam
	// Result is NoTypeID for functions without `-> T`.
	Result TypeID
	Body   StmtID
}

type StructField struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

type StructDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   []StructField
}

type EnumCase struct {
	Name     source.StringID
	NameSpan source.Span
}

type EnumDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Cases    []EnumCase
}

// UnionVariant is one `| T` member; its variant name is the type's name.
type UnionVariant struct {
	Type TypeID
	Span source.Span
}

type UnionDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Variants []UnionVariant
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Structs *Arena[StructDecl]
	Enums   *Arena[EnumDecl]
	Unions  *Arena[UnionDecl]
}

// NewItems creates per-kind item arenas with capHint initial capacity.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructDecl](capHint),
		Enums:   NewArena[EnumDecl](capHint),
		Unions:  NewArena[UnionDecl](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	return i.new(ItemFn, span, i.Fns.Allocate(fn))
}

func (i *Items) NewStruct(span source.Span, decl StructDecl) ItemID {
	return i.new(ItemStruct, span, i.Structs.Allocate(decl))
}

func (i *Items) NewEnum(span source.Span, decl EnumDecl) ItemID {
	return i.new(ItemEnum, span, i.Enums.Allocate(decl))
}

func (i *Items) NewUnion(span source.Span, decl UnionDecl) ItemID {
	return i.new(ItemUnion, span, i.Unions.Allocate(decl))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) Struct(id ItemID) (*StructDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) Enum(id ItemID) (*EnumDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

func (i *Items) Union(id ItemID) (*UnionDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemUnion {
		return nil, false
	}
	return i.Unions.Get(uint32(item.Payload)), true
}

// DeclName returns the declared name and its identifier span for any item.
func (i *Items) DeclName(id ItemID) (source.StringID, source.Span) {
	item := i.Get(id)
	if item == nil {
		return source.NoStringID, source.Span{}
	}
	switch item.Kind {
	case ItemFn:
		fn := i.Fns.Get(uint32(item.Payload))
		return fn.Name, fn.NameSpan
	case ItemStruct:
		d := i.Structs.Get(uint32(item.Payload))
		return d.Name, d.NameSpan
	case ItemEnum:
		d := i.Enums.Get(uint32(item.Payload))
		return d.Name, d.NameSpan
	case ItemUnion:
		d := i.Unions.Get(uint32(item.Payload))
		return d.Name, d.NameSpan
	}
	return source.NoStringID, source.Span{}
}
