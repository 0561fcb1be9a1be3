package ast

import (
	"slang/internal/source"
)

type TypeExprKind uint8

const (
	TypeExprNamed    TypeExprKind = iota // Int, P
	TypeExprOptional                     // T?
	TypeExprArray                        // [T]
	TypeExprDict                         // [K: V]
	TypeExprSet                          // Set<T>
)

// TypeExpr is a syntactic type. Elem is the wrapped/element/value type;
// Key is used by dictionaries only.
type TypeExpr struct {
	Kind     TypeExprKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Elem     TypeID
	Key      TypeID
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) NewNamed(span source.Span, name source.StringID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeExprNamed, Span: span, Name: name, NameSpan: span}))
}

func (t *TypeExprs) NewOptional(span source.Span, elem TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeExprOptional, Span: span, Elem: elem}))
}

func (t *TypeExprs) NewArray(span source.Span, elem TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeExprArray, Span: span, Elem: elem}))
}

func (t *TypeExprs) NewDict(span source.Span, key, value TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeExprDict, Span: span, Key: key, Elem: value}))
}

// NewSet records `Set<T>`; NameSpan covers the `Set` identifier.
func (t *TypeExprs) NewSet(span, nameSpan source.Span, name source.StringID, elem TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeExprSet, Span: span, Name: name, NameSpan: nameSpan, Elem: elem}))
}
