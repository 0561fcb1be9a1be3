package ast

import (
	"slang/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Interps  *Arena[ExprInterpData]
	Idents   *Arena[ExprIdentData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Members  *Arena[ExprMemberData]
	Structs  *Arena[ExprStructData]
	Switches *Arena[SwitchData]
	Arrays   *Arena[ExprArrayData]
	Dicts    *Arena[ExprDictData]
	Indices  *Arena[ExprIndexData]
	Assigns  *Arena[ExprAssignData]
}

// NewExprs creates per-kind expression arenas; capHint 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Interps:  NewArena[ExprInterpData](small),
		Idents:   NewArena[ExprIdentData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](small),
		Calls:    NewArena[ExprCallData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		Structs:  NewArena[ExprStructData](small),
		Switches: NewArena[SwitchData](small),
		Arrays:   NewArena[ExprArrayData](small),
		Dicts:    NewArena[ExprDictData](small),
		Indices:  NewArena[ExprIndexData](small),
		Assigns:  NewArena[ExprAssignData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payloadOf fetches the side-table entry of id, or nil when id is not a
// node of the given kind.
func payloadOf[T any](e *Exprs, id ExprID, kind ExprKind, table *Arena[T]) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return nil, false
	}
	return table.Get(uint32(expr.Payload)), true
}

// NewLiteral creates an int, float, string or bool literal.
func (e *Exprs) NewLiteral(span source.Span, kind ExprKind, text string) ExprID {
	return e.new(kind, span, e.Literals.Allocate(ExprLiteralData{Text: text}))
}

// Literal returns literal data for any literal kind.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprIntLit, ExprFloatLit, ExprStringLit, ExprBoolLit:
		return e.Literals.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewNil(span source.Span) ExprID {
	return e.new(ExprNil, span, 0)
}

func (e *Exprs) NewInterp(span source.Span, parts []InterpPart) ExprID {
	return e.new(ExprInterp, span, e.Interps.Allocate(ExprInterpData{Parts: append([]InterpPart(nil), parts...)}))
}

func (e *Exprs) Interp(id ExprID) (*ExprInterpData, bool) { return payloadOf(e, id, ExprInterp, e.Interps) }

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) { return payloadOf(e, id, ExprIdent, e.Idents) }

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) { return payloadOf(e, id, ExprBinary, e.Binaries) }

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) { return payloadOf(e, id, ExprUnary, e.Unaries) }

// NewCall creates a new function call expression.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Target: target, Args: append([]ExprID(nil), args...)}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) { return payloadOf(e, id, ExprCall, e.Calls) }

// NewMember creates a new member access expression.
func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID, fieldSpan source.Span) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(ExprMemberData{Target: target, Field: field, FieldSpan: fieldSpan}))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) { return payloadOf(e, id, ExprMember, e.Members) }

func (e *Exprs) NewStruct(span source.Span, data ExprStructData) ExprID {
	return e.new(ExprStructLit, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) { return payloadOf(e, id, ExprStructLit, e.Structs) }

func (e *Exprs) NewSwitch(span source.Span, data SwitchData) ExprID {
	return e.new(ExprSwitch, span, e.Switches.Allocate(data))
}

func (e *Exprs) Switch(id ExprID) (*SwitchData, bool) { return payloadOf(e, id, ExprSwitch, e.Switches) }

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprArray, span, e.Arrays.Allocate(ExprArrayData{Elems: append([]ExprID(nil), elems...)}))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) { return payloadOf(e, id, ExprArray, e.Arrays) }

func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Entries: append([]DictEntry(nil), entries...)}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) { return payloadOf(e, id, ExprDict, e.Dicts) }

// NewIndex creates a new subscript expression.
func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) { return payloadOf(e, id, ExprIndex, e.Indices) }

func (e *Exprs) NewAssign(span source.Span, op ExprAssignOp, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) { return payloadOf(e, id, ExprAssign, e.Assigns) }
