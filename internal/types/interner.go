package types

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"slang/internal/source"
)

// Builtins are the primitive types every program starts with.
type Builtins struct {
	Void, Bool, Int, Float, String TypeID
	// Error is the poison type handed out after a reported failure.
	Error TypeID
}

// FnInfo is the signature behind a KindFn type.
type FnInfo struct {
	Params []TypeID
	Result TypeID // Void when omitted
}

// Interner hands out TypeIDs. Structural types (optional, array,
// dictionary, set, fn) are hash-consed, so comparing them is comparing IDs.
// Struct, enum and union get a fresh ID on every registration.
type Interner struct {
	Strings *source.Interner

	types    []Type
	seen     map[Type]TypeID
	sigs     map[string]TypeID
	builtins Builtins

	structs []StructInfo
	enums   []EnumInfo
	unions  []UnionInfo
	fns     []FnInfo
}

func NewInterner(strs *source.Interner) *Interner {
	in := &Interner{
		Strings: strs,
		seen:    make(map[Type]TypeID, 64),
		sigs:    make(map[string]TypeID),
		// нулевые слоты заняты, ID 0 и Payload 0 ничего не значат
		types:   []Type{{Kind: KindInvalid}},
		structs: make([]StructInfo, 1),
		enums:   make([]EnumInfo, 1),
		unions:  make([]UnionInfo, 1),
		fns:     make([]FnInfo, 1),
	}
	if in.Strings == nil {
		in.Strings = source.NewInterner()
	}
	in.builtins = Builtins{
		Void:   in.Intern(Type{Kind: KindVoid}),
		Bool:   in.Intern(Type{Kind: KindBool}),
		Int:    in.Intern(Type{Kind: KindInt}),
		Float:  in.Intern(Type{Kind: KindFloat}),
		String: in.Intern(Type{Kind: KindString}),
		Error:  in.Intern(Type{Kind: KindError}),
	}
	return in
}

func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns the ID of an equal descriptor, registering t if new.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.seen[t]; ok {
		return id
	}
	id := in.push(t)
	in.seen[t] = id
	return id
}

func (in *Interner) push(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

// addInfo appends info to a side table and returns its slot for Payload.
func addInfo[T any](table *[]T, info T) uint32 {
	slot, err := safecast.Conv[uint32](len(*table))
	if err != nil {
		panic(fmt.Errorf("%T table overflow: %w", info, err))
	}
	*table = append(*table, info)
	return slot
}

func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an unknown id.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: unknown TypeID %d", id))
	}
	return t
}

// KindOf yields KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	t, _ := in.Lookup(id)
	return t.Kind
}

// Len counts interned types, the reserved zero slot included.
func (in *Interner) Len() int { return len(in.types) }

func (in *Interner) Optional(elem TypeID) TypeID { return in.Intern(MakeOptional(elem)) }
func (in *Interner) Array(elem TypeID) TypeID    { return in.Intern(MakeArray(elem)) }
func (in *Interner) Dict(k, v TypeID) TypeID     { return in.Intern(MakeDict(k, v)) }
func (in *Interner) Set(elem TypeID) TypeID      { return in.Intern(MakeSet(elem)) }

// RegisterFn interns the function type (params) -> result.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	key := signatureKey(params, result)
	if id, ok := in.sigs[key]; ok {
		return id
	}
	slot := addInfo(&in.fns, FnInfo{Params: slices.Clone(params), Result: result})
	id := in.push(Type{Kind: KindFn, Payload: slot})
	in.sigs[key] = id
	return id
}

func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFn || int(t.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[t.Payload], true
}

func signatureKey(params []TypeID, result TypeID) string {
	var sb strings.Builder
	for _, p := range params {
		fmt.Fprintf(&sb, "%d,", p)
	}
	fmt.Fprintf(&sb, "->%d", result)
	return sb.String()
}
