package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt
	KindFloat
	KindString
	KindFn
	KindStruct
	KindEnum
	KindUnion
	KindOptional
	KindArray
	KindDict
	KindSet
	// KindError is the poison type: any check involving it succeeds silently.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFn:
		return "fn"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindOptional:
		return "optional"
	case KindArray:
		return "array"
	case KindDict:
		return "dictionary"
	case KindSet:
		return "set"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Elem TypeID // optional/array/set element, dictionary value
	Key  TypeID // dictionary key
	// Payload indexes the per-kind info table for nominal and function types.
	Payload uint32
}

// Descriptor helpers ---------------------------------------------------------

// MakeOptional describes T?.
func MakeOptional(elem TypeID) Type {
	return Type{Kind: KindOptional, Elem: elem}
}

// MakeArray describes [T].
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeDict describes [K: V].
func MakeDict(key, value TypeID) Type {
	return Type{Kind: KindDict, Key: key, Elem: value}
}

// MakeSet describes Set<T>.
func MakeSet(elem TypeID) Type {
	return Type{Kind: KindSet, Elem: elem}
}
