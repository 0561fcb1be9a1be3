// Package interp executes checked slang programs by walking the AST.
package interp

// Kind identifies the runtime shape of a Value.
type Kind uint8

const (
	// KindInvalid is the zero Value.
	KindInvalid Kind = iota
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit float.
	KindFloat
	// KindString is an immutable string.
	KindString
	// KindBool is a boolean.
	KindBool
	// KindVoid is the result of functions without a result type.
	KindVoid
	// KindStruct is a struct instance; Fields follow declaration order.
	KindStruct
	// KindEnum is an enum case. An empty Case marks the placeholder an
	// identifier naming a type evaluates to.
	KindEnum
	// KindUnion is a union instance; the payload is Elems[0].
	KindUnion
	// KindSome is a present optional; the payload is Elems[0].
	KindSome
	// KindNone is an absent optional.
	KindNone
	// KindArray is an ordered list.
	KindArray
	// KindDict is a list of entries in insertion order.
	KindDict
	// KindSet is a list of distinct elements in insertion order.
	KindSet
	// KindFunc is a reference to a top-level function.
	KindFunc
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt:     "Int",
	KindFloat:   "Float",
	KindString:  "String",
	KindBool:    "Bool",
	KindVoid:    "Void",
	KindStruct:  "struct",
	KindEnum:    "enum",
	KindUnion:   "union",
	KindSome:    "some",
	KindNone:    "none",
	KindArray:   "array",
	KindDict:    "dictionary",
	KindSet:     "set",
	KindFunc:    "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a runtime value. Values have copy semantics: anything that stores
// a value (a variable, a parameter, a field, an element) stores a Clone, so
// two bindings never share a backing slice.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	// Type is the nominal type name of struct, enum and union values and the
	// function name of KindFunc.
	Type string
	// Case is the enum case or union variant name.
	Case    string
	Fields  []Field
	Elems   []Value
	Entries []Entry
}

// Field is a named struct field.
type Field struct {
	Name  string
	Value Value
}

// Entry is one dictionary key/value pair.
type Entry struct {
	Key   Value
	Value Value
}

func IntValue(n int64) Value      { return Value{Kind: KindInt, Int: n} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func VoidValue() Value            { return Value{Kind: KindVoid} }
func NoneValue() Value            { return Value{Kind: KindNone} }
func FuncValue(name string) Value { return Value{Kind: KindFunc, Type: name} }

// SomeValue wraps v into a present optional.
func SomeValue(v Value) Value {
	return Value{Kind: KindSome, Elems: []Value{v}}
}

// EnumValue builds the case value TypeName.caseName.
func EnumValue(typeName, caseName string) Value {
	return Value{Kind: KindEnum, Type: typeName, Case: caseName}
}

// UnionValue builds TypeName.variant(payload).
func UnionValue(typeName, variant string, payload Value) Value {
	return Value{Kind: KindUnion, Type: typeName, Case: variant, Elems: []Value{payload}}
}

// StructValue builds a struct instance from fields in declaration order.
func StructValue(typeName string, fields []Field) Value {
	return Value{Kind: KindStruct, Type: typeName, Fields: fields}
}

// ArrayValue builds an array over elems without copying them.
func ArrayValue(elems []Value) Value {
	return Value{Kind: KindArray, Elems: elems}
}

// SetValue builds a set; later duplicates of an element are dropped.
func SetValue(elems []Value) Value {
	out := make([]Value, 0, len(elems))
	for _, e := range elems {
		if !containsValue(out, e) {
			out = append(out, e)
		}
	}
	return Value{Kind: KindSet, Elems: out}
}

// DictValue builds a dictionary; a repeated key overwrites the earlier value
// in place, so the first insertion position wins.
func DictValue(entries []Entry) Value {
	d := Value{Kind: KindDict, Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if slot := d.lookupEntry(e.Key); slot != nil {
			slot.Value = e.Value
			continue
		}
		d.Entries = append(d.Entries, e)
	}
	return d
}

// Payload returns the wrapped value of a union or present optional.
func (v Value) Payload() (Value, bool) {
	if (v.Kind == KindUnion || v.Kind == KindSome) && len(v.Elems) == 1 {
		return v.Elems[0], true
	}
	return Value{}, false
}

// Field returns a pointer to the named struct field.
func (v *Value) Field(name string) *Value {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return &v.Fields[i].Value
		}
	}
	return nil
}

// lookupEntry finds a dictionary entry by structural key equality; the first
// match wins.
func (v *Value) lookupEntry(key Value) *Entry {
	for i := range v.Entries {
		if v.Entries[i].Key.Equal(key) {
			return &v.Entries[i]
		}
	}
	return nil
}

func containsValue(list []Value, v Value) bool {
	for _, e := range list {
		if e.Equal(v) {
			return true
		}
	}
	return false
}
