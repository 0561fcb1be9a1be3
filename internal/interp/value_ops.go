package interp

import (
	"math"
	"strconv"
	"strings"
)

// Clone deep-copies v so that the copy shares no backing storage with it.
func (v Value) Clone() Value {
	out := v
	if v.Fields != nil {
		out.Fields = make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			out.Fields[i] = Field{Name: f.Name, Value: f.Value.Clone()}
		}
	}
	if v.Elems != nil {
		out.Elems = make([]Value, len(v.Elems))
		for i, e := range v.Elems {
			out.Elems[i] = e.Clone()
		}
	}
	if v.Entries != nil {
		out.Entries = make([]Entry, len(v.Entries))
		for i, e := range v.Entries {
			out.Entries[i] = Entry{Key: e.Key.Clone(), Value: e.Value.Clone()}
		}
	}
	return out
}

// Equal reports structural equality. Sets and dictionaries compare without
// regard to order.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	case KindString:
		return v.Str == other.Str
	case KindBool:
		return v.Bool == other.Bool
	case KindVoid, KindNone, KindInvalid:
		return true
	case KindFunc:
		return v.Type == other.Type
	case KindEnum:
		return v.Type == other.Type && v.Case == other.Case
	case KindUnion, KindSome:
		if v.Type != other.Type || v.Case != other.Case {
			return false
		}
		return equalList(v.Elems, other.Elems)
	case KindStruct:
		if v.Type != other.Type || len(v.Fields) != len(other.Fields) {
			return false
		}
		for i := range v.Fields {
			if v.Fields[i].Name != other.Fields[i].Name || !v.Fields[i].Value.Equal(other.Fields[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		return equalList(v.Elems, other.Elems)
	case KindSet:
		if len(v.Elems) != len(other.Elems) {
			return false
		}
		for _, e := range v.Elems {
			if !containsValue(other.Elems, e) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.Entries) != len(other.Entries) {
			return false
		}
		for _, e := range v.Entries {
			o := other.lookupEntry(e.Key)
			if o == nil || !o.Value.Equal(e.Value) {
				return false
			}
		}
		return true
	}
	return false
}

func equalList(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders v the way print and string interpolation show it.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb, false)
	return sb.String()
}

// write renders v; nested strings are quoted so that collections stay readable.
func (v Value) write(sb *strings.Builder, nested bool) {
	switch v.Kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.Float))
	case KindString:
		if nested {
			sb.WriteString(strconv.Quote(v.Str))
		} else {
			sb.WriteString(v.Str)
		}
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindVoid:
		sb.WriteString("()")
	case KindNone:
		sb.WriteString("nil")
	case KindSome:
		v.Elems[0].write(sb, nested)
	case KindFunc:
		sb.WriteString("func " + v.Type)
	case KindEnum:
		sb.WriteString(v.Type)
		if v.Case != "" {
			sb.WriteString("." + v.Case)
		}
	case KindUnion:
		if len(v.Elems) == 0 {
			sb.WriteString(v.Type + "." + v.Case)
			return
		}
		sb.WriteString(v.Type + "." + v.Case + "(")
		v.Elems[0].write(sb, true)
		sb.WriteString(")")
	case KindStruct:
		sb.WriteString(v.Type + "(")
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name + ": ")
			f.Value.write(sb, true)
		}
		sb.WriteString(")")
	case KindArray:
		writeList(sb, "[", v.Elems, "]")
	case KindSet:
		writeList(sb, "Set([", v.Elems, "])")
	case KindDict:
		if len(v.Entries) == 0 {
			sb.WriteString("[:]")
			return
		}
		sb.WriteString("[")
		for i, e := range v.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.Key.write(sb, true)
			sb.WriteString(": ")
			e.Value.write(sb, true)
		}
		sb.WriteString("]")
	default:
		sb.WriteString("<invalid>")
	}
}

func writeList(sb *strings.Builder, open string, elems []Value, closer string) {
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		e.write(sb, true)
	}
	sb.WriteString(closer)
}

// formatFloat keeps a fractional part on integral values: 2.0, not 2.
func formatFloat(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
