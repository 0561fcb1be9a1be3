package types

import (
	"testing"

	"slang/internal/ast"
	"slang/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if b.Void == NoTypeID || b.Bool == NoTypeID || b.Error == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.KindOf(b.Int) != KindInt {
		t.Fatalf("expected int kind, got %v", in.KindOf(b.Int))
	}
	if !in.IsError(b.Error) || in.IsError(b.Int) {
		t.Fatalf("poison type misclassified")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if in.Array(b.String) != in.Array(b.String) {
		t.Fatalf("array types should be deduplicated")
	}
	if in.Dict(b.String, b.Int) == in.Dict(b.Int, b.String) {
		t.Fatalf("dictionary key and value must both affect identity")
	}
	if in.Optional(b.Int) == in.Array(b.Int) {
		t.Fatalf("optional and array of the same element must differ")
	}
	f1 := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int)
	f2 := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int)
	if f1 != f2 {
		t.Fatalf("function types should be deduplicated")
	}
}

func TestNominalTypesAreDistinct(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	name := strs.Intern("P")
	a := in.RegisterStruct(name, source.Span{})
	b := in.RegisterStruct(name, source.Span{})
	if a == b {
		t.Fatalf("each registration must allocate a new nominal type")
	}
	x := strs.Intern("x")
	in.SetStructFields(a, []StructField{{Name: x, Type: in.Builtins().Int}})
	info, ok := in.StructInfo(a)
	if !ok {
		t.Fatalf("struct info missing")
	}
	if f, ok := info.Field(x); !ok || f.Type != in.Builtins().Int {
		t.Fatalf("field lookup failed: %+v", info)
	}
	if _, ok := in.EnumInfo(a); ok {
		t.Fatalf("struct must not answer as enum")
	}
}

func TestLabels(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	color := in.RegisterEnum(strs.Intern("Color"), source.Span{})
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "Int"},
		{in.Optional(b.String), "String?"},
		{in.Array(in.Optional(color)), "[Color?]"},
		{in.Dict(b.String, in.Array(b.Float)), "[String: [Float]]"},
		{in.Set(b.Bool), "Set<Bool>"},
		{in.RegisterFn([]TypeID{b.Int}, b.Bool), "(Int) -> Bool"},
		{in.RegisterFn(nil, b.Void), "()"},
		{b.Error, "<error>"},
	}
	for _, tc := range cases {
		if got := Label(in, tc.id); got != tc.want {
			t.Fatalf("Label = %q, want %q", got, tc.want)
		}
	}
}

func TestOperatorRules(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	and, ok := BinaryRule(ast.ExprBinaryLogicalAnd)
	if !ok || !and.ShortCircuit || and.Result(b.Int, b.Bool) != b.Bool {
		t.Fatalf("logical and: %+v", and)
	}
	if !and.Operands.Admits(in.Family(b.Bool)) || and.Operands.Admits(in.Family(b.Int)) {
		t.Fatalf("logical and must accept only bool operands")
	}
	sub, _ := BinaryRule(ast.ExprBinarySub)
	if sub.Operands.Admits(in.Family(b.String)) || sub.Result(b.Float, b.Bool) != b.Float {
		t.Fatalf("subtraction: %+v", sub)
	}
	eq, _ := BinaryRule(ast.ExprBinaryEq)
	if !eq.Operands.Admits(in.Family(in.Array(b.Int))) || eq.Operands.Admits(FamilyNone) {
		t.Fatalf("equality should admit composites only")
	}
	if !in.IsHashable(b.String) || in.IsHashable(in.Array(b.Int)) {
		t.Fatalf("hashability misclassified")
	}
	if rule, ok := UnaryRule(ast.ExprUnaryNot); !ok || !rule.YieldsBool {
		t.Fatalf("unexpected unary rule for '!'")
	}
}
