package sema

import (
	"errors"
	"strings"
	"testing"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/types"
)

func TestScenarioProgramsTypeCheck(t *testing.T) {
	programs := []string{
		`func main() { print("\(1 + 2 * 3)") }`,
		`enum C { case r, g, b } func main(){ var x: C = C.g; switch(x){ C.r -> print("r") C.g -> print("g") C.b -> print("b") } }`,
		`struct P{x:Int} func main(){ var arr:[Int]=[1,2,3]; arr[5] }`,
		`union V = Int | String func main(){ var v:V = V.Int(5); switch(v){ V.Int -> print("\(v)") V.String -> print(v) } }`,
		`func main(){ var d:[String:Int]=["a":1]; print("\(d["b"])") }`,
	}
	for _, src := range programs {
		mustCheck(t, src)
	}
}

func TestEnumExhaustiveness(t *testing.T) {
	const decl = "enum C { case r, g, b }\n"
	cases := []string{"C.r", "C.g", "C.b"}
	arm := func(c string) string { return c + " -> print(\"x\")\n" }

	full := decl + "func f(x: C) {\nswitch (x) {\n" + arm(cases[0]) + arm(cases[1]) + arm(cases[2]) + "}\n}\n"
	mustCheck(t, full)

	for skip := range cases {
		var body strings.Builder
		for i, c := range cases {
			if i != skip {
				body.WriteString(arm(c))
			}
		}
		src := decl + "func f(x: C) {\nswitch (x) {\n" + body.String() + "}\n}\n"
		expectDiag(t, src, diag.SemaNonExhaustive, "must be exhaustive")
	}

	for dup := range cases {
		var body strings.Builder
		for _, c := range cases {
			body.WriteString(arm(c))
		}
		body.WriteString(arm(cases[dup]))
		src := decl + "func f(x: C) {\nswitch (x) {\n" + body.String() + "}\n}\n"
		expectDiag(t, src, diag.SemaDuplicateCase, "duplicate case")
	}
}

func TestDefaultSatisfiesExhaustiveness(t *testing.T) {
	mustCheck(t, `
enum C { case r, g, b }
func f(x: C) {
	switch (x) {
	C.r -> print("r")
	default -> print("other")
	}
}
func g(n: Int) {
	switch (n) {
	1 -> print("one")
	default -> print("many")
	}
}
func h(b: Bool) {
	switch (b) {
	true -> print("t")
	false -> print("f")
	}
}
`)
	expectDiag(t, `func g(n: Int) { switch (n) { 1 -> print("one") } }`, diag.SemaNonExhaustive, "default")
	expectDiag(t, `func g(n: Int) { switch (n) { 1 -> print("a")
2 -> print("b")
1 -> print("c")
default -> print("d") } }`, diag.SemaDuplicateCase, "duplicate case")
}

func TestUnionAndOptionalExhaustiveness(t *testing.T) {
	expectDiag(t, `
union V = Int | String
func f(v: V) {
	switch (v) {
	V.Int -> print(v)
	}
}
`, diag.SemaNonExhaustive, "V.String")

	expectDiag(t, `
func f(o: Int?) {
	switch (o) {
	some -> print(o)
	}
}
`, diag.SemaNonExhaustive, "none")

	expectDiag(t, `
func f(o: Int?) {
	switch (o) {
	some -> print(o)
	none -> print("none")
	default -> print("?")
	}
}
`, diag.SemaInvalidPattern, "exactly 'some' and 'none'")
}

func TestNarrowingIsScopedToArm(t *testing.T) {
	mustCheck(t, `
union V = Int | String
func f(v: V) {
	switch (v) {
	V.Int -> { var n: Int = v + 1 }
	V.String -> { var s: String = v }
	}
}
func g(o: Int?) {
	switch (o) {
	some -> { var n: Int = o * 2 }
	none -> print("none")
	}
}
`)

	// в соседней ветке сужения нет
	expectDiag(t, `
union V = Int | String
func f(v: V) {
	switch (v) {
	V.Int -> print(v)
	V.String -> { var n: Int = v }
	}
}
`, diag.SemaTypeMismatch, "String")

	// после switch переменная снова объединение
	expectDiag(t, `
union V = Int | String
func f(v: V) {
	switch (v) {
	V.Int -> print(v)
	V.String -> print(v)
	}
	var n: Int = v
}
`, diag.SemaTypeMismatch, "V")

	expectDiag(t, `
func g(o: Int?) {
	switch (o) {
	some -> print(o)
	none -> print("none")
	}
	var n: Int = o + 1
}
`, diag.SemaInvalidOperands, "Int?")
}

func TestNarrowedVariableIsNotAssignable(t *testing.T) {
	expectDiag(t, `
func g(o: Int?) {
	switch (o) {
	some -> { o = 3 }
	none -> print("none")
	}
}
`, diag.SemaNarrowedAssign, "'o'")
}

func TestFunctionsDoNotCaptureCallerScope(t *testing.T) {
	expectDiag(t, `
func helper() {
	print(x)
}
func main() {
	var x = 1
	helper()
}
`, diag.SemaUndefinedVariable, "undefined variable 'x'")

	// функции верхнего уровня видны из любого тела
	mustCheck(t, `
func main() { print(twice(2)) }
func twice(n: Int) -> Int { return n * 2 }
`)
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"unknown type", `func f(a: Missing) {}`, diag.SemaUnknownType, "unknown type 'Missing'"},
		{"duplicate type", "struct P { x: Int }\nenum P { case a }", diag.SemaDuplicateSymbol, "already declared"},
		{"duplicate function", "func f() {}\nfunc f() {}", diag.SemaDuplicateSymbol, "already declared"},
		{"builtin name", "struct Int { x: Int }", diag.SemaDuplicateSymbol, "builtin"},
		{"duplicate field", "struct P { x: Int, x: Int }", diag.SemaDuplicateSymbol, "duplicate field"},
		{"duplicate enum case", "enum C { case a, a }", diag.SemaDuplicateSymbol, "duplicate case"},
		{"unhashable key", "func f(d: [[Int]: Int]) {}", diag.SemaUnhashable, "not hashable"},
		{"unhashable set", "struct P { x: Int }\nfunc f(s: Set<P>) {}", diag.SemaUnhashable, "not hashable"},
		{"bad variant", "union U = Int | [Int]", diag.SemaBadUnionVariant, "named type"},
		{"missing return", "func f() -> Int { if (true) { return 1 } }", diag.SemaMissingReturn, "every path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectDiag(t, tt.src, tt.code, tt.msg)
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code diag.Code
		msg  string
	}{
		{"nil into non-optional", `var x: Int = nil`, diag.SemaNilNotOptional, "nil"},
		{"nil without type", `var x = nil`, diag.SemaEmptyLiteralNoType, "nil"},
		{"empty array without type", `var x = []`, diag.SemaEmptyLiteralNoType, "empty array"},
		{"empty dict without type", `var x = [:]`, diag.SemaEmptyLiteralNoType, "empty dictionary"},
		{"mixed array", `var x = [1, "a"]`, diag.SemaTypeMismatch, "same type"},
		{"int plus float", `var x = 1 + 2.0`, diag.SemaInvalidOperands, "Int and Float"},
		{"string minus", `var x = "a" - "b"`, diag.SemaInvalidOperands, "'-'"},
		{"logical on int", `var x = 1 && true`, diag.SemaInvalidOperands, "Bool"},
		{"condition", `if (1) { print("x") }`, diag.SemaConditionNotBool, "Bool"},
		{"arity", `add(1)`, diag.SemaArity, "expects 2"},
		{"argument type", `add(1, "b")`, diag.SemaTypeMismatch, "argument 2"},
		{"not callable", `var n = 1
n()`, diag.SemaNotCallable, "Int"},
		{"undefined", `print(nope)`, diag.SemaUndefinedVariable, "nope"},
		{"unknown field", `var p = P { x: 1, y: 2, z: 3 }`, diag.SemaUnknownField, "'z'"},
		{"missing field", `var p = P { x: 1 }`, diag.SemaMissingField, "'y'"},
		{"field access", `var p = P { x: 1, y: 2 }
print(p.q)`, diag.SemaUnknownField, "'q'"},
		{"index non-int", `var a = [1, 2]
print(a["k"])`, diag.SemaTypeMismatch, "Int"},
		{"not indexable", `var n = 3
print(n[0])`, diag.SemaNotIndexable, "Int"},
		{"assign to function", `add = 3`, diag.SemaNotAssignable, "function"},
		{"assign mismatch", `var s = "a"
s = 1`, diag.SemaTypeMismatch, "String"},
		{"bare variant", `var u = U.Int`, diag.SemaNoMember, "payload"},
		{"missing enum case", `var c = C.q`, diag.SemaNoMember, "no case"},
		{"print arity", `print(1, 2)`, diag.SemaArity, "print"},
		{"void value", `var v = noop()`, diag.SemaVoidValue, "Void"},
		{"optional member", `var o: P? = nil
print(o.x)`, diag.SemaNoMember, "unwrap"},
		{"int overflow", `var n = 99999999999999999999`, diag.SemaLiteralRange, "overflows"},
	}
	const prelude = `
struct P { x: Int, y: Int }
enum C { case a, b }
union U = Int | String
func add(a: Int, b: Int) -> Int { return a + b }
func noop() {}
`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectDiag(t, prelude+"func main() {\n"+tt.body+"\n}\n", tt.code, tt.msg)
		})
	}
}

func TestSwitchExpression(t *testing.T) {
	res := mustCheck(t, `
enum C { case r, g }
func name(c: C) -> String {
	var s = switch (c) {
	C.r -> return "red"
	C.g -> { return "green" }
	}
	return s
}
`)
	if res == nil {
		t.Fatalf("nil result")
	}

	expectDiag(t, `
enum C { case r, g }
func f(c: C) {
	var s = switch (c) {
	C.r -> return "red"
	C.g -> return 1
	}
}
`, diag.SemaSwitchExprMismatch, "String")

	expectDiag(t, `
enum C { case r, g }
func f(c: C) {
	var s = switch (c) {
	C.r -> return "red"
	C.g -> print("g")
	}
}
`, diag.SemaSwitchExprNoReturn, "must return")
}

func TestPoisonTypeSuppressesCascades(t *testing.T) {
	result, _, _ := checkSource(t, `
func main() {
	var a = missing + 1
	var b = a * 2
	print(b.foo)
}
`)
	if n := result.Bag.Len(); n != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %s", n, diagnosticsSummary(result.Bag))
	}

	for _, src := range []string{
		"struct P { x: Int }\nfunc main() { var d: [P: Int] = [:] }\n",
		"func main() { var s: Set<[Int]> = [] }\n",
		"func main() { var s: Set<[Int]> = [[1]] }\n",
	} {
		result, _, _ := checkSource(t, src)
		if n := result.Bag.Len(); n != 1 {
			t.Fatalf("%q: expected only the hashability error, got %d: %s", src, n, diagnosticsSummary(result.Bag))
		}
	}
}

func TestCoercionsRecorded(t *testing.T) {
	result, b, fileID := checkSource(t, `
func main() {
	var o: Int? = 5
	var s: Set<Int> = [1, 2, 2]
}
`)
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(result.Bag))
	}
	var values []ast.ExprID
	for _, itemID := range b.Files.Get(fileID).Items {
		fn, _ := b.Items.Fn(itemID)
		block, _ := b.Stmts.Block(fn.Body)
		for _, s := range block.Stmts {
			v, _ := b.Stmts.Var(s)
			values = append(values, v.Value)
		}
	}
	if !result.CoercionOf(values[0]).Has(CoerceWrapSome) {
		t.Fatalf("expected optional wrap on 5")
	}
	if !result.CoercionOf(values[1]).Has(CoerceToSet) {
		t.Fatalf("expected set conversion on array literal")
	}
	if k := result.TypeInterner.KindOf(result.TypeOf(values[1])); k != types.KindSet {
		t.Fatalf("set literal typed as %v", k)
	}
}

func TestBuiltinMembers(t *testing.T) {
	mustCheck(t, `
func main() {
	var a: [Int] = []
	a.append(1)
	var s: Set<String> = []
	s.insert("x")
	var d = ["k": 1]
	var n: Int = a.count + s.count + d.count + "héllo".count
	var ks: [String] = d.keys
	var has: Bool = a.contains(1) && s.contains("x")
	for k in d { print(k) }
	for ch in "abc" { print(ch) }
}
`)
	expectDiag(t, `func main() { [1].append(2) }`, diag.SemaNotAssignable, "assign")
	expectDiag(t, `func main() { var n = 1
n.append(2) }`, diag.SemaNoMember, "append")
}

func TestDefsAndRefsCoverIdentifiers(t *testing.T) {
	src := "struct P { x: Int }\nfunc main() {\nvar p = P { x: 1 }\nprint(p.x)\n}\n"
	result := mustCheck(t, src)
	for _, d := range result.Defs {
		if got := src[d.Span.Start:d.Span.End]; got != d.Name {
			t.Fatalf("def %s span covers %q", d.Name, got)
		}
	}
	if len(result.Refs) == 0 {
		t.Fatalf("expected references")
	}
	for _, r := range result.Refs {
		use := src[r.Use.Start:r.Use.End]
		def := src[r.Def.Start:r.Def.End]
		if use != def {
			t.Fatalf("reference %q resolves to %q", use, def)
		}
	}
}

func TestCheckReturnsTypedError(t *testing.T) {
	_, b, fileID := checkSource(t, `func main() { print(nope) }`)
	_, err := Check(b, fileID, Options{})
	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *sema.Error, got %T", err)
	}
	if len(semErr.Diagnostics()) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(semErr.Diagnostics()))
	}
}
