package interp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slang/internal/diag"
	"slang/internal/source"
)

func TestAssignmentCopiesValues(t *testing.T) {
	expectOutput(t, `
struct P { xs: [Int] }
func main() {
	var a = P { xs: [1, 2] }
	var b = a
	b.xs.append(3)
	b.xs[0] = 9
	print(a)
	print(b)
}
`, "P(xs: [1, 2])", "P(xs: [9, 2, 3])")
}

func TestArgumentsAreCopied(t *testing.T) {
	expectOutput(t, `
func grow(xs: [Int]) -> Int {
	xs.append(4)
	return xs.count
}
func main() {
	var xs = [1, 2, 3]
	print(grow(xs))
	print(xs.count)
}
`, "4", "3")
}

func TestCollectionElementsAreCopied(t *testing.T) {
	expectOutput(t, `
func main() {
	var inner = [1]
	var outer = [inner, inner]
	outer[0].append(2)
	inner.append(5)
	print(outer)
	print(inner)
}
`, "[[1, 2], [1]]", "[1, 5]")
}

func TestRecursionAndScopes(t *testing.T) {
	expectOutput(t, `
func fib(n: Int) -> Int {
	if (n < 2) { return n }
	return fib(n - 1) + fib(n - 2)
}
func main() {
	var x = 1
	{
		var x = 2
		print(x)
	}
	print(x)
	print(fib(15))
}
`, "2", "1", "610")
}

func TestLoops(t *testing.T) {
	expectOutput(t, `
func main() {
	var total = 0
	for (var i: Int = 0; i < 5; i += 1) { total += i }
	print(total)
	var n = 3
	for (n > 0) { n -= 1 }
	print(n)
	var d: [String: Int] = ["a": 1, "b": 2]
	for k in d { print(k) }
	for ch in "hé" { print(ch) }
	var s: Set<Int> = [3, 3, 4]
	for (x in s) { print(x) }
}
`, "10", "0", "a", "b", "h", "é", "3", "4")
}

func TestReturnFromNestedLoop(t *testing.T) {
	expectOutput(t, `
func find(xs: [Int], want: Int) -> Int {
	for (var i: Int = 0; i < xs.count; i += 1) {
		if (xs[i] == want) { return i }
	}
	return -1
}
func main() {
	print(find([4, 5, 6], 6))
	print(find([4, 5, 6], 7))
}
`, "2", "-1")
}

func TestOptionalNarrowing(t *testing.T) {
	expectOutput(t, `
func show(o: Int?) {
	switch (o) {
	some -> print(o + 1)
	none -> print("none")
	}
}
func main() {
	show(41)
	show(nil)
	var d: [String: Int] = ["a": 1]
	d["b"] = 2
	d["a"] += 10
	print(d)
	var v = d["a"]
	switch (v) {
	some -> print(v)
	none -> print("missing")
	}
}
`, "42", "none", `["a": 11, "b": 2]`, "11")
}

func TestUnionsAndEnums(t *testing.T) {
	expectOutput(t, `
enum C { case r, g }
union V = Int | String
func describe(v: V) -> String {
	var s = switch (v) {
	V.Int -> return "int \(v * 2)"
	V.String -> return "str " + v
	}
	return s
}
func main() {
	print(describe(V.Int(21)))
	print(describe(V.String("x")))
	var c = C.r
	print(c)
	print(c == C.r)
	print(V.Int(3))
}
`, "int 42", "str x", "C.r", "true", "V.Int(3)")
}

func TestSwitchOnLiterals(t *testing.T) {
	expectOutput(t, `
func name(n: Int) -> String {
	switch (n) {
	1 -> return "one"
	2 -> return "two"
	default -> return "many"
	}
}
func main() {
	print(name(2))
	print(name(9))
}
`, "two", "many")
}

func TestBuiltinMembers(t *testing.T) {
	// строка из e и комбинирующего акцента: один символ после NFC
	composed := "print(\"e\u0301\".count)"
	expectOutput(t, `
func main() {
	var s: Set<String> = []
	s.insert("x")
	s.insert("x")
	print(s.count)
	print(s.contains("x"))
	print([1, 2].contains(3))
	var d: [String: Bool] = ["k": true]
	print(d.keys)
	print(2.0)
	print(7 / 2)
	print(-7 % 3)
	`+composed+`
}
`, "1", "true", "false", `["k"]`, "2.0", "3", "-1", "1")
}

func TestDivisionByZero(t *testing.T) {
	expectRuntimeError(t, `func main() { var z = 0
print(1 / z) }`, diag.RunDivByZero, "division by zero")
	expectRuntimeError(t, `func main() { var z = 0
print(1 % z) }`, diag.RunDivByZero, "modulo by zero")
	expectRuntimeError(t, `func main() { var z = 0.0
print(1.0 / z) }`, diag.RunDivByZero, "division by zero")
}

func TestIndexOutOfBoundsBacktrace(t *testing.T) {
	rerr := expectRuntimeError(t, `
func at(xs: [Int], i: Int) -> Int { return xs[i] }
func main() { print(at([1], 3)) }
`, diag.RunIndexOutOfBounds, "out of bounds")
	if len(rerr.Backtrace) != 2 || rerr.Backtrace[0].FuncName != "at" || rerr.Backtrace[1].FuncName != "main" {
		t.Fatalf("unexpected backtrace: %+v", rerr.Backtrace)
	}
	if got := len(rerr.Diagnostics()); got != 1 {
		t.Fatalf("expected one diagnostic, got %d", got)
	}
}

func TestCompoundAssignMissingKey(t *testing.T) {
	expectRuntimeError(t, `func main() { var d: [String: Int] = [:]
d["x"] += 1 }`, diag.RunIndexOutOfBounds, "not found")
}

func TestStackOverflow(t *testing.T) {
	builder, fileID, checked := compile(t, `
func down(n: Int) -> Int { return down(n + 1) }
func main() { print(down(0)) }
`)
	err := Run(context.Background(), builder, fileID, Options{Sema: checked, MaxDepth: 64, Print: func(string) {}})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Code != diag.RunStackOverflow {
		t.Fatalf("expected stack overflow, got %v", err)
	}
}

func TestCancellation(t *testing.T) {
	builder, fileID, checked := compile(t, `
func main() {
	var n = 0
	for (true) { n += 1 }
}
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, builder, fileID, Options{Sema: checked})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Code != diag.RunCanceled {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestMissingMain(t *testing.T) {
	builder, fileID, checked := compile(t, `func helper() {}`)
	err := Run(context.Background(), builder, fileID, Options{Sema: checked})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Code != diag.RunMissingMain {
		t.Fatalf("expected missing main, got %v", err)
	}
}

func TestRunChecksWhenNoResultGiven(t *testing.T) {
	builder, fileID, _ := compile(t, `func main() { print(1) }`)
	var out []string
	if err := Run(context.Background(), builder, fileID, Options{Print: func(s string) { out = append(out, s) }}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Join(out, ",") != "1" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEnvArena(t *testing.T) {
	env := NewEnv()
	x := internName(t, "x")
	env.Define(GlobalScope, x, IntValue(1))
	child := env.Push(GlobalScope)
	env.Define(child, x, IntValue(2))
	if v, _ := env.Lookup(child, x); v.Int != 2 {
		t.Fatalf("child lookup = %d, want 2", v.Int)
	}
	grandchild := env.Push(child)
	if !env.Assign(grandchild, x, IntValue(3)) {
		t.Fatalf("assign failed")
	}
	env.Pop(child)
	if env.Depth() != 1 {
		t.Fatalf("depth after pop = %d, want 1", env.Depth())
	}
	if v, _ := env.Lookup(GlobalScope, x); v.Int != 1 {
		t.Fatalf("global x = %d, want 1", v.Int)
	}
}

func TestValueEqualityAndClone(t *testing.T) {
	a := DictValue([]Entry{{Key: StringValue("a"), Value: IntValue(1)}, {Key: StringValue("b"), Value: IntValue(2)}, {Key: StringValue("a"), Value: IntValue(3)}})
	b := DictValue([]Entry{{Key: StringValue("b"), Value: IntValue(2)}, {Key: StringValue("a"), Value: IntValue(3)}})
	if !a.Equal(b) {
		t.Fatalf("dictionaries should be equal regardless of order: %s vs %s", a, b)
	}
	if a.String() != `["a": 3, "b": 2]` {
		t.Fatalf("repeated key should keep first position: %s", a)
	}
	c := a.Clone()
	c.Entries[0].Value = IntValue(7)
	if a.Entries[0].Value.Int != 3 {
		t.Fatalf("clone shares storage")
	}
	if !SetValue([]Value{IntValue(1), IntValue(2)}).Equal(SetValue([]Value{IntValue(2), IntValue(1), IntValue(2)})) {
		t.Fatalf("sets should be equal")
	}
}

func internName(t *testing.T, name string) source.StringID {
	t.Helper()
	return source.NewInterner().Intern(name)
}
