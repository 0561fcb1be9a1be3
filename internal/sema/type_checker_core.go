package sema

import (
	"fmt"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/trace"
	"slang/internal/types"
)

// binding — локальное имя в области видимости.
type binding struct {
	typ  types.TypeID
	span source.Span
	// narrowed: имя перекрыто сужением внутри ветки switch.
	narrowed bool
	fn       bool
}

type scope struct {
	names map[source.StringID]binding
}

// fnSig — сигнатура функции верхнего уровня после первого прохода.
type fnSig struct {
	item     ast.ItemID
	typ      types.TypeID
	params   []types.TypeID
	result   types.TypeID
	nameSpan source.Span
	// resolved is false when a parameter or result type is unknown;
	// the body of such a function is not checked.
	resolved bool
}

// returnContext — куда уходит `return`: в функцию или в ветку switch-выражения.
type returnContext struct {
	expected types.TypeID
	isSwitch bool
	returned []types.TypeID
	spans    []source.Span
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	result   *Result
	types    *types.Interner
	tracer   trace.Tracer // трассировщик для отладки

	typeNames   map[source.StringID]types.TypeID
	typeItems   map[types.TypeID]ast.ItemID
	builtins    map[source.StringID]types.TypeID
	fns         map[source.StringID]*fnSig
	fnOrder     []source.StringID
	scopes      []scope
	returnStack []*returnContext
	printName   source.StringID
}

func (tc *typeChecker) run() {
	file := tc.builder.Files.Get(tc.fileID)
	if file == nil {
		return
	}
	tc.typeNames = make(map[source.StringID]types.TypeID)
	tc.typeItems = make(map[types.TypeID]ast.ItemID)
	tc.fns = make(map[source.StringID]*fnSig)
	tc.printName = tc.intern("print")

	b := tc.types.Builtins()
	tc.builtins = map[source.StringID]types.TypeID{
		tc.intern("Int"):    b.Int,
		tc.intern("Float"):  b.Float,
		tc.intern("String"): b.String,
		tc.intern("Bool"):   b.Bool,
		tc.intern("Void"):   b.Void,
	}

	span := trace.Begin(tc.tracer, trace.ScopeStage, "sema", 0)
	defer span.End("")

	// pass 1: имена типов, затем их формы, затем сигнатуры функций
	tc.registerTypeNames(file.Items)
	tc.resolveTypeShapes(file.Items)
	tc.registerFunctions(file.Items)

	// pass 2: тела функций
	for _, itemID := range file.Items {
		tc.walkItem(itemID)
	}
}

func (tc *typeChecker) intern(s string) source.StringID {
	return tc.builder.StringsInterner.Intern(s)
}

func (tc *typeChecker) name(id source.StringID) string {
	return tc.builder.Name(id)
}

func (tc *typeChecker) label(id types.TypeID) string {
	return types.Label(tc.types, id)
}

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	if tc.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(tc.reporter, code, span, msg).Emit()
}

func (tc *typeChecker) reportWithNote(code diag.Code, span, noteSpan source.Span, note, format string, args ...interface{}) {
	if tc.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(tc.reporter, code, span, msg).WithNote(noteSpan, note).Emit()
}

func (tc *typeChecker) warn(code diag.Code, span source.Span, format string, args ...interface{}) {
	if tc.reporter == nil {
		return
	}
	diag.ReportWarning(tc.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return source.Span{}
	}
	return expr.Span
}

func (tc *typeChecker) errorType() types.TypeID {
	return tc.types.Builtins().Error
}

func (tc *typeChecker) isError(id types.TypeID) bool {
	return id == types.NoTypeID || tc.types.IsError(id)
}

func (tc *typeChecker) addDef(name source.StringID, kind DefKind, span source.Span, typ types.TypeID) {
	tc.result.Defs = append(tc.result.Defs, Def{Name: tc.name(name), Kind: kind, Span: span, Type: typ})
}

func (tc *typeChecker) addRef(use, def source.Span) {
	if def == (source.Span{}) {
		return
	}
	tc.result.Refs = append(tc.result.Refs, Ref{Use: use, Def: def})
}

// Scopes ---------------------------------------------------------------------

func (tc *typeChecker) pushScope() {
	tc.scopes = append(tc.scopes, scope{names: make(map[source.StringID]binding)})
}

func (tc *typeChecker) popScope() {
	if len(tc.scopes) == 0 {
		return
	}
	tc.scopes = tc.scopes[:len(tc.scopes)-1]
}

// declare binds a name in the innermost scope; redeclaration in the same
// scope is an error, shadowing an outer scope is allowed.
func (tc *typeChecker) declare(name source.StringID, span source.Span, typ types.TypeID, kind DefKind) {
	if len(tc.scopes) == 0 {
		tc.pushScope()
	}
	top := tc.scopes[len(tc.scopes)-1]
	if prev, ok := top.names[name]; ok && !prev.narrowed {
		tc.reportWithNote(diag.SemaDuplicateSymbol, span, prev.span, "previous declaration here",
			"'%s' is already declared in this scope", tc.name(name))
		return
	}
	top.names[name] = binding{typ: typ, span: span}
	tc.addDef(name, kind, span, typ)
}

// narrow rebinds name to typ for the current (arm) scope only.
func (tc *typeChecker) narrow(name source.StringID, typ types.TypeID, declSpan source.Span) {
	if len(tc.scopes) == 0 {
		return
	}
	tc.scopes[len(tc.scopes)-1].names[name] = binding{typ: typ, span: declSpan, narrowed: true}
}

func (tc *typeChecker) lookup(name source.StringID) (binding, bool) {
	for i := len(tc.scopes) - 1; i >= 0; i-- {
		if b, ok := tc.scopes[i].names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

func (tc *typeChecker) pushReturn(ctx *returnContext) func() {
	tc.returnStack = append(tc.returnStack, ctx)
	return func() {
		tc.returnStack = tc.returnStack[:len(tc.returnStack)-1]
	}
}

func (tc *typeChecker) currentReturn() *returnContext {
	if len(tc.returnStack) == 0 {
		return nil
	}
	return tc.returnStack[len(tc.returnStack)-1]
}

func (tc *typeChecker) recordType(id ast.ExprID, typ types.TypeID) types.TypeID {
	tc.result.ExprTypes[id] = typ
	return typ
}
