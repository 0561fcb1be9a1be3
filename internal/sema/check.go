package sema

import (
	"fmt"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/source"
	"slang/internal/trace"
	"slang/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner
	Tracer   trace.Tracer
}

// Coercion is a set of implicit runtime conversions the checker attached to
// an expression. CoerceToSet applies before CoerceWrapSome.
type Coercion uint8

const (
	CoerceNone Coercion = 0
	// CoerceWrapSome wraps a present value into an optional.
	CoerceWrapSome Coercion = 1 << 0
	// CoerceToSet turns an array literal into a set, dropping duplicates.
	CoerceToSet Coercion = 1 << 1
)

// Has reports whether c includes every conversion of other.
func (c Coercion) Has(other Coercion) bool {
	return c&other == other && other != CoerceNone
}

// DefKind classifies a declared name.
type DefKind uint8

const (
	DefFn DefKind = iota
	DefParam
	DefVar
	DefStruct
	DefField
	DefEnum
	DefCase
	DefUnion
	DefVariant
)

func (k DefKind) String() string {
	switch k {
	case DefFn:
		return "function"
	case DefParam:
		return "parameter"
	case DefVar:
		return "variable"
	case DefStruct:
		return "struct"
	case DefField:
		return "field"
	case DefEnum:
		return "enum"
	case DefCase:
		return "case"
	case DefUnion:
		return "union"
	case DefVariant:
		return "variant"
	}
	return "symbol"
}

// Def is a declaration site; Span covers exactly the identifier.
type Def struct {
	Name string
	Kind DefKind
	Span source.Span
	Type types.TypeID
}

// Ref links a use of a name to the identifier span of its declaration.
type Ref struct {
	Use source.Span
	Def source.Span
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	TypeInterner *types.Interner
	ExprTypes    map[ast.ExprID]types.TypeID
	Coercions    map[ast.ExprID]Coercion
	Defs         []Def
	Refs         []Ref
	Bag          *diag.Bag
}

// TypeOf returns the recorded type of an expression.
func (r *Result) TypeOf(id ast.ExprID) types.TypeID {
	if r == nil {
		return types.NoTypeID
	}
	return r.ExprTypes[id]
}

// CoercionOf returns the implicit conversion applied to an expression.
func (r *Result) CoercionOf(id ast.ExprID) Coercion {
	if r == nil {
		return CoerceNone
	}
	return r.Coercions[id]
}

// Error bundles every semantic diagnostic of one file.
type Error struct {
	Bag *diag.Bag
}

func (e *Error) Error() string {
	items := e.Bag.Items()
	if len(items) == 1 {
		return "sema: " + items[0].Message
	}
	return fmt.Sprintf("sema: %d type errors, first: %s", len(items), items[0].Message)
}

func (e *Error) Diagnostics() []diag.Diagnostic {
	return e.Bag.Items()
}

// Check validates the whole file in two passes: declarations first, then
// function bodies. All diagnostics are collected; a non-nil error is always
// *Error and is returned only when at least one error-severity diagnostic was
// produced. The result is usable even on failure.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) (*Result, error) {
	res := &Result{
		ExprTypes: make(map[ast.ExprID]types.TypeID),
		Coercions: make(map[ast.ExprID]Coercion),
	}
	if opts.Types != nil {
		res.TypeInterner = opts.Types
	} else {
		var strs *source.Interner
		if builder != nil {
			strs = builder.StringsInterner
		}
		res.TypeInterner = types.NewInterner(strs)
	}
	bag := diag.NewBag(diag.DefaultMax)
	res.Bag = bag
	if builder == nil || fileID == ast.NoFileID {
		return res, nil
	}

	var reporter diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		reporter = teeReporter{bag: bag, next: opts.Reporter}
	}

	checker := typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: reporter,
		result:   res,
		types:    res.TypeInterner,
		tracer:   opts.Tracer,
	}
	checker.run()

	if bag.HasErrors() {
		bag.Sort()
		return res, &Error{Bag: bag}
	}
	return res, nil
}

// teeReporter пишет и в собственный bag, и во внешний reporter.
type teeReporter struct {
	bag  *diag.Bag
	next diag.Reporter
}

func (r teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	diag.BagReporter{Bag: r.bag}.Report(code, sev, primary, msg, notes)
	r.next.Report(code, sev, primary, msg, notes)
}
