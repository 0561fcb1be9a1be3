package interp

import (
	"context"
	"fmt"
	"strconv"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/sema"
	"slang/internal/source"
	"slang/internal/trace"
)

// DefaultMaxDepth bounds the number of nested function calls.
const DefaultMaxDepth = 4096

// Options configure a single program execution.
type Options struct {
	// Print receives the text of every print call. Nil writes lines to stdout.
	Print func(string)
	// Sema is the checker result for the file. When nil, Run checks the file
	// first and returns the *sema.Error on failure.
	Sema     *sema.Result
	Tracer   trace.Tracer
	MaxDepth int
}

// Interpreter walks one checked file.
type Interpreter struct {
	ctx      context.Context
	builder  *ast.Builder
	file     ast.FileID
	sema     *sema.Result
	print    func(string)
	tracer   trace.Tracer
	maxDepth int
	// traceCalls: span на каждый вызов, только при LevelCall
	traceCalls bool

	env       *Env
	fns       map[source.StringID]*ast.FnItem
	typeKinds map[source.StringID]ast.ItemKind
	structs   map[string]*ast.StructDecl
	frames    []frame
	steps     uint32
}

// Run executes the zero-argument function main of the file.
func Run(ctx context.Context, builder *ast.Builder, fileID ast.FileID, opts Options) error {
	if opts.Sema == nil {
		res, err := sema.Check(builder, fileID, sema.Options{Tracer: opts.Tracer})
		if err != nil {
			return err
		}
		opts.Sema = res
	}
	in := New(builder, fileID, opts)
	if rerr := in.RunMain(ctx); rerr != nil {
		return rerr
	}
	return nil
}

// New prepares an interpreter; global bindings are created immediately.
func New(builder *ast.Builder, fileID ast.FileID, opts Options) *Interpreter {
	in := &Interpreter{
		builder:   builder,
		file:      fileID,
		sema:      opts.Sema,
		print:     opts.Print,
		tracer:    opts.Tracer,
		maxDepth:  opts.MaxDepth,
		env:       NewEnv(),
		fns:       make(map[source.StringID]*ast.FnItem),
		typeKinds: make(map[source.StringID]ast.ItemKind),
		structs:   make(map[string]*ast.StructDecl),
	}
	if in.print == nil {
		in.print = func(s string) { fmt.Println(s) }
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxDepth
	}
	if in.tracer == nil {
		in.tracer = trace.Nop
	}
	in.traceCalls = in.tracer.Enabled() && in.tracer.Level().Admits(trace.KindSpanBegin, trace.ScopeCall)

	file := builder.Files.Get(fileID)
	if file == nil {
		return in
	}
	for _, itemID := range file.Items {
		item := builder.Items.Get(itemID)
		name, _ := builder.Items.DeclName(itemID)
		switch item.Kind {
		case ast.ItemFn:
			fn, _ := builder.Items.Fn(itemID)
			if _, dup := in.fns[name]; dup {
				continue
			}
			in.fns[name] = fn
			in.env.Define(GlobalScope, name, FuncValue(builder.Name(name)))
		case ast.ItemStruct:
			decl, _ := builder.Items.Struct(itemID)
			in.structs[builder.Name(name)] = decl
			in.typeKinds[name] = item.Kind
		default:
			in.typeKinds[name] = item.Kind
		}
	}
	return in
}

// RunMain locates main and executes it.
func (in *Interpreter) RunMain(ctx context.Context) *RuntimeError {
	if ctx == nil {
		ctx = context.Background()
	}
	in.ctx = ctx

	span := trace.Begin(in.tracer, trace.ScopeStage, "run", 0)
	defer span.End("")

	mainID := in.builder.StringsInterner.Intern("main")
	fn, ok := in.fns[mainID]
	if !ok || len(fn.Params) != 0 {
		return in.fail(diag.RunMissingMain, source.Span{}, "program has no zero-argument function 'main'")
	}
	_, err := in.call("main", fn, nil, source.Span{})
	if err != nil {
		span.WithExtra("error", err.Code.ID())
		trace.Fault(in.tracer, trace.ScopeStage, "run", err.Message, span.ID(), map[string]string{
			"code":  err.Code.ID(),
			"depth": strconv.Itoa(len(err.Backtrace)),
		})
	}
	return err
}

// call runs a function in a fresh activation whose parent is the global
// scope. Arguments are copied into the parameters.
func (in *Interpreter) call(name string, fn *ast.FnItem, args []Value, site source.Span) (Value, *RuntimeError) {
	if len(in.frames) >= in.maxDepth {
		return Value{}, in.fail(diag.RunStackOverflow, site, "call depth exceeded %d while calling '%s'", in.maxDepth, name)
	}
	if err := in.tick(site); err != nil {
		return Value{}, err
	}
	if len(args) != len(fn.Params) {
		return Value{}, in.fail(diag.RunInternal, site, "'%s' called with %d arguments, want %d", name, len(args), len(fn.Params))
	}

	in.frames = append(in.frames, frame{name: name, call: site})
	defer func() { in.frames = in.frames[:len(in.frames)-1] }()

	if in.traceCalls {
		sp := trace.Begin(in.tracer, trace.ScopeCall, "call:"+name, 0)
		defer sp.End("")
	}

	scope := in.env.Push(GlobalScope)
	defer in.env.Pop(scope)
	for i, p := range fn.Params {
		in.env.Define(scope, p.Name, args[i].Clone())
	}

	block, ok := in.builder.Stmts.Block(fn.Body)
	if !ok {
		return VoidValue(), nil
	}
	c, err := in.execStmts(block.Stmts, scope)
	if err != nil {
		return Value{}, err
	}
	if c.kind == ctrlReturn {
		return c.value, nil
	}
	return VoidValue(), nil
}

// tick polls the context every few thousand steps.
func (in *Interpreter) tick(span source.Span) *RuntimeError {
	in.steps++
	if in.steps&0x3ff != 0 || in.ctx == nil {
		return nil
	}
	if err := in.ctx.Err(); err != nil {
		return in.fail(diag.RunCanceled, span, "execution canceled: %v", err)
	}
	return nil
}
