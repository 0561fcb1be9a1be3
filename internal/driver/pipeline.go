package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/lexer"
	"slang/internal/observ"
	"slang/internal/parser"
	"slang/internal/sema"
	"slang/internal/source"
	"slang/internal/token"
	"slang/internal/trace"
)

// pipeline runs the layers of one file and stops at the first failing one.
type pipeline struct {
	file    *source.File
	opts    Options
	tracer  trace.Tracer
	span    *trace.Span
	timer   *observ.Timer
	notify  func(Stage)
	bag     *diag.Bag
	tokens  []token.Token
	builder *ast.Builder
	astFile ast.FileID
	sema    *sema.Result
}

func newPipeline(ctx context.Context, file *source.File, opts Options, notify func(Stage)) *pipeline {
	p := &pipeline{
		file:   file,
		opts:   opts,
		tracer: trace.FromContext(ctx),
		notify: notify,
		bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	if opts.EnableTimings {
		p.timer = observ.NewTimer()
	}
	p.span = trace.Begin(p.tracer, trace.ScopeFile, "file", 0).WithExtra("path", file.Path)
	return p
}

// enter opens a stage in every observer at once; the returned func closes it.
func (p *pipeline) enter(stage Stage) func(note string) {
	if p.notify != nil {
		p.notify(stage)
	}
	closeObserved := p.opts.Observer.open(stage)
	track := p.timer.Track(string(stage))
	span := trace.Begin(p.tracer, trace.ScopeStage, string(stage), p.span.ID())
	return func(note string) {
		track(note)
		span.End(note)
		closeObserved()
	}
}

func (p *pipeline) run(ctx context.Context) error {
	reporter := diag.BagReporter{Bag: p.bag}

	if err := ctx.Err(); err != nil {
		return err
	}
	done := p.enter(StageTokenize)
	toks, err := lexer.TokenizeFile(p.file, lexer.Options{Reporter: reporter})
	done(fmt.Sprintf("tokens=%d", len(toks)))
	if err != nil || p.opts.Stage == StageTokenize {
		p.tokens = toks
		return nil
	}
	p.tokens = toks

	if err := ctx.Err(); err != nil {
		return err
	}
	done = p.enter(StageSyntax)
	maxErrors, convErr := safecast.Conv[uint](max(p.opts.MaxDiagnostics, 0))
	if convErr != nil {
		maxErrors = 0
	}
	hint, convErr := safecast.Conv[uint](len(toks))
	if convErr != nil {
		hint = 0
	}
	p.builder = ast.NewBuilder(ast.Hints{Exprs: hint}, nil)
	res := parser.ParseTokens(toks, p.builder, parser.Options{MaxErrors: maxErrors, Reporter: reporter})
	p.astFile = res.File
	items := 0
	if f := p.builder.Files.Get(res.File); f != nil {
		items = len(f.Items)
	}
	done(fmt.Sprintf("items=%d", items))
	if p.bag.HasErrors() || p.opts.Stage == StageSyntax {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	done = p.enter(StageSema)
	// ошибки уже лежат в bag через reporter
	p.sema, _ = sema.Check(p.builder, p.astFile, sema.Options{Reporter: diag.NewDedupReporter(reporter), Tracer: p.tracer}) //nolint:errcheck
	done(fmt.Sprintf("defs=%d", len(p.sema.Defs)))
	return nil
}

// finish applies the warning policy, sorts and appends timings.
func (p *pipeline) finish() *observ.Report {
	applyWarningPolicy(p.bag, p.opts)
	p.span.WithExtra("diagnostics", fmt.Sprint(p.bag.Len())).End("")
	if p.timer == nil {
		return nil
	}
	report := p.timer.Report()
	recordTimings(p.bag, "file", p.file.Path, report)
	return &report
}

// abort closes the file span after a canceled pipeline.
func (p *pipeline) abort(err error) {
	trace.Fault(p.tracer, trace.ScopeFile, "file", err.Error(), p.span.ID(), map[string]string{"path": p.file.Path})
	p.span.End("aborted")
}

func applyWarningPolicy(bag *diag.Bag, opts Options) {
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity == diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
	bag.Sort()
}
