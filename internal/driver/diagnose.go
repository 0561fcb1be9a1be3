package driver

import (
	"context"
	"fmt"

	"slang/internal/ast"
	"slang/internal/diag"
	"slang/internal/observ"
	"slang/internal/sema"
	"slang/internal/source"
	"slang/internal/token"
)

// DiagnoseResult is everything one file produced. Builder and Sema are nil
// when the pipeline stopped earlier or the diagnostics came from the cache.
type DiagnoseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	ASTFile ast.FileID
	Sema    *sema.Result
	Bag     *diag.Bag
	Timing  *observ.Report
	Cached  bool
}

// Diagnose loads path and runs the pipeline up to opts.Stage. The returned
// error covers I/O and cancellation only; language errors land in Bag.
func Diagnose(ctx context.Context, path string, opts Options) (*DiagnoseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return diagnoseLoaded(ctx, fs, fs.Get(fileID), opts, nil)
}

// DiagnoseSource is Diagnose for in-memory input, e.g. stdin.
func DiagnoseSource(ctx context.Context, name string, content []byte, opts Options) (*DiagnoseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return diagnoseLoaded(ctx, fs, fs.Get(fileID), opts, nil)
}

func diagnoseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, notify func(Stage)) (*DiagnoseResult, error) {
	if opts.Cache != nil {
		if cached, ok := opts.Cache.lookup(file, opts); ok {
			applyWarningPolicy(cached, opts)
			return &DiagnoseResult{FileSet: fs, File: file, Bag: cached, Cached: true}, nil
		}
	}

	p := newPipeline(ctx, file, opts, notify)
	if err := p.run(ctx); err != nil {
		p.abort(err)
		return nil, err
	}
	if opts.Cache != nil {
		// кэш хранит диагностики до фильтрации предупреждений
		opts.Cache.store(file, opts, p.bag)
	}
	timing := p.finish()
	return &DiagnoseResult{
		FileSet: fs,
		File:    file,
		Tokens:  p.tokens,
		Builder: p.builder,
		ASTFile: p.astFile,
		Sema:    p.sema,
		Bag:     p.bag,
		Timing:  timing,
	}, nil
}

// TokenizeResult is the output of `slang tokenize`.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file; on a lexical error Tokens is nil and Bag holds the diagnostic.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	res, err := Diagnose(context.Background(), path, Options{Stage: StageTokenize, MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}
	return &TokenizeResult{FileSet: res.FileSet, File: res.File, Tokens: res.Tokens, Bag: res.Bag}, nil
}

// ParseResult is the output of `slang parse`.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse lexes and parses one file. Builder is nil only after a lexical error.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	res, err := Diagnose(context.Background(), path, Options{Stage: StageSyntax, MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}
	return &ParseResult{FileSet: res.FileSet, File: res.File, Builder: res.Builder, FileID: res.ASTFile, Bag: res.Bag}, nil
}

// Check runs every static layer. The result keeps Builder and Sema for
// symbol queries even when the bag has errors.
func Check(ctx context.Context, path string, opts Options) (*DiagnoseResult, error) {
	opts.Stage = StageSema
	opts.Cache = nil
	return Diagnose(ctx, path, opts)
}
