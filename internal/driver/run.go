package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"slang/internal/interp"
	"slang/internal/observ"
	"slang/internal/trace"
)

// RunOptions extend Options with the program's output sink.
type RunOptions struct {
	Options
	Stdout   io.Writer
	MaxDepth int
}

// RunResult holds the static diagnostics and, if execution started, the
// runtime failure. Runtime is nil on a clean exit.
type RunResult struct {
	*DiagnoseResult
	Runtime *interp.RuntimeError
	Printed int
}

// Ran reports whether main was executed at all.
func (r *RunResult) Ran() bool {
	return r != nil && r.DiagnoseResult != nil && !r.Bag.HasErrors()
}

// Run checks path and, when no layer reported an error, executes main.
// Warnings never stop execution.
func Run(ctx context.Context, path string, opts RunOptions) (*RunResult, error) {
	opts.Stage = StageSema
	opts.Cache = nil
	diagRes, err := Diagnose(ctx, path, opts.Options)
	if err != nil {
		return nil, err
	}
	res := &RunResult{DiagnoseResult: diagRes}
	if diagRes.Bag.HasErrors() {
		return res, nil
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	tracer := trace.FromContext(ctx)
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	closeObserved := opts.Observer.open(StageRun)
	done := timer.Track(string(StageRun))
	var writeErr error
	runErr := interp.Run(ctx, diagRes.Builder, diagRes.ASTFile, interp.Options{
		Sema:     diagRes.Sema,
		Tracer:   tracer,
		MaxDepth: opts.MaxDepth,
		Print: func(s string) {
			res.Printed++
			if writeErr != nil {
				return
			}
			if _, err := fmt.Fprintln(stdout, s); err != nil {
				writeErr = err
			}
		},
	})
	done(fmt.Sprintf("prints=%d", res.Printed))
	closeObserved()
	if timer != nil {
		recordTimings(diagRes.Bag, "run", diagRes.File.Path, timer.Report())
	}
	if runErr != nil {
		var rerr *interp.RuntimeError
		if !errors.As(runErr, &rerr) {
			return res, runErr
		}
		res.Runtime = rerr
	}
	if writeErr != nil {
		return res, fmt.Errorf("write program output: %w", writeErr)
	}
	return res, nil
}
