package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slang/internal/prof"
)

// profileFlags name the files the Go profilers write to.
type profileFlags struct {
	cpu, mem, trace string
}

var profiling profileFlags

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.cpu, "cpu-profile", "", "write a CPU profile to this file")
	fs.StringVar(&f.mem, "mem-profile", "", "write a heap profile to this file")
	fs.StringVar(&f.trace, "runtime-trace", "", "write a Go runtime trace to this file")
}

// setupProfiling starts the requested profilers. The returned cleanup is
// safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	session, err := prof.Start(prof.Config{CPUPath: profiling.cpu, MemPath: profiling.mem, TracePath: profiling.trace})
	if err != nil {
		return nil, fmt.Errorf("start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// setupInstrumentation combines tracing and profiling for the commands that
// run the full pipeline.
func setupInstrumentation(cmd *cobra.Command) (func(), error) {
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		stopProf()
		return nil, err
	}
	return func() {
		stopTrace()
		stopProf()
	}, nil
}
