package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slang/internal/trace"
)

// traceFlags are the persistent --trace* options.
type traceFlags struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
}

var tracing traceFlags

func (f *traceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.output, "trace", "", "trace output file (- for stderr)")
	fs.StringVar(&f.level, "trace-level", "off", "trace level (off|fault|stage|decl|call)")
	fs.StringVar(&f.mode, "trace-mode", "stream", "trace storage (stream|ring|both)")
	fs.StringVar(&f.format, "trace-format", "auto", "trace format (auto|text|ndjson)")
	fs.IntVar(&f.ringSize, "trace-ring-size", 4096, "events kept by the ring tracer")
	fs.DurationVar(&f.heartbeat, "trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
}

// config turns the flags into a tracer configuration. ok is false when
// tracing stays off: no level and no output file.
func (f *traceFlags) config() (cfg trace.Config, ok bool, err error) {
	level, err := trace.ParseLevel(f.level)
	if err != nil {
		return cfg, false, fmt.Errorf("--trace-level: %w", err)
	}
	if level == trace.LevelOff {
		if f.output == "" {
			return cfg, false, nil
		}
		// --trace без уровня включает фазы
		level = trace.LevelStage
	}
	mode, err := trace.ParseMode(f.mode)
	if err != nil {
		return cfg, false, fmt.Errorf("--trace-mode: %w", err)
	}
	format, err := trace.ParseFormat(f.format)
	if err != nil {
		return cfg, false, fmt.Errorf("--trace-format: %w", err)
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: f.output,
		RingSize:   f.ringSize,
		Heartbeat:  f.heartbeat,
	}, true, nil
}

// setupTracing installs the tracer into the command context and returns
// its cleanup.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, ok, err := tracing.config()
	if err != nil {
		return nil, err
	}
	if !ok {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	stderr := cmd.ErrOrStderr()
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		cfg.Output = stderr
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat)

	return func() {
		heartbeat.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close: %v\n", err)
		}
	}, nil
}

// dumpTraceRing writes the ring buffer, if any, after a failed run.
func dumpTraceRing(cmd *cobra.Command) {
	ring, ok := trace.RingOf(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, "trace: last events")
	if err := ring.Dump(stderr, trace.FormatText); err != nil {
		fmt.Fprintf(stderr, "trace: dump: %v\n", err)
	}
}
