// Package trace records timed spans for the slang pipeline.
//
// Every file gets a ScopeFile span with one ScopeStage child per stage
// (tokenize, parse, sema, run). Finer levels add a ScopeDecl span per
// function body the checker walks and a ScopeCall span per interpreter
// activation:
//
//	slang run --trace=- --trace-level=call prog.slang
//
// Failures are recorded with Fault and pass every level except off, so
//
//	slang run --trace-level=fault --trace-mode=ring prog.slang
//
// costs nothing on success and prints the fault after a runtime error.
// A Heartbeat adds periodic ticks with the count of open spans and the
// name of the last one opened.
//
// The tracer reaches the driver, the checker and the interpreter through
// the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", 0)
//	defer span.End("")
package trace
