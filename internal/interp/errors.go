package interp

import (
	"fmt"
	"strings"

	"slang/internal/diag"
	"slang/internal/source"
)

// BacktraceFrame is one active function call at the time of a failure.
type BacktraceFrame struct {
	FuncName string
	// Span is the call site; empty for main.
	Span source.Span
}

// RuntimeError is a fatal error raised while executing a program.
type RuntimeError struct {
	Code      diag.Code
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame // innermost call first
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

// Diagnostics exposes the error as a single diagnostic.
func (e *RuntimeError) Diagnostics() []diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message)
	for _, frame := range e.Backtrace {
		if frame.Span.Empty() {
			continue
		}
		d = d.WithNote(frame.Span, "called from "+frame.FuncName)
	}
	return []diag.Diagnostic{d}
}

// FormatWithFiles renders the error with resolved file:line:col locations.
func (e *RuntimeError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error %s: %s\n", e.Code.ID(), e.Message)
	sb.WriteString("at ")
	sb.WriteString(formatSpan(e.Span, files))
	sb.WriteString("\n")
	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.FuncName, formatSpan(frame.Span, files))
		}
	}
	return sb.String()
}

func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || (span.Start == 0 && span.End == 0) {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// frame is an active call, used for backtraces.
type frame struct {
	name string
	call source.Span
}

func (in *Interpreter) fail(code diag.Code, span source.Span, format string, args ...interface{}) *RuntimeError {
	e := &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
	e.Backtrace = make([]BacktraceFrame, 0, len(in.frames))
	for i := len(in.frames) - 1; i >= 0; i-- {
		e.Backtrace = append(e.Backtrace, BacktraceFrame{FuncName: in.frames[i].name, Span: in.frames[i].call})
	}
	return e
}

func (in *Interpreter) divByZero(span source.Span, op string) *RuntimeError {
	return in.fail(diag.RunDivByZero, span, "%s by zero", op)
}

func (in *Interpreter) outOfBounds(span source.Span, index int64, length int) *RuntimeError {
	return in.fail(diag.RunIndexOutOfBounds, span, "index %d out of bounds for length %d", index, length)
}

func (in *Interpreter) undefined(span source.Span, name string) *RuntimeError {
	return in.fail(diag.RunUndefined, span, "undefined variable '%s'", name)
}

func (in *Interpreter) mismatch(span source.Span, want string, got Value) *RuntimeError {
	return in.fail(diag.RunValueMismatch, span, "expected %s, got %s", want, got.Kind)
}
