package diagfmt

import (
	"fmt"
	"io"

	"slang/internal/interp"
	"slang/internal/source"
)

// FormatRuntime renders a runtime error like any diagnostic, then the call
// stack innermost first. The backtrace replaces the "called from" notes.
func FormatRuntime(w io.Writer, rerr *interp.RuntimeError, fs *source.FileSet, opts PrettyOpts) {
	if rerr == nil {
		return
	}
	opts.ShowNotes = false
	PrettyDiagnostics(w, rerr.Diagnostics(), fs, opts)
	if len(rerr.Backtrace) == 0 {
		return
	}
	p := newPalette(opts.Color)
	fmt.Fprintln(w, p.note.Sprint("backtrace:"))
	for i, frame := range rerr.Backtrace {
		site := "<entry>"
		if !frame.Span.Empty() {
			site = "called at " + location(frame.Span, fs, opts.PathMode)
		}
		fmt.Fprintf(w, "  %d: %s, %s\n", i, frame.FuncName, site)
	}
}
