package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"slang/internal/diag"
	"slang/internal/interp"
	"slang/internal/source"
)

func TestFormatRuntime(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func at(xs: [Int]) -> Int { return xs[3] }\nfunc main() { print(at([1])) }\n")
	fileID := fs.AddVirtual("rt.slang", content)
	idx := uint32(strings.Index(string(content), "xs[3]"))
	call := uint32(strings.Index(string(content), "at([1])"))

	rerr := &interp.RuntimeError{
		Code:    diag.RunIndexOutOfBounds,
		Message: "index 3 out of bounds for length 1",
		Span:    source.Span{File: fileID, Start: idx, End: idx + 5},
		Backtrace: []interp.BacktraceFrame{
			{FuncName: "at", Span: source.Span{File: fileID, Start: call, End: call + 7}},
			{FuncName: "main"},
		},
	}
	var buf bytes.Buffer
	FormatRuntime(&buf, rerr, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()
	for _, want := range []string{
		"rt.slang:1:36: ERROR RUN4002: index 3 out of bounds",
		"^~~~~",
		"backtrace:",
		"0: at, called at rt.slang:2:21",
		"1: main, <entry>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "note:") {
		t.Fatalf("backtrace should replace notes:\n%s", out)
	}
}
