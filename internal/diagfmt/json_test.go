package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"slang/internal/diag"
	"slang/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func main() {\n\tvar x = \"unterminated\n}")
	fileID := fs.AddVirtual("test.slang", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 23, End: 36}, "Unterminated string literal"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "error" || d.Code != "LEX1002" || d.Title == "" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "test.slang" {
		t.Errorf("Expected file=test.slang, got %s", d.Location.File)
	}
	if d.Location.Range == nil || d.Location.Range.Start != (Position{Line: 2, Col: 10}) {
		t.Errorf("Expected range starting at 2:10, got %+v", d.Location.Range)
	}
	if d.Location.Start != 23 || d.Location.End != 36 {
		t.Errorf("Expected bytes 23-36, got %d-%d", d.Location.Start, d.Location.End)
	}
}

func TestJSONNotesAndLimits(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.slang", []byte("func f() {}\nfunc f() {}\n"))

	bag := diag.NewBag(10)
	first := diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: fileID, Start: 17, End: 18}, "'f' is already declared").
		WithNote(source.Span{File: fileID, Start: 5, End: 6}, "previous declaration")
	bag.Add(first)
	bag.Add(diag.New(diag.SevWarning, diag.SemaUnusedValue, source.Span{File: fileID, Start: 0, End: 4}, "value is unused"))

	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		omitted   int
		notes     int
		positions bool
	}{
		{"notes included", JSONOpts{IncludeNotes: true, IncludePositions: true}, 2, 0, 1, true},
		{"notes omitted", JSONOpts{}, 2, 0, 0, false},
		{"max one", JSONOpts{Max: 1, IncludeNotes: true}, 1, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := BuildDiagnosticsOutput(bag, fs, tt.opts)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if out.Count != tt.count || out.Omitted != tt.omitted {
				t.Fatalf("count/omitted = %d/%d, want %d/%d", out.Count, out.Omitted, tt.count, tt.omitted)
			}
			if got := len(out.Diagnostics[0].Notes); got != tt.notes {
				t.Fatalf("notes = %d, want %d", got, tt.notes)
			}
			if hasPos := out.Diagnostics[0].Location.Range != nil; hasPos != tt.positions {
				t.Fatalf("positions present = %v, want %v", hasPos, tt.positions)
			}
		})
	}
}

func TestJSONDiagnosticsList(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("r.slang", []byte("func main() { print(1 / 0) }"))
	d := diag.NewError(diag.RunDivByZero, source.Span{File: fileID, Start: 20, End: 25}, "division by zero")

	var buf bytes.Buffer
	if err := JSONDiagnostics(&buf, []diag.Diagnostic{d}, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.Diagnostics[0].Code != "RUN4001" {
		t.Fatalf("unexpected code %s", output.Diagnostics[0].Code)
	}
}
