package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"slang/internal/diag"
	"slang/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("var x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.slang", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.slang"},
		{"Relative path", PathModeRelative, "src/test.slang"},
		{"Basename only", PathModeBasename, "test.slang:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	// «日本» занимает четыре колонки, таб сохраняется
	content := []byte("\tvar 日本 = nope\n")
	fileID := fs.AddVirtual("wide.slang", content)
	start := uint32(strings.Index(string(content), "nope"))

	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SemaUndefinedVariable, source.Span{File: fileID, Start: start, End: start + 4}, "undefined variable 'nope'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, source and caret lines, got:\n%s", buf.String())
	}
	caret := lines[2]
	if !strings.HasSuffix(caret, "\t           ^~~~") {
		t.Fatalf("caret misaligned: %q", caret)
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func f() {}\n// comment\nfunc f() {}\n")
	fileID := fs.AddVirtual("dup.slang", content)

	d := diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: fileID, Start: 28, End: 29}, "'f' is already declared").
		WithNote(source.Span{File: fileID, Start: 5, End: 6}, "previous declaration")
	bag := diag.NewBag(2)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "2 | // comment") {
		t.Fatalf("expected one context line, got:\n%s", output)
	}
	if strings.Contains(output, "1 | func f") {
		t.Fatalf("context should be limited to one line, got:\n%s", output)
	}
	if !strings.Contains(output, "note: dup.slang:1:6: previous declaration") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes should be hidden, got:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.slang", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
