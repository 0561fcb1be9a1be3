package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.slang", []byte("hello world"), 0)
	id2 := fs.Add("test.slang", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("test.slang")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestResolveLines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.slang", []byte("ab\ncde\n\nf"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{8, 4, 1},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col || start.Offset != tc.off {
			t.Fatalf("offset %d: expected %d:%d, got %+v", tc.off, tc.line, tc.col, start)
		}
	}
}

func TestRangeAndOffsetRoundTrip(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.slang", []byte("func main() {\n  print(1)\n}\n"))
	span := Span{File: id, Start: 16, End: 21}
	r := fs.Range(span)
	if r.Start.Line != 2 || r.Start.Col != 3 || r.End.Col != 8 {
		t.Fatalf("unexpected range %+v", r)
	}
	off, ok := fs.Offset(id, r.Start.Line, r.Start.Col)
	if !ok || off != span.Start {
		t.Fatalf("expected offset %d, got %d (ok=%v)", span.Start, off, ok)
	}
	if _, ok := fs.Offset(id, 99, 1); ok {
		t.Fatalf("expected out-of-range line to fail")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.slang", []byte("one\ntwo\nthree")))
	for i, want := range []string{"one", "two", "three"} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Fatalf("line %d: expected %q, got %q", i+1, want, got)
		}
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("expected empty line past end, got %q", got)
	}
}

func TestCRLFAndBOMNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("w.slang", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual == 0 {
		t.Fatalf("unexpected flags %b", f.Flags)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.slang")
	if err := os.WriteFile(path, []byte("func main() {}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := string(fs.Get(id).Content); got != "func main() {}\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.slang")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 10, End: 12}
	if got := a.Cover(b); got.Start != 4 || got.End != 12 {
		t.Fatalf("expected 4-12, got %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 50}); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
	if !a.Contains(5) || a.Contains(6) {
		t.Fatalf("contains is end-exclusive")
	}
}

func TestInternerBasic(t *testing.T) {
	in := NewInterner()
	a := in.Intern("main")
	b := in.Intern("main")
	c := in.Intern("print")
	if a != b || a == c || a == NoStringID {
		t.Fatalf("unexpected ids %d %d %d", a, b, c)
	}
	if s := in.MustLookup(c); s != "print" {
		t.Fatalf("expected print, got %q", s)
	}
	if _, ok := in.Lookup(StringID(100)); ok {
		t.Fatalf("expected lookup of unknown id to fail")
	}
	if in.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", in.Len())
	}
}
