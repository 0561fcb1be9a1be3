package source

import (
	"os"
	"path/filepath"
	"slices"
)

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags record how the stored content differs from the input bytes.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: stdin, тесты
	FileHadBOM                               // UTF-8 BOM срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one immutable version of a source text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineStarts[i] is the offset of line i+1. Always non-empty.
	LineStarts []uint32
	Hash       [32]byte
	Flags      FileFlags
}

// Location is a 1-based line/column pair plus the raw offset.
// Col counts bytes.
type Location struct {
	Line   uint32
	Col    uint32
	Offset uint32
}

type Range struct {
	File  FileID
	Start Location
	End   Location
}

// Locate maps a byte offset to its line and column.
func (f *File) Locate(off uint32) Location {
	if f == nil || len(f.LineStarts) == 0 {
		return Location{Line: 1, Col: off + 1, Offset: off}
	}
	// первая строка, начинающаяся правее off, минус один
	idx, found := slices.BinarySearch(f.LineStarts, off)
	if !found {
		idx--
	}
	idx = max(idx, 0)
	return Location{Line: uint32(idx) + 1, Col: off - f.LineStarts[idx] + 1, Offset: off} // #nosec G115 -- bounded by LineStarts length
}

// GetLine returns line n (1-based) without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineStarts) {
		return ""
	}
	from := int(f.LineStarts[n-1])
	to := len(f.Content)
	if int(n) < len(f.LineStarts) {
		to = int(f.LineStarts[n]) - 1
	}
	if from > to {
		return ""
	}
	return string(f.Content[from:to])
}

// FormatPath renders the path for a diagnostic header. mode is one of
// "absolute", "relative", "basename" or "auto"; anything else keeps the
// stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	}
	return f.Path
}
