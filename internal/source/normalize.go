package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize strips a leading BOM and folds CRLF into LF. A lone \r stays.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, 1+bytes.Count(content, []byte("\n")))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return starts
		}
		off += i + 1
		next, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		starts = append(starts, next)
	}
}

// cleanPath gives every path one spelling, so index lookups and diffs agree
// across platforms.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to base. Paths outside base come back
// absolute rather than as a chain of "..".
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path, err
	}
	rel, err := filepath.Rel(absBase, absPath)
	switch {
	case err != nil:
		return absPath, err
	case rel == "..", strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return filepath.ToSlash(absPath), nil
	}
	return filepath.ToSlash(rel), nil
}
