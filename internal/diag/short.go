package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"slang/internal/source"
)

// shortLine is one row of `slang diag --format short`.
type shortLine struct {
	path      string
	line, col uint32
	sev       string
	code      string
	msg       string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", l.path, l.line, l.col, l.sev, l.code, l.msg)
}

// FormatShortDiagnostics renders one line per diagnostic, sorted by
// location, in the "path:line:col: severity CODE: message" shape editors
// and grep understand. Notes become lines of their own when includeNotes
// is set. The result has no trailing newline.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	for i := range diags {
		d := &diags[i]
		if l, ok := shortAt(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.Label(), d.Code.ID(), oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortAt(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", d.Code.ID(), oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortAt(fs *source.FileSet, span source.Span) (shortLine, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return shortLine{}, false
	}
	path := file.Path
	if file.Flags&source.FileVirtual == 0 {
		path = file.FormatPath("relative", fs.BaseDir())
	}
	start, _ := fs.Resolve(span)
	return shortLine{
		path: trimDotSlash(filepath.ToSlash(path)),
		line: start.Line,
		col:  start.Col,
	}, true
}

func trimDotSlash(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

var newlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// oneLine folds a multi-line message.
func oneLine(msg string) string {
	return strings.TrimSpace(newlines.Replace(msg))
}
