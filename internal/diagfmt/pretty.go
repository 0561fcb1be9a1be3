package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"slang/internal/diag"
	"slang/internal/source"
)

type palette struct {
	err, warn, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.note
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	PrettyDiagnostics(w, bag.Items(), fs, opts)
}

// PrettyDiagnostics renders a plain list, e.g. the single diagnostic of a
// runtime error.
func PrettyDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range diags {
		d := &diags[i]
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(d.Primary, fs, opts.PathMode),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, d.Primary, fs, opts, p)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(note.Span, fs, opts.PathMode), note.Msg)
		}
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	if fs == nil {
		return fmt.Sprintf("<span %d-%d>", span.Start, span.End)
	}
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.String(), fs.BaseDir()), start.Line, start.Col)
}

// writeSnippet prints the primary line with its context and underlines the
// span. Columns are display cells, so wide runes and tabs keep the caret
// aligned.
func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, p palette) {
	if fs == nil {
		return
	}
	f := fs.Get(span.File)
	if f == nil || len(f.LineStarts) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	from := clampCol(start.Col, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col, line)
	}
	pad := displayPad(line[:from])
	width := max(runewidth.StringWidth(line[from:to]), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), pad, p.caret.Sprint(marks))
}

func clampCol(col uint32, line string) int {
	idx := int(col) - 1
	if idx < 0 {
		return 0
	}
	return min(idx, len(line))
}

// displayPad keeps tabs and replaces everything else by spaces of equal width.
func displayPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
