package diagfmt

import (
	"encoding/json"
	"io"

	"slang/internal/diag"
	"slang/internal/source"
)

// Position is 1-based; Col counts bytes.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location always carries byte offsets; Range only with IncludePositions.
type Location struct {
	File  string `json:"file"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Range *Range `json:"range,omitempty"`
}

type NoteJSON struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// DiagnosticJSON is one entry of `--format json`. Severity is lower case
// ("error", "warning", "note").
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document root. Omitted counts entries cut by
// JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
}

// BuildDiagnosticsOutput converts without encoding.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	return buildOutput(bag.Items(), fs, opts), nil
}

func buildOutput(items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	shown := items
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(shown)),
		Omitted:     len(items) - len(shown),
	}
	loc := locator{fs: fs, opts: opts}
	for _, d := range shown {
		entry := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		// заметка таймингов и есть полезная нагрузка, её не прячем
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				entry.Notes = append(entry.Notes, NoteJSON{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, entry)
	}
	out.Count = len(out.Diagnostics)
	return out
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) Location {
	loc := Location{File: "<unknown>", Start: span.Start, End: span.End}
	f := l.fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = f.FormatPath(l.opts.PathMode.String(), l.fs.BaseDir())
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(span)
		loc.Range = &Range{
			Start: Position{Line: start.Line, Col: start.Col},
			End:   Position{Line: end.Line, Col: end.Col},
		}
	}
	return loc
}

// JSON encodes a whole bag, indented.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return JSONDiagnostics(w, bag.Items(), fs, opts)
}

// JSONDiagnostics encodes a plain list, e.g. a bag without its timing notes.
func JSONDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildOutput(diags, fs, opts))
}
