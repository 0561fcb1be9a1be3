package diag

import (
	"slang/internal/source"
)

// Note is a secondary span with a short explanation.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a severity-tagged message anchored at a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Error implements error so a single diagnostic can travel as one.
func (d Diagnostic) Error() string {
	return d.Severity.Label() + " " + d.Code.ID() + ": " + d.Message
}
