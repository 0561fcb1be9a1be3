package source

import "fmt"

// Span is the byte range [Start, End) of one file. Every token, AST node,
// diagnostic and runtime error points back to source through a Span.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }
func (s Span) Len() uint32 { return s.End - s.Start }
func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

// Contains is end-exclusive.
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }

// Covers reports whether o lies entirely within s.
func (s Span) Covers(o Span) bool {
	return s.File == o.File && s.Start <= o.Start && o.End <= s.End
}

// Cover widens s so that it also spans other. Spans of different files are
// not merged: s comes back unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// AtStart is the empty span at s.Start; parse errors at a missing token use it.
func (s Span) AtStart() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }

// AtEnd is the empty span right after s.
func (s Span) AtEnd() Span { return Span{File: s.File, Start: s.End, End: s.End} }
