// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"errors"
	"fmt"

	"slang/internal/ast"
	"slang/internal/source"
	"slang/internal/token"
)

// violations collects every broken rule instead of stopping at the first,
// so one fuzz crash shows the whole picture.
type violations []error

func (v *violations) addf(format string, args ...any) {
	*v = append(*v, fmt.Errorf(format, args...))
}

func (v violations) err() error { return errors.Join(v...) }

func contentEnd(sf *source.File) uint32 {
	// FileSet.Add уже отказал файлам длиннее uint32
	return uint32(len(sf.Content)) // #nosec G115
}

// CheckSpanInvariants verifies a parsed file: its span lies within the
// content, and top-level items are non-empty, ordered, disjoint and inside it.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return errors.New("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node %d not found", fileID)
	}

	var v violations
	fileSpan := f.Span
	switch {
	case fileSpan.End < fileSpan.Start:
		v.addf("file span is inverted: %v", fileSpan)
	case fileSpan.End > contentEnd(sf):
		v.addf("file span %v ends past content (%d bytes)", fileSpan, contentEnd(sf))
	}
	if len(f.Items) > 0 && fileSpan.File != sf.ID {
		v.addf("file span belongs to file %d, want %d", fileSpan.File, sf.ID)
	}

	var prev source.Span
	for i, id := range f.Items {
		item := b.Items.Get(id)
		if item == nil {
			v.addf("item #%d: id %d has no node", i, id)
			continue
		}
		sp := item.Span
		if sp.Empty() {
			v.addf("item #%d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			v.addf("item #%d: span in file %d, want %d", i, sp.File, sf.ID)
		}
		if !fileSpan.Covers(sp) {
			v.addf("item #%d: span %v escapes file span %v", i, sp, fileSpan)
		}
		if i > 0 && sp.Start < prev.End {
			v.addf("item #%d: span %v overlaps %v", i, sp, prev)
		}
		prev = sp
	}
	return v.err()
}

// CheckTokenInvariants verifies that toks end with EOF, stay inside the
// content and never move backwards.
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if len(toks) == 0 {
		return errors.New("empty token stream")
	}
	var v violations
	if last := toks[len(toks)-1].Kind; last != token.EOF {
		v.addf("stream ends with %v, want EOF", last)
	}
	end := contentEnd(sf)
	var prevStart uint32
	for i, tok := range toks {
		if tok.Span.End < tok.Span.Start || tok.Span.End > end {
			v.addf("token %d (%v): bad span %v", i, tok.Kind, tok.Span)
		}
		if tok.Span.Start < prevStart {
			v.addf("token %d (%v): starts before its predecessor", i, tok.Kind)
		}
		prevStart = tok.Span.Start
	}
	return v.err()
}
