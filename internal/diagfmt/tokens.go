package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"slang/internal/source"
	"slang/internal/token"
)

// TokenJSON is one element of `slang tokenize --format json`.
type TokenJSON struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
	Line uint32      `json:"line,omitempty"`
	Col  uint32      `json:"col,omitempty"`
}

// untilEOF yields tokens up to and including the first EOF.
func untilEOF(tokens []token.Token, yield func(int, token.Token)) {
	for i, tok := range tokens {
		yield(i, tok)
		if tok.Kind == token.EOF {
			return
		}
	}
}

// FormatTokensPretty prints an aligned table: index, kind, text, range.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	untilEOF(tokens, func(i int, tok token.Token) {
		text := ""
		if tok.Text != "" {
			text = strconv.Quote(tok.Text)
		}
		from, to := fs.Resolve(tok.Span)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d:%d-%d:%d\n", i+1, tok.Kind, text, from.Line, from.Col, to.Line, to.Col)
	})
	return tw.Flush()
}

// FormatTokensJSON writes one indented array. Without fs the line and
// column fields are left out.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	out := make([]TokenJSON, 0, len(tokens))
	untilEOF(tokens, func(_ int, tok token.Token) {
		item := TokenJSON{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		if fs != nil {
			at, _ := fs.Resolve(tok.Span)
			item.Line, item.Col = at.Line, at.Col
		}
		out = append(out, item)
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
