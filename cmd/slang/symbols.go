package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slang/internal/driver"
	"slang/internal/source"
	"slang/internal/symbols"
)

var defCmd = &cobra.Command{
	Use:   "def <file.slang> <line:col>",
	Short: "Print the declaration of the name at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runDef,
}

var refsCmd = &cobra.Command{
	Use:   "refs [flags] <file.slang> <line:col>",
	Short: "List every use of the name at a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runRefs,
}

func init() {
	refsCmd.Flags().Bool("include-decl", false, "list the declaration first")
}

// symbolQuery is a checked file plus the byte offset the user pointed at.
type symbolQuery struct {
	fs     *source.FileSet
	index  *symbols.Index
	offset uint32
}

func prepareSymbolQuery(cmd *cobra.Command, args []string) (*symbolQuery, error) {
	line, col, err := parsePosition(args[1])
	if err != nil {
		return nil, err
	}
	res, err := driver.Check(cmd.Context(), args[0], driver.Options{MaxDiagnostics: 100})
	if err != nil {
		return nil, err
	}
	// без дерева и результата чекера индексировать нечего
	if res.Sema == nil {
		if err := printDiagnostics(cmd, res.Bag, res.FileSet, defaultPretty()); err != nil {
			return nil, err
		}
		return nil, &exitError{code: 1}
	}
	offset, ok := res.FileSet.Offset(res.File.ID, line, col)
	if !ok {
		return nil, fmt.Errorf("position %d:%d is outside %s", line, col, args[0])
	}
	return &symbolQuery{fs: res.FileSet, index: symbols.Build(res.Sema), offset: offset}, nil
}

func runDef(cmd *cobra.Command, args []string) error {
	q, err := prepareSymbolQuery(cmd, args)
	if err != nil {
		return err
	}
	sym, ok := q.index.Lookup(q.offset)
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "no symbol at", args[1])
		return &exitError{code: 1}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s", spanLocation(q.fs, sym.Span), sym.Kind, sym.Name)
	if sym.Type != "" {
		fmt.Fprintf(cmd.OutOrStdout(), ": %s", sym.Type)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func runRefs(cmd *cobra.Command, args []string) error {
	includeDecl, err := cmd.Flags().GetBool("include-decl")
	if err != nil {
		return fmt.Errorf("failed to get include-decl flag: %w", err)
	}
	q, err := prepareSymbolQuery(cmd, args)
	if err != nil {
		return err
	}
	if _, ok := q.index.Lookup(q.offset); !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "no symbol at", args[1])
		return &exitError{code: 1}
	}
	writeSpans(cmd.OutOrStdout(), q.fs, q.index.References(q.offset, includeDecl))
	return nil
}

func writeSpans(w io.Writer, fs *source.FileSet, spans []source.Span) {
	for _, sp := range spans {
		fmt.Fprintln(w, spanLocation(fs, sp))
	}
}

func spanLocation(fs *source.FileSet, sp source.Span) string {
	start, _ := fs.Resolve(sp)
	path := "<unknown>"
	if f := fs.Get(sp.File); f != nil {
		path = f.Path
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// parsePosition reads "line:col", both 1-based.
func parsePosition(s string) (line, col uint32, err error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q (expected line:col)", s)
	}
	l, err := strconv.ParseUint(lineStr, 10, 32)
	if err != nil || l == 0 {
		return 0, 0, fmt.Errorf("invalid line in %q", s)
	}
	c, err := strconv.ParseUint(colStr, 10, 32)
	if err != nil || c == 0 {
		return 0, 0, fmt.Errorf("invalid column in %q", s)
	}
	return uint32(l), uint32(c), nil
}
