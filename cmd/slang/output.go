package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slang/internal/diag"
	"slang/internal/diagfmt"
	"slang/internal/observ"
	"slang/internal/source"
)

// colorFor resolves --color for the stream the output goes to.
func colorFor(cmd *cobra.Command, w io.Writer) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(value) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// withoutTimings drops the ObsTimings carriers; they are printed as a table instead.
func withoutTimings(bag *diag.Bag) []diag.Diagnostic {
	if bag == nil {
		return nil
	}
	items := bag.Items()
	out := make([]diag.Diagnostic, 0, len(items))
	for _, d := range items {
		if d.Code == diag.ObsTimings {
			continue
		}
		out = append(out, d)
	}
	return out
}

func defaultPretty() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Context: 1}
}

// printDiagnostics renders bag to the command's stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, opts diagfmt.PrettyOpts) error {
	diags := withoutTimings(bag)
	if len(diags) == 0 {
		return nil
	}
	colored, err := colorFor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts.Color = colored
	diagfmt.PrettyDiagnostics(cmd.ErrOrStderr(), diags, fs, opts)
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "... %d more not shown (raise --max-diagnostics)\n", n)
	}
	return nil
}

func printTimings(out io.Writer, label string, reports []observ.Report) {
	for _, r := range reports {
		if label != "" {
			fmt.Fprintln(out, label)
		}
		r.WriteTable(out)
	}
}

// failIfErrors turns an error-carrying bag into exit status 1.
func failIfErrors(bag *diag.Bag) error {
	if bag != nil && bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}
