package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slang/internal/diagfmt"
	"slang/internal/driver"
	"slang/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.slang]",
	Short: "Type-check a slang source file",
	Long: `Check runs the lexer, parser and type checker over one file. Without an
argument the [run].main file of slang.toml is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filePath, m, err := resolveTarget(args, (*project.Manifest).MainPath)
	if err != nil {
		return err
	}
	if err := applyDiagDefaults(cmd, m); err != nil {
		return err
	}
	opts, withNotes, err := readPolicyFlags(cmd)
	if err != nil {
		return err
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	opts.MaxDiagnostics = g.maxDiagnostics
	opts.EnableTimings = g.timings

	cleanup, err := setupInstrumentation(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.Check(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if err := printDiagnostics(cmd, res.Bag, res.FileSet, diagfmt.PrettyOpts{Context: 1, ShowNotes: withNotes}); err != nil {
		return err
	}
	if g.timings {
		printTimings(cmd.ErrOrStderr(), "", driver.TimingsOf(res.Bag))
	}
	if err := failIfErrors(res.Bag); err != nil {
		return err
	}
	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", filePath)
	}
	return nil
}

// readPolicyFlags reads the warning policy shared by check, run and diag.
func readPolicyFlags(cmd *cobra.Command) (driver.Options, bool, error) {
	var opts driver.Options
	var err error
	if opts.IgnoreWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return opts, false, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.WarningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, false, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return opts, false, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	return opts, withNotes, nil
}
