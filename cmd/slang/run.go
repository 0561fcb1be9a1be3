package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slang/internal/diagfmt"
	"slang/internal/driver"
	"slang/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.slang]",
	Short: "Check and execute a slang program",
	Long: `Run checks the file and, when there are no errors, calls main. Printed
values go to stdout; diagnostics and runtime errors go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	runCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	runCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	runCmd.Flags().Int("max-depth", 0, "maximum call depth (0 = interpreter default)")
}

func runRun(cmd *cobra.Command, args []string) error {
	filePath, _, err := resolveTarget(args, (*project.Manifest).MainPath)
	if err != nil {
		return err
	}
	opts, withNotes, err := readPolicyFlags(cmd)
	if err != nil {
		return err
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
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

	res, err := driver.Run(cmd.Context(), filePath, driver.RunOptions{
		Options:  opts,
		Stdout:   cmd.OutOrStdout(),
		MaxDepth: maxDepth,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	prettyOpts := diagfmt.PrettyOpts{Context: 1, ShowNotes: withNotes}
	if err := printDiagnostics(cmd, res.Bag, res.FileSet, prettyOpts); err != nil {
		return err
	}
	if g.timings {
		printTimings(cmd.ErrOrStderr(), "", driver.TimingsOf(res.Bag))
	}
	if err := failIfErrors(res.Bag); err != nil {
		return err
	}
	if res.Runtime != nil {
		colored, err := colorFor(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		prettyOpts.Color = colored
		diagfmt.FormatRuntime(cmd.ErrOrStderr(), res.Runtime, res.FileSet, prettyOpts)
		dumpTraceRing(cmd)
		return &exitError{code: 1}
	}
	return nil
}
