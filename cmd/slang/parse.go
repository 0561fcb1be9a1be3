package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slang/internal/diagfmt"
	"slang/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.slang>",
	Short: "Parse a slang source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runParse prints the tree even after syntax errors: the parser resyncs, so
// the recovered declarations are still worth showing.
func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := driver.Parse(filePath, g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet, diagfmt.PrettyOpts{Context: 1, ShowNotes: withNotes}); err != nil {
		return err
	}
	if result.Builder != nil {
		if format == "json" {
			err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
		} else {
			err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
		}
		if err != nil {
			return err
		}
	}
	return failIfErrors(result.Bag)
}
