package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slang/internal/diagfmt"
	"slang/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.slang>",
	Short: "Tokenize a slang source file",
	Long:  `Tokenize breaks a slang source file into tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
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

	result, err := driver.Tokenize(filePath, g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Лексер останавливается на первой ошибке, токенов нет
	if result.Bag.HasErrors() {
		if err := printDiagnostics(cmd, result.Bag, result.FileSet, defaultPretty()); err != nil {
			return err
		}
		return failIfErrors(result.Bag)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
