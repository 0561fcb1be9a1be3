package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slang/internal/diag"
	"slang/internal/diagfmt"
	"slang/internal/driver"
	"slang/internal/observ"
	"slang/internal/project"
	"slang/internal/source"
)

var diagUI uiMode

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.slang|directory]",
	Short: "Run diagnostics on a slang source file or directory",
	Long: `Run diagnostics to find lexical, syntax and type errors in a slang file or in
every *.slang file of a directory. Without an argument the source root of
slang.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().String("stages", "all", "diagnostic stages to run (tokenize|syntax|sema|all)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged files from the user cache directory")
	diagUI = uiModeAuto
	diagCmd.Flags().Var(&diagUI, "ui", "progress UI for directories")
}

type diagSettings struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
	ui        uiMode
	jobs      int
	opts      driver.Options
	global    globalFlags
}

func readDiagSettings(cmd *cobra.Command) (diagSettings, error) {
	var s diagSettings
	var err error

	if s.format, err = cmd.Flags().GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch s.format {
	case "pretty", "json", "short":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	stagesStr, err := cmd.Flags().GetString("stages")
	if err != nil {
		return s, fmt.Errorf("failed to get stages flag: %w", err)
	}
	stage, ok := driver.ParseStage(stagesStr)
	if !ok {
		return s, fmt.Errorf("unknown stage: %s", stagesStr)
	}
	if s.opts, s.withNotes, err = readPolicyFlags(cmd); err != nil {
		return s, err
	}
	s.opts.Stage = stage
	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if s.pathMode, ok = diagfmt.ParsePathMode(pathModeStr); !ok {
		return s, fmt.Errorf("invalid --path-mode value %q", pathModeStr)
	}
	s.ui = diagUI
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return s, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if useCache {
		if s.opts.Cache, err = driver.OpenDiskCache("slang"); err != nil {
			return s, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	if s.global, err = readGlobalFlags(cmd); err != nil {
		return s, err
	}
	s.opts.MaxDiagnostics = s.global.maxDiagnostics
	s.opts.EnableTimings = s.global.timings
	return s, nil
}

// runDiagnose diagnoses a file or a directory and exits with status 1 when
// any error remains after the warning policy.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target, m, err := resolveTarget(args, func(m *project.Manifest) (string, error) {
		return m.SourceRoot(), nil
	})
	if err != nil {
		return err
	}
	if err := applyDiagDefaults(cmd, m); err != nil {
		return err
	}
	s, err := readDiagSettings(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupInstrumentation(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if st.IsDir() {
		return diagnoseDirectory(cmd, target, s)
	}

	res, err := driver.Diagnose(cmd.Context(), target, s.opts)
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}
	if err := renderDiagnostics(cmd, res.Bag, res.FileSet, s); err != nil {
		return err
	}
	if s.global.timings {
		printTimings(cmd.ErrOrStderr(), "", driver.TimingsOf(res.Bag))
	}
	return failIfErrors(res.Bag)
}

func diagnoseDirectory(cmd *cobra.Command, dir string, s diagSettings) error {
	dirOpts := driver.DirOptions{Options: s.opts, Jobs: s.jobs}

	var (
		fs      *source.FileSet
		results []driver.DirResult
		err     error
	)
	if s.format == "pretty" && !s.global.quiet && s.ui.enabled(cmd.OutOrStdout()) {
		fs, results, err = diagnoseDirWithUI(cmd.Context(), "diagnosing "+filepath.Base(dir), dir, dirOpts)
	} else {
		fs, results, err = driver.DiagnoseDir(cmd.Context(), dir, dirOpts)
	}
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}

	merged := driver.MergeResults(results)
	if err := renderDiagnostics(cmd, merged, fs, s); err != nil {
		return err
	}
	if s.global.timings {
		for _, r := range results {
			if r.Timing != nil {
				printTimings(cmd.ErrOrStderr(), r.Path, []observ.Report{*r.Timing})
			}
		}
	}
	if !s.global.quiet && s.format == "pretty" {
		fmt.Fprintln(cmd.ErrOrStderr(), summarizeDir(results))
	}
	return failIfErrors(merged)
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, s diagSettings) error {
	if s.format == "json" {
		return diagfmt.JSONDiagnostics(cmd.OutOrStdout(), withoutTimings(bag), fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			Max:              s.global.maxDiagnostics,
			IncludeNotes:     s.withNotes,
		})
	}
	if s.format == "short" {
		if out := diag.FormatShortDiagnostics(withoutTimings(bag), fs, s.withNotes); out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	}
	return printDiagnostics(cmd, bag, fs, diagfmt.PrettyOpts{Context: 1, PathMode: s.pathMode, ShowNotes: s.withNotes})
}

func summarizeDir(results []driver.DirResult) string {
	var failed, cached int
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			failed++
		}
		if r.Cached {
			cached++
		}
	}
	return fmt.Sprintf("%d files, %d with errors, %d from cache", len(results), failed, cached)
}
