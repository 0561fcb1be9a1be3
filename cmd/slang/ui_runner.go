package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"slang/internal/driver"
	"slang/internal/source"
	"slang/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

func diagnoseDirWithUI(ctx context.Context, title, dir string, opts driver.DirOptions) (*source.FileSet, []driver.DirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.DiagnoseDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	// модель могла выйти раньше (ctrl+c): дочитываем канал, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
