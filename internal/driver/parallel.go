package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"slang/internal/diag"
	"slang/internal/observ"
	"slang/internal/source"
)

// SourceExt is the extension DiagnoseDir looks for.
const SourceExt = ".slang"

// DirOptions configure DiagnoseDir.
type DirOptions struct {
	Options
	Jobs     int // <= 0 means GOMAXPROCS
	Progress ProgressSink
}

// DirResult is the outcome for one file of the tree.
type DirResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// ListSourceFiles возвращает отсортированный список всех *.slang файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir diagnoses every .slang file under dir. Files are independent, so
// each runs its own pipeline on a worker; results keep the sorted file order.
// The error is non-nil only for a walk failure or cancellation.
func DiagnoseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее, воркеры только читают.
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			fileID = fileSet.Add(path, nil, 0)
		}
		fileIDs[i] = fileID
		emitProgress(opts.Progress, ProgressEvent{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()
			file := fileSet.Get(fileIDs[i])

			if loadErrors[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]},
					fmt.Sprintf("failed to load file: %v", loadErrors[i])))
				results[i] = DirResult{Path: path, FileID: fileIDs[i], Bag: bag}
				emitProgress(opts.Progress, ProgressEvent{File: path, Status: StatusError, Elapsed: time.Since(started)})
				return nil
			}

			notify := func(stage Stage) {
				emitProgress(opts.Progress, ProgressEvent{File: path, Stage: stage, Status: StatusWorking})
			}
			res, err := diagnoseLoaded(gctx, fileSet, file, opts.Options, notify)
			if err != nil {
				return err
			}
			results[i] = DirResult{
				Path:   path,
				FileID: fileIDs[i],
				Bag:    res.Bag,
				Timing: res.Timing,
				Cached: res.Cached,
			}
			status := StatusDone
			switch {
			case res.Bag.HasErrors():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emitProgress(opts.Progress, ProgressEvent{File: path, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func emitProgress(sink ProgressSink, ev ProgressEvent) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}

// MergeResults collects all file bags into one sorted bag for rendering.
func MergeResults(results []DirResult) *diag.Bag {
	total := 0
	for _, r := range results {
		total += r.Bag.Len()
	}
	merged := diag.NewBag(max(total, 1))
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	merged.Sort()
	return merged
}
