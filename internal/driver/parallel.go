package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"traitgen/internal/diag"
	"traitgen/internal/source"
	"traitgen/internal/trace"
)

// ListInputs collects .ta and .rs files from paths. Directories are walked
// recursively, skipping hidden directories and Cargo's target/. Files named
// explicitly are kept even when their extension is unknown, so that the
// caller gets a clear error for them. The result is sorted and deduplicated.
func ListInputs(paths []string, skipSuffix string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && IgnoredDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if skipSuffix != "" && strings.HasSuffix(path, skipSuffix) {
				return nil
			}
			if _, ok := KindOf(path); ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// IgnoredDir reports whether a directory named name is skipped when
// walking inputs.
func IgnoredDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "target"
}

// ExpandDir expands every input under dir in parallel.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*ExpandResult, error) {
	return ExpandPaths(ctx, []string{dir}, opts)
}

// ExpandPaths expands the files and directories in paths in parallel,
// bounded by opts.Jobs. Results are sorted by path; a file that could not be
// read gets a result carrying an I/O diagnostic.
func ExpandPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*ExpandResult, error) {
	files, err := ListInputs(paths, opts.SkipSuffix)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	switch {
	case opts.BaseDir != "":
		fileSet.SetBaseDir(opts.BaseDir)
	case len(paths) == 1:
		if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
			fileSet.SetBaseDir(paths[0])
		}
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "expand")
	defer span.WithExtra("files", fmt.Sprint(len(files))).End("")

	// Предзагружаем последовательно: FileSet не потокобезопасен на запись
	stop := opts.Timer.Track("load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
		emit(opts.Progress, Event{File: fileSet.Get(fileID).Path, Stage: StageParse, Status: StatusQueued})
	}
	stop(fmt.Sprintf("%d files", len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*ExpandResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if loadErr, hadError := loadErrors[path]; hadError {
				bag := newBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				display := filepath.ToSlash(filepath.Clean(path))
				results[i] = &ExpandResult{Path: display, Bag: bag}
				emit(opts.Progress, Event{File: display, Status: StatusError, Err: loadErr})
				return nil
			}
			res, err := ExpandSource(gctx, fileSet, fileIDs[path], opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, compact(results), err
	}
	return fileSet, results, nil
}

// compact drops the slots of files that were never processed.
func compact(results []*ExpandResult) []*ExpandResult {
	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
