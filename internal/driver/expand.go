package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"traitgen/internal/diag"
	"traitgen/internal/format"
	"traitgen/internal/generate"
	"traitgen/internal/observ"
	"traitgen/internal/parser"
	"traitgen/internal/project"
	"traitgen/internal/reserved"
	"traitgen/internal/source"
	"traitgen/internal/trace"
)

// InputKind tells how a file is expanded.
type InputKind uint8

const (
	// InputAliases is a bare alias file (.ta): the whole file is one collection.
	InputAliases InputKind = iota + 1
	// InputRust is a Rust file (.rs) whose trait_aliases! calls are expanded in place.
	InputRust
)

func (k InputKind) String() string {
	switch k {
	case InputAliases:
		return "aliases"
	case InputRust:
		return "rust"
	default:
		return "unknown"
	}
}

// KindOf classifies path by its extension.
func KindOf(path string) (InputKind, bool) {
	switch filepath.Ext(path) {
	case ".ta":
		return InputAliases, true
	case ".rs":
		return InputRust, true
	}
	return 0, false
}

// Options controls expansion.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds parallel expansion in ExpandPaths; <= 0 means GOMAXPROCS.
	Jobs   int
	Format format.Options
	// SkipSuffix excludes files ending with it from directory walks, so that
	// generated outputs are not expanded again.
	SkipSuffix string
	Cache      *DiskCache
	Progress   ProgressSink
	Timer      *observ.Timer
	// BaseDir anchors relative paths in reports (the manifest root). When
	// empty, ExpandPaths uses its only directory input.
	BaseDir string
}

// ExpandResult is the outcome for one input file.
type ExpandResult struct {
	Path   string
	FileID source.FileID
	Kind   InputKind
	// Output is nil when Bag has errors.
	Output      []byte
	Items       int
	Invocations int
	Bag         *diag.Bag
	Cached      bool
}

// Failed reports whether the file produced error diagnostics.
func (r *ExpandResult) Failed() bool {
	return r != nil && r.Bag.HasErrors()
}

// ExpandFile loads path into a fresh FileSet and expands it.
func ExpandFile(ctx context.Context, path string, opts Options) (*source.FileSet, *ExpandResult, error) {
	fs := source.NewFileSet()
	fs.SetBaseDir(opts.BaseDir)
	fileID, err := fs.Load(path)
	if err != nil {
		return fs, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res, err := ExpandSource(ctx, fs, fileID, opts)
	return fs, res, err
}

// ExpandSource expands one loaded file. Malformed declarations and reserved
// identifiers end up in the result bag; the returned error is reserved for
// cancellation and unsupported inputs.
func ExpandSource(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ExpandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	kind, ok := KindOf(file.Path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported input, want .ta or .rs", file.Path)
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, trace.FileSpanPrefix+file.Path)
	started := time.Now()

	res := &ExpandResult{
		Path:   file.Path,
		FileID: fileID,
		Kind:   kind,
		Bag:    newBag(opts.MaxDiagnostics),
	}
	defer func() {
		span.WithExtra("items", strconv.Itoa(res.Items)).End(string(statusOf(res)))
		emit(opts.Progress, Event{
			File:    file.Path,
			Status:  statusOf(res),
			Items:   res.Items,
			Elapsed: time.Since(started),
		})
	}()

	key := cacheKey(file, kind)
	if opts.Cache != nil && loadCached(opts.Cache, key, res) {
		return res, nil
	}

	var output []byte
	switch kind {
	case InputAliases:
		output = expandAliases(ctx, file, opts, res)
	case InputRust:
		output = expandRust(ctx, file, opts, res)
	}
	if res.Bag.HasErrors() {
		return res, nil
	}
	res.Output = output

	if opts.Cache != nil {
		err := opts.Cache.Put(key, &CachedExpansion{
			Path:        file.Path,
			ContentHash: project.Digest(file.Hash),
			Output:      output,
			Items:       res.Items,
			Invocations: res.Invocations,
		})
		if err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "failed to write cache entry: "+err.Error()))
		}
	}
	return res, nil
}

func statusOf(res *ExpandResult) Status {
	switch {
	case res.Bag.HasErrors():
		return StatusError
	case res.Cached:
		return StatusCached
	default:
		return StatusDone
	}
}

func loadCached(cache *DiskCache, key project.Digest, res *ExpandResult) bool {
	var entry CachedExpansion
	ok, err := cache.Get(key, &entry)
	if err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "ignoring cache entry: "+err.Error()))
		return false
	}
	if !ok {
		return false
	}
	res.Output = entry.Output
	if res.Output == nil {
		res.Output = []byte{}
	}
	res.Items = entry.Items
	res.Invocations = entry.Invocations
	res.Cached = true
	return true
}

func expandAliases(ctx context.Context, file *source.File, opts Options, res *ExpandResult) []byte {
	frags, ok := expandRange(ctx, file, 0, uint32(len(file.Content)), opts, res) //nolint:gosec // FileSet guarantees uint32 sizes
	if !ok {
		return nil
	}
	res.Invocations = 1
	if len(frags) == 0 {
		return []byte{}
	}
	stop := opts.Timer.Track("render")
	defer stop("")
	emit(opts.Progress, Event{File: file.Path, Stage: StageRender, Status: StatusWorking})
	return format.Fragments(frags, opts.Format)
}

// expandRust copies the file verbatim, replacing every trait_aliases! call
// with its expansion. Every call is checked so that all broken ones are
// reported, but any failure drops the output of the whole file.
func expandRust(ctx context.Context, file *source.File, opts Options, res *ExpandResult) []byte {
	invs := FindInvocations(file)
	res.Invocations = len(invs)

	rendered := make([][]byte, len(invs))
	failed := false
	for i, inv := range invs {
		if !inv.check(res.Bag) {
			failed = true
			continue
		}
		frags, ok := expandRange(ctx, file, inv.Body.Start, inv.Body.End, opts, res)
		if !ok {
			failed = true
			continue
		}
		if len(frags) > 0 {
			rendered[i] = format.Fragments(frags, opts.Format)
		}
	}
	if failed {
		return nil
	}

	stop := opts.Timer.Track("render")
	defer stop("")
	emit(opts.Progress, Event{File: file.Path, Stage: StageRender, Status: StatusWorking})

	w := format.NewWriter(file, format.Options{})
	prev := 0
	for i, inv := range invs {
		w.CopyRange(prev, int(inv.Span.Start))
		prev = int(inv.Span.End)
		if len(rendered[i]) == 0 {
			continue
		}
		writeIndented(w, rendered[i], lineIndent(file.Content, int(inv.Span.Start)))
		// вывод уже заканчивается переводом строки
		if prev < len(file.Content) && file.Content[prev] == '\n' {
			prev++
		}
	}
	w.CopyRange(prev, len(file.Content))
	return w.Bytes()
}

// expandRange parses the bytes [start, end) of file and generates fragments.
func expandRange(ctx context.Context, file *source.File, start, end uint32, opts Options, res *ExpandResult) ([]generate.Fragment, bool) {
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	stop := opts.Timer.Track("parse")
	pctx, sp := trace.StartSpan(ctx, trace.ScopePass, "parse")
	coll, err := parser.ParseRange(file, start, end, parser.Options{})
	sp.End("")
	stop("")
	if err != nil {
		addError(res.Bag, err)
		return nil, false
	}
	for _, item := range coll.Items {
		trace.Point(pctx, trace.ScopeItem, "alias", item.Ident.Name)
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageGenerate, Status: StatusWorking})
	stop = opts.Timer.Track("generate")
	frags := generate.TraitAliases(coll)
	stop(strconv.Itoa(len(frags)) + " aliases")
	res.Items += len(frags)
	return frags, true
}

// addError переносит диагностики из ошибок парсера и проверки в bag.
func addError(bag *diag.Bag, err error) {
	var (
		parseErr    *parser.ParseError
		reservedErr *reserved.Error
	)
	switch {
	case errors.As(err, &parseErr):
		bag.Add(parseErr.Diagnostic)
	case errors.As(err, &reservedErr):
		for _, d := range reservedErr.Diagnostics {
			bag.Add(d)
		}
	default:
		bag.Add(diag.NewError(diag.UnknownCode, source.Span{}, err.Error()))
	}
}

// lineIndent returns the whitespace between the start of the line and off,
// or "" when something other than whitespace precedes off on that line.
func lineIndent(content []byte, off int) string {
	lineStart := off
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	prefix := string(content[lineStart:off])
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

// writeIndented writes text, prefixing every line but the first with indent.
// Empty lines stay empty.
func writeIndented(w *format.Writer, text []byte, indent string) {
	for i, line := range strings.SplitAfter(string(text), "\n") {
		if line == "" {
			continue
		}
		if i > 0 && line != "\n" {
			w.WriteString(indent)
		}
		w.WriteString(line)
	}
}
