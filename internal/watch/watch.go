// Package watch re-runs expansion when inputs change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"traitgen/internal/driver"
	"traitgen/internal/trace"
)

// DefaultDelay is the quiet period before a batch of changes is delivered.
const DefaultDelay = 150 * time.Millisecond

// Op is the kind of change seen for a path.
type Op uint8

const (
	OpModified Op = iota
	OpCreated
	OpRemoved
)

func (o Op) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpRemoved:
		return "removed"
	default:
		return "modified"
	}
}

// Change is one path in a debounced batch.
type Change struct {
	Path string
	Op   Op
}

// Filter reports whether a file path is interesting.
type Filter func(path string) bool

// Handler receives a batch of changes sorted by path.
type Handler func(ctx context.Context, changes []Change) error

// InputFilter accepts expansion inputs and rejects generated outputs.
func InputFilter(skipSuffix string) Filter {
	return func(path string) bool {
		if skipSuffix != "" && strings.HasSuffix(path, skipSuffix) {
			return false
		}
		_, ok := driver.KindOf(path)
		return ok
	}
}

// Watcher watches directory trees and delivers debounced change batches.
type Watcher struct {
	fsw    *fsnotify.Watcher
	delay  time.Duration
	filter Filter
	batch  debouncer
}

// New creates a watcher. A zero delay uses DefaultDelay; a nil filter
// accepts every file.
func New(delay time.Duration, filter Filter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	if filter == nil {
		filter = func(string) bool { return true }
	}
	return &Watcher{fsw: fsw, delay: delay, filter: filter}, nil
}

// AddRecursive watches root and all of its subdirectories except ignored ones.
func (w *Watcher) AddRecursive(root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && driver.IgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches to handle until ctx is cancelled or the watcher is
// closed. Handler errors are traced and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.record(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				trace.Point(ctx, trace.ScopeDriver, "watch_overflow", err.Error())
				continue
			}
			return fmt.Errorf("watch: %w", err)
		case <-timerC:
			timerC = nil
			changes := w.batch.flush()
			if len(changes) == 0 {
				continue
			}
			trace.Point(ctx, trace.ScopeDriver, "watch_batch", fmt.Sprintf("%d changes", len(changes)))
			if err := handle(ctx, changes); err != nil {
				trace.Point(ctx, trace.ScopeDriver, "watch_handler_error", err.Error())
			}
		}
	}
}

func (w *Watcher) record(ev fsnotify.Event) bool {
	// новые каталоги тоже надо слушать
	if ev.Has(fsnotify.Create) {
		if err := w.AddRecursive(ev.Name); err == nil && isDir(ev.Name) {
			return false
		}
	}
	if !w.filter(ev.Name) {
		return false
	}
	w.batch.add(ev.Name, opOf(ev.Op))
	return true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func opOf(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreated
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpRemoved
	default:
		return OpModified
	}
}

// debouncer collapses repeated events for the same path.
type debouncer struct {
	pending map[string]Op
}

func (d *debouncer) add(path string, op Op) {
	if d.pending == nil {
		d.pending = make(map[string]Op)
	}
	prev, seen := d.pending[path]
	switch {
	case !seen:
		d.pending[path] = op
	case prev == OpCreated && op == OpModified:
		// создание + запись остаётся созданием
	default:
		d.pending[path] = op
	}
}

func (d *debouncer) flush() []Change {
	if len(d.pending) == 0 {
		return nil
	}
	out := make([]Change, 0, len(d.pending))
	for path, op := range d.pending {
		out = append(out, Change{Path: path, Op: op})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	d.pending = nil
	return out
}
