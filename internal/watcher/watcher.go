// Package watcher reloads eventmap sources when they change on disk.
//
// A Watcher observes files and directories with fsnotify, coalesces bursts of
// changes to the same path and hands each settled change to a reload callback.
// Callbacks run one at a time on the goroutine that called Run.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// DefaultDebounce is the quiet period before a change is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation set.
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	var s string
	for _, o := range []struct {
		op   Op
		name string
	}{{OpCreate, "CREATE"}, {OpWrite, "WRITE"}, {OpRemove, "REMOVE"}, {OpRename, "RENAME"}} {
		if op.Has(o.op) {
			if s != "" {
				s += "|"
			}
			s += o.name
		}
	}
	return s
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Removed reports whether the file is gone after the change.
func (op Op) Removed() bool {
	return op&(OpRemove|OpRename) != 0 && op&(OpCreate|OpWrite) == 0
}

// Event is a settled change to one file. Op is the union of every operation
// seen during the debounce window.
type Event struct {
	Path string
	Op   Op
}

// ReloadFunc handles a settled change.
type ReloadFunc func(ctx context.Context, ev Event)

// Config configures a Watcher.
type Config struct {
	// Debounce is the quiet period before a change is delivered.
	Debounce time.Duration

	// Filter reports whether a file inside a watched directory is of
	// interest. Nil accepts every file.
	Filter func(path string) bool

	Logger *slog.Logger
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce: DefaultDebounce,
		Logger:   slog.Default(),
	}
}

// Stats reports watcher activity.
type Stats struct {
	WatchedFiles int
	WatchedDirs  int
	RawEvents    int64
	Reloads      int64
	Errors       int64
}

// Watcher delivers debounced file changes to a ReloadFunc.
type Watcher struct {
	fsw      *fsnotify.Watcher
	config   Config
	onChange ReloadFunc

	mu      sync.Mutex
	files   map[string]bool // watched individually
	dirs    map[string]bool // watched as a whole
	fsDirs  map[string]bool // directories registered with fsnotify
	pending map[string]Op
	timers  map[string]*time.Timer
	closed  bool

	ready chan string

	rawEvents atomic.Int64
	reloads   atomic.Int64
	errCount  atomic.Int64
}

// New creates a watcher that calls onChange for every settled change.
func New(config Config, onChange ReloadFunc) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watcher: nil reload callback")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		config:   config,
		onChange: onChange,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		fsDirs:   make(map[string]bool),
		pending:  make(map[string]Op),
		timers:   make(map[string]*time.Timer),
		ready:    make(chan string, 64),
	}, nil
}

// Add watches a file or a directory. A file is observed through its parent
// directory so that editors which replace the file on save are still seen.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	dir := absPath
	set := w.dirs
	if !info.IsDir() {
		dir = filepath.Dir(absPath)
		set = w.files
	}
	if set[absPath] {
		return ErrAlreadyWatching
	}

	if !w.fsDirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.fsDirs[dir] = true
	}
	set[absPath] = true
	return nil
}

// Run delivers changes until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.errCount.Add(1)
			w.config.Logger.Warn("watch error", "error", err)

		case path := <-w.ready:
			w.deliver(ctx, path)
		}
	}
}

// handleFSEvent records a raw change and restarts its debounce timer.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.interested(fsEvent.Name) {
		return
	}
	w.rawEvents.Add(1)

	path := fsEvent.Name
	w.pending[path] |= op
	if t, ok := w.timers[path]; ok {
		t.Reset(w.config.Debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.config.Debounce, func() {
		select {
		case w.ready <- path:
		default:
			w.errCount.Add(1)
			w.config.Logger.Warn("reload queue full, dropping change", "path", path)
		}
	})
}

// interested reports whether path belongs to a watched file or directory.
// The caller holds mu.
func (w *Watcher) interested(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.dirs[filepath.Dir(path)] {
		return false
	}
	return w.config.Filter == nil || w.config.Filter(path)
}

func (w *Watcher) deliver(ctx context.Context, path string) {
	w.mu.Lock()
	op := w.pending[path]
	delete(w.pending, path)
	delete(w.timers, path)
	w.mu.Unlock()

	if op == 0 {
		return
	}

	w.reloads.Add(1)
	w.config.Logger.Debug("file changed", "path", path, "op", op.String())
	w.onChange(ctx, Event{Path: path, Op: op})
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Stats{
		WatchedFiles: len(w.files),
		WatchedDirs:  len(w.dirs),
		RawEvents:    w.rawEvents.Load(),
		Reloads:      w.reloads.Load(),
		Errors:       w.errCount.Load(),
	}
}

// Close stops the watcher. Pending changes are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	return w.fsw.Close()
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
