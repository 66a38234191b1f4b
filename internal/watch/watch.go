// Package watch reruns a task when a source directory changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the directory must stay quiet before a run.
const DefaultDebounce = 2 * time.Second

// ErrWatch indicates the directory could not be watched.
var ErrWatch = errors.New("watch failed")

// RunFunc is the task rerun on changes.
type RunFunc func(ctx context.Context) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Values below 1ms keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= time.Millisecond {
			w.debounce = d
		}
	}
}

// WithIgnore skips entries whose base name matches.
func WithIgnore(ignore func(name string) bool) Option {
	return func(w *Watcher) {
		w.ignore = ignore
	}
}

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher runs a task once, then again after every burst of changes in a
// directory and its direct subdirectories. Runs never overlap.
type Watcher struct {
	dir      string
	run      RunFunc
	debounce time.Duration
	ignore   func(string) bool
	logger   *slog.Logger
}

// New creates a Watcher for dir.
func New(dir string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      filepath.Clean(dir),
		run:      run,
		debounce: DefaultDebounce,
		ignore:   func(string) bool { return false },
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is done. Task errors are logged and the watch goes
// on. It returns nil on cancellation and an error only when watching fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw); err != nil {
		return err
	}
	w.logger.Info("watching for new articles", "dir", w.dir, "debounce", w.debounce)

	w.runOnce(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handle(fw, event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

// handle tracks new directories and reports whether event should schedule
// a run. A rename shows up as Create for the new name, so Rename only drops
// the stale watch.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	name := filepath.Base(event.Name)

	if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
		_ = fw.Remove(event.Name)
	}
	if w.ignore(name) || w.ignore(filepath.Base(filepath.Dir(event.Name))) {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.dir && isDir(event.Name) {
		if err := fw.Add(event.Name); err != nil {
			w.logger.Warn("cannot watch new folder", "dir", event.Name, "error", err)
		}
	}
	w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
	return true
}

func (w *Watcher) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error("run failed", "error", err)
	}
}

// addTree watches dir and its direct, non-ignored subdirectories.
func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWatch, w.dir, err)
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	for _, e := range entries {
		if !e.IsDir() || w.ignore(e.Name()) {
			continue
		}
		sub := filepath.Join(w.dir, e.Name())
		if err := fw.Add(sub); err != nil {
			w.logger.Warn("cannot watch folder", "dir", sub, "error", err)
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
