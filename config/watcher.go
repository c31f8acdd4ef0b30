package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Aman-CERP/vexpool"
)

// debounceWindow coalesces the bursts of events editors emit on save so a
// single rewrite triggers a single reload.
const debounceWindow = 500 * time.Millisecond

// Watcher reloads the configuration file whenever it changes and
// re-applies the pool sizes to its registry. Reload failures are logged
// and the previous sizes stay in effect.
type Watcher struct {
	path string
	reg  *vexpool.Registry
	fw   *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher for the config file at path. The parent
// directory is watched rather than the file itself: editors typically
// replace the file on save, which would silently drop a watch on the old
// inode.
func NewWatcher(path string, reg *vexpool.Registry) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		path: path,
		reg:  reg,
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Start runs the watch loop in the background until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Done is closed when the watch loop has exited and released its
// resources.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer func() { _ = w.fw.Close() }()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				pending = timer.C
			} else {
				// Drain a tick that fired but was not yet consumed so
				// the Reset starts a clean window.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", slog.String("error", err.Error()))

		case <-pending:
			timer = nil
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Error("failed to reload pool config",
			slog.String("path", w.path),
			slog.String("error", err.Error()))
		return
	}
	cfg.Apply(w.reg)
	slog.Info("reapplied pool config",
		slog.String("path", w.path),
		slog.Int("build_threads", cfg.BuildThreads),
		slog.Int("search_threads", cfg.SearchThreads))
}
