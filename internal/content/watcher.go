// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package content

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc receives the result of each reload. err joins the failures of
// individual files; types holds every file that loaded.
type ReloadFunc func(types []*mob.Type, err error)

// Watcher reloads a content directory whenever a matching file changes.
type Watcher struct {
	loader   *Loader
	dir      string
	patterns []string
	globs    []glob.Glob
	debounce time.Duration
	onReload ReloadFunc
	logger   *slog.Logger

	fsw       *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle delay. Zero or negative keeps the default.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher watches dir and every directory below it.
func NewWatcher(loader *Loader, dir string, patterns []string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	globs, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, oops.In("content").Wrapf(err, "create watcher")
	}

	w := &Watcher{
		loader:   loader,
		dir:      dir,
		patterns: patterns,
		globs:    globs,
		debounce: DefaultDebounce,
		onReload: onReload,
		logger:   slog.Default(),
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fsw.Close()
		return nil, oops.In("content").Code(CodeReadFailed).With("dir", dir).Wrap(err)
	}
	return w, nil
}

// Start runs the watch loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Close stops the loop and waits for it to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				w.watchIfDir(ev.Name)
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			errutil.LogWarn(w.logger, "content watch error", oops.In("content").With("dir", w.dir).Wrap(err))
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.dir, ev.Name)
	if err != nil {
		return false
	}
	return matchAny(w.globs, filepath.ToSlash(rel))
}

func (w *Watcher) watchIfDir(path string) {
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(p)
		}
		return nil
	})
	if err != nil {
		w.logger.Debug("new path not watched", "path", path, "error", err)
	}
}

// reload retries while a file is unreadable, which happens while an
// editor is replacing it.
func (w *Watcher) reload(ctx context.Context) {
	var types []*mob.Type
	var loadErr error
	backoff := retry.WithMaxRetries(3, retry.NewConstant(w.debounce/2+time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		types, loadErr = w.loader.LoadDir(ctx, w.dir, w.patterns)
		if loadErr != nil && hasCode(loadErr, CodeReadFailed) {
			return retry.RetryableError(loadErr)
		}
		return nil
	})
	if err != nil && loadErr == nil {
		loadErr = err
	}
	w.logger.Info("content reloaded", "dir", w.dir, "types", len(types), "failed", loadErr != nil)
	if w.onReload != nil {
		w.onReload(types, loadErr)
	}
}

// hasCode reports whether err, or any error joined into it, carries code.
func hasCode(err error, code string) bool {
	if errutil.Code(err) == code {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if hasCode(e, code) {
				return true
			}
		}
	}
	return false
}
