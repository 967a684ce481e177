package theme

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/observability"
)

var discard = log.New(io.Discard)

// DefaultDebounce is how long a Watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a themes file into a Store whenever the file changes.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temp file over the original are handled. A reload
// that fails to read, parse or validate is logged and the store keeps its
// previous mapping.
type Watcher struct {
	Path     string
	Store    *Store
	Logger   *log.Logger
	Loader   func(path string) (*Themes, error) // defaults to LoadWithBuiltin
	Debounce time.Duration                      // defaults to DefaultDebounce
}

// Reload loads the file once and swaps it into the store on success.
func (w *Watcher) Reload(ctx context.Context) error {
	load := w.Loader
	if load == nil {
		load = LoadWithBuiltin
	}
	ts, err := load(w.Path)
	observability.Theme().OnThemeReload(ctx, w.Path, ts.Len(), err)
	if err != nil {
		w.logger().Warn("keeping previous themes", "path", w.Path, "err", err)
		return err
	}
	w.Store.Swap(ts)
	w.logger().Info("reloaded themes", "path", w.Path, "themes", ts.Len())
	return nil
}

// Run watches until ctx is done. It returns nil on cancellation and an
// error only when the watch cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Store == nil {
		return errors.New(errors.ErrCodeInternal, "theme watcher has no store")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer fw.Close()

	target := filepath.Clean(w.Path)
	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "watch %s", dir)
	}
	w.logger().Debug("watching themes", "path", target)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("file watcher error", "err", err)
		case <-timer.C:
			_ = w.Reload(ctx)
		}
	}
}

func (w *Watcher) logger() *log.Logger {
	if w.Logger == nil {
		return discard
	}
	return w.Logger
}
