package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file when it changes on disk and
// hands the fresh Config to a callback. The main use is hot-reloading
// pricing rate overrides without restarting an analysis process.
//
// Events are debounced: editors produce bursts of writes, and only the
// settled state matters.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for the config file at path. A zero
// debounce uses 200ms; a nil logger falls back to slog.Default.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Watch blocks until ctx is cancelled, invoking onReload with each
// successfully reloaded Config. Reload failures are logged and the
// previous configuration stays in effect.
//
// The parent directory is watched rather than the file itself: editors
// and config management tools typically replace the file by rename,
// which drops a direct file watch.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config)) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}
	defer func() { _ = w.watcher.Close() }()

	w.logger.Info("config watcher started", "path", w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.logger.Warn("config reload failed, keeping previous configuration",
					"path", w.path,
					"error", err,
				)
				continue
			}
			w.logger.Info("configuration reloaded", "path", w.path)
			onReload(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}
