// Package watch re-runs an action whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Debounce is how long the file must stay quiet before the action runs.
// Editors often write a file in several steps.
var Debounce = 200 * time.Millisecond

// File calls fn after every change to path until ctx is done. The parent
// directory is watched so that editors which replace the file by renaming
// are still seen. Errors from fn are logged and watching continues.
func File(ctx context.Context, path string, logger hclog.Logger, fn func() error) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Debug("watching file", "path", target)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fire = time.After(Debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			logger.Info("file changed", "path", target)
			if err := fn(); err != nil {
				logger.Error("action failed", "path", target, "error", err)
			}
		}
	}
}
