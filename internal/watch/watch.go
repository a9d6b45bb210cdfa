// Package watch re-runs a callback when a file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// File calls onChange once at start and again after every burst of changes to
// path, waiting debounce after the last event. The parent directory is watched
// so editors that replace the file by rename are still seen. Callback errors
// are logged and do not stop the watch. File returns when ctx is done.
func File(ctx context.Context, path string, debounce time.Duration, logger *zap.SugaredLogger, onChange func() error) error {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: failed to watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		if err := onChange(); err != nil {
			logger.Warnw("watch callback failed", "path", path, "error", err)
		}
	}
	run()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debugw("file changed", "path", path, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			logger.Warnw("watcher error", "error", err)

		case <-timer.C:
			run()
		}
	}
}
