package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 150 * time.Millisecond

// Watch reloads the catalog at path whenever it changes and sends the new
// entries. Invalid edits are logged and skipped. The channel is closed when
// ctx is done.
func Watch(ctx context.Context, path string) (<-chan []Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan []Entry, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					fire = time.After(watchDebounce)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", zap.Error(err))

			case <-fire:
				fire = nil
				entries, err := Load(abs)
				if err != nil {
					logger.Warn("catalog reload failed, keeping current bodies",
						zap.String("path", abs), zap.Error(err))
					continue
				}
				logger.Info("catalog reloaded",
					zap.String("path", abs), zap.Int("bodies", len(entries)))
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
