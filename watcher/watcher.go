// Package watcher turns changes of the input file into session events.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"roadexport/session"
)

// settle is how long the file has to stay quiet before it is reloaded, so a
// save that arrives as several writes triggers a single load.
const settle = 200 * time.Millisecond

// Watch sends a SelectEvent for path every time it is written or replaced,
// until ctx is done. The directory is watched rather than the file so that
// editors which save by renaming are picked up too.
func Watch(ctx context.Context, path string, events chan<- session.Event, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %q %w", path, err)
	}

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				logger.Debug("input changed", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(settle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)

		case <-timer.C:
			select {
			case events <- session.SelectEvent{Paths: []string{path}}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
