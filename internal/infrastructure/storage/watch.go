package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

var _ output.ElementStore = (*ElementFile)(nil)

// ElementFile is the last-captured-element slot with change notifications.
type ElementFile struct {
	*FileSlot[entity.CapturedElement]
	logger output.LoggerPort
}

func NewElementFile(path string, logger output.LoggerPort) *ElementFile {
	return &ElementFile{
		FileSlot: NewFileSlot[entity.CapturedElement](path),
		logger:   logger.WithField("component", "element-store"),
	}
}

// Watch calls fn with every new value until ctx is done. The directory is
// watched rather than the file because saves replace the file.
func (e *ElementFile) Watch(ctx context.Context, fn func(entity.CapturedElement)) error {
	return WatchSlot(ctx, e.FileSlot, e.logger, fn)
}

func WatchSlot[T any](ctx context.Context, slot *FileSlot[T], logger output.LoggerPort, fn func(T)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(slot.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(slot.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			value, found, err := slot.Load()
			if err != nil {
				logger.Warn("Failed to reload slot", "path", target, "error", err)
				continue
			}
			if found {
				fn(value)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}
