package mood

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"moodwell/internal/logging"
)

// Watch reloads path into r whenever it changes, until ctx is done. The
// parent directory is watched so editors that save by rename are seen.
func (r *Registry) Watch(ctx context.Context, path string, logger *logging.Logger) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return fmt.Errorf("failed to resolve personas path: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	logger = logger.WithContext("file", abs)
	logger.Debug("watching personas file")

	go r.eventLoop(ctx, fsw, abs, logger)
	return nil
}

func (r *Registry) eventLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, logger *logging.Logger) {
	defer fsw.Close()

	// Editors often emit several events per save; collapse them.
	const settle = 100 * time.Millisecond
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(settle)

		case <-pending:
			pending = nil
			if err := r.LoadFile(path); err != nil {
				logger.WithError(err).Warn("personas reload failed, keeping previous personas")
				continue
			}
			logger.Info("personas reloaded")

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Error("watcher error")
		}
	}
}
