package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the file whenever it changes on disk until ctx is done. The
// parent directory is watched so editors that replace the file by rename are
// picked up. Invalid files are logged and ignored, keeping the last good
// configuration.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(m.configPath)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go m.watchLoop(ctx, w)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	name := filepath.Clean(m.configPath)
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.log.Warn("watcher error", "err", err)

		case <-timer.C:
			if err := m.Load(); err != nil {
				m.log.Warn("reload failed, keeping previous configuration", "err", err)
				continue
			}
			m.log.Info("configuration reloaded", "path", m.configPath)
		}
	}
}
