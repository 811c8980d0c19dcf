package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/parameter"
)

// Watch re-reads path whenever it is written or replaced and sends each valid result
// The parent directory is watched so editors that save by rename are seen
// The channel closes when ctx is cancelled
func Watch(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	out := make(chan *Config, parameter.ReloadQueueSize)
	core.Go(func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Warn("config reload rejected", zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path))
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", zap.Error(err))
			}
		}
	})
	return out, nil
}
