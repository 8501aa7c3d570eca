package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads an entity table when its file changes.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher
}

// NewWatcher starts watching path. The containing directory is watched so
// editors that save by renaming over the file are seen too.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{path: abs, fw: fw}, nil
}

// Run delivers every successfully reloaded table to fn and every failure
// to onErr until ctx is done. A table that fails to load is skipped and the
// caller keeps the previous one.
func (w *Watcher) Run(ctx context.Context, fn func(*Catalog), onErr func(error)) error {
	defer w.fw.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c, err := Load(w.path)
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}
			fn(c)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}
