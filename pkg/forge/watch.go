package forge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Watch recompiles DSL files as they change. Each file's directory is
// watched; editors that replace files on save still trigger through
// the create/write events on the directory. Overlapping rebuilds of
// the same batch are coalesced.
func (f *Forge) Watch(ctx context.Context, paths []string, build func(path string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	building := atomic.NewBool(false)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil || !watched[abs] {
					continue
				}
				if !building.CompareAndSwap(false, true) {
					continue
				}
				path := abs
				group.Go(func() error {
					defer building.Store(false)
					f.log.Info("Source changed, rebuilding", zap.String("file", path))
					if err := build(path); err != nil {
						// keep watching; a broken edit is not fatal
						f.log.Error("Rebuild failed", zap.Error(err))
					}
					return nil
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				f.log.Error("Watcher error", zap.Error(err))
			}
		}
	})
	f.log.Info("Watching for changes", zap.Int("files", len(watched)))
	return group.Wait()
}
