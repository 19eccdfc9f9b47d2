package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
	"github.com/LegacyCodeHQ/styleimport/scanner"
)

const debounceInterval = 300 * time.Millisecond

func watchAndRewrite(ctx context.Context, w *rewriter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, w.root, w.outDir); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	pending := make(map[string]bool)
	debounce := time.NewTimer(debounceInterval)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name, w.outDir)
			}

			if !isRelevantChange(event) {
				continue
			}

			pending[event.Name] = true
			debounce.Reset(debounceInterval)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.env.Log.Warn("Watcher error", zap.Error(err))

		case <-debounce.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)
			w.rewrite(ctx, paths)
		}
	}
}

func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return scanner.IsModulePath(event.Name)
}

// addWatchDirs watches root and every directory below it, except skipped
// directories and outDir, which would otherwise feed its own output back.
func addWatchDirs(watcher *fsnotify.Watcher, root, outDir string) error {
	return addWatchDirsWithAdder(root, func(path string) error {
		if path == outDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func addWatchDirsWithAdder(root string, add func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && app.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := add(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path, outDir string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path, outDir)
	}
}
