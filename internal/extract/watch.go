package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups bursts of file events into one run
const DefaultDebounce = 150 * time.Millisecond

// Watch runs an extraction immediately and again after every burst of
// changes under the patterns' base directories, until ctx is done.
// onRun receives each run's outcome; run errors do not stop the watch.
func Watch(ctx context.Context, cfg Config, debounce time.Duration, onRun func(*Result, error)) error {
	log := cfg.logger()
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	artifact, err := filepath.Abs(cfg.outputPath())
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	roots := watchRoots(cfg.Paths)
	skipDir := excludedDir(filepath.Dir(artifact), roots)
	ignored := func(path string) bool {
		abs, err := filepath.Abs(path)
		return err == nil && (abs == artifact || inDir(abs, skipDir))
	}

	for _, root := range roots {
		if err := addTree(watcher, root, skipDir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("watch root does not exist", zap.String("root", root))
				continue
			}
			return fmt.Errorf("watch %s: %w", root, err)
		}
		log.Debug("watching", zap.String("root", root))
	}

	run := func() {
		res, err := Run(cfg)
		onRun(res, err)
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, ev.Name, skipDir); err != nil {
						log.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Debug("change", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			run()
		}
	}
}

// excludedDir returns outputDir when its whole tree can be left unwatched,
// or "" when it contains a watch root and only the artifact may be ignored.
func excludedDir(outputDir string, roots []string) string {
	for _, root := range roots {
		if inDir(root, outputDir) {
			return ""
		}
	}
	return outputDir
}

// addTree watches root and every directory below it except skipDir.
// fsnotify is not recursive.
func addTree(w *fsnotify.Watcher, root, skipDir string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == ".git" || name == "node_modules" || inDir(path, skipDir)) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func inDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
