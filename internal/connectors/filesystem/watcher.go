package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// Watcher reports changes to regular files under a root directory.
type Watcher struct {
	root string

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for root. The directory is not checked until
// Files or Watch is called.
func New(root string) *Watcher {
	return &Watcher{root: root}
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Files lists every visible regular file under the root in lexical order.
func (w *Watcher) Files(ctx context.Context) ([]string, error) {
	if err := w.checkRoot(); err != nil {
		return nil, err
	}
	return visibleFiles(ctx, w.root)
}

// Watch starts following changes under the root. The returned channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, domain.ErrWatcherClosed
	}
	if err := w.checkRoot(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(fsw, w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.watcher = fsw

	changes := make(chan domain.FileChange)
	go w.loop(ctx, fsw, changes)

	return changes, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			for _, change := range w.changesFor(ctx, fsw, event) {
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error under %s: %v", w.root, err)
		}
	}
}

// changesFor maps a raw event to file changes. A directory that appears,
// whether created or moved in, is watched and each file already inside it
// is reported as created.
func (w *Watcher) changesFor(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) []domain.FileChange {
	if event.Has(fsnotify.Create) && !w.hiddenPath(event.Name) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addTree(fsw, event.Name); err != nil {
				logger.Warn("Cannot watch %s: %v", event.Name, err)
			}
			files, err := visibleFiles(ctx, event.Name)
			if err != nil {
				logger.Warn("Cannot list %s: %v", event.Name, err)
			}
			changes := make([]domain.FileChange, len(files))
			for i, path := range files {
				changes[i] = domain.FileChange{Type: domain.ChangeCreated, Path: path}
			}
			return changes
		}
	}

	if change := w.handleFsEvent(event); change != nil {
		return []domain.FileChange{*change}
	}
	return nil
}

// handleFsEvent maps a raw event to a file change.
// Hidden paths, existing directories and attribute-only events yield nil.
// A removed or renamed path may have been a directory; consumers treat a
// deletion as covering everything beneath it.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	if w.hiddenPath(event.Name) {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.FileChange{Type: domain.ChangeDeleted, Path: event.Name}
	default:
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	return &domain.FileChange{Type: changeType, Path: event.Name}
}

// hiddenPath reports whether any element of path below the root is hidden.
func (w *Watcher) hiddenPath(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return isHidden(filepath.Base(path))
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && isHidden(part) {
			return true
		}
	}
	return false
}

func (w *Watcher) checkRoot() error {
	info, err := os.Stat(w.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("root path error: %s does not exist", w.root)
		}
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", w.root)
	}
	return nil
}

// visibleFiles walks dir, skipping hidden entries below it, and returns
// its regular files in lexical order.
func visibleFiles(ctx context.Context, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

// addTree watches dir and every visible directory beneath it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
