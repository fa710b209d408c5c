package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatcherFactory creates a watcher for a directory.
type WatcherFactory func(dir string) driven.Watcher

// WatchService keeps the notebook in sync with a directory: created and
// modified files are re-ingested, removed files are deleted.
type WatchService struct {
	ingest     driving.IngestService
	notebook   driving.NotebookService
	newWatcher WatcherFactory
}

// NewWatchService creates a watch service.
func NewWatchService(
	ingest driving.IngestService,
	notebook driving.NotebookService,
	newWatcher WatcherFactory,
) *WatchService {
	return &WatchService{
		ingest:     ingest,
		notebook:   notebook,
		newWatcher: newWatcher,
	}
}

// Watch ingests every supported file under dir, then applies changes until
// ctx is cancelled. Per-file failures are reported and do not stop watching.
func (s *WatchService) Watch(ctx context.Context, dir string, report driving.WatchReporter) error {
	if s.newWatcher == nil {
		return fmt.Errorf("%w: no watcher available", domain.ErrNotConfigured)
	}
	if report == nil {
		report = func(domain.FileChange, error) {}
	}

	w := s.newWatcher(dir)
	defer w.Close()

	logger.Section("Watch")
	logger.Debug("Root: %s", w.Root())

	// Subscribe before the initial pass so no change falls between the two.
	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	files, err := w.Files(ctx)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	logger.Debug("Initial pass: %d files", len(files))

	for _, path := range files {
		s.apply(ctx, domain.FileChange{Type: domain.ChangeCreated, Path: path}, report)
	}

	for change := range changes {
		s.apply(ctx, change, report)
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *WatchService) apply(ctx context.Context, change domain.FileChange, report driving.WatchReporter) {
	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		if !s.ingest.Supports(change.Path) {
			logger.Debug("Skipping unsupported file %s", change.Path)
			return
		}
		_, err := s.ingest.IngestFile(ctx, change.Path)
		report(change, err)

	case domain.ChangeDeleted:
		report(change, s.deletePath(ctx, change.Path))
	}
}

// deletePath removes the document for path. The path may have been a
// directory, so file documents stored beneath it are removed as well.
func (s *WatchService) deletePath(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := s.notebook.Delete(ctx, DocumentIDForPath(abs)); err != nil {
		return err
	}

	docs, err := s.notebook.List(ctx)
	if err != nil {
		return fmt.Errorf("list documents under %s: %w", abs, err)
	}

	prefix := abs + string(filepath.Separator)
	var errs []error
	removed := 0
	for i := range docs {
		if docs[i].Kind != domain.KindFile || !strings.HasPrefix(docs[i].URI, prefix) {
			continue
		}
		if err := s.notebook.Delete(ctx, docs[i].ID); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Debug("Removed %d documents under %s", removed, abs)
	}
	return errors.Join(errs...)
}
