package driving

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// WatchReporter is told about every file the watch service handles.
// err is nil when the change was applied.
type WatchReporter func(change domain.FileChange, err error)

// WatchService keeps the notebook in sync with a directory.
type WatchService interface {
	// Watch ingests every supported file under dir and then follows
	// changes until ctx is cancelled. report may be nil.
	Watch(ctx context.Context, dir string, report WatchReporter) error
}
