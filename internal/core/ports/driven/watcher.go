package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// Watcher emits change events for files under a directory.
type Watcher interface {
	// Root returns the watched directory.
	Root() string

	// Files lists every regular file currently under the root.
	Files(ctx context.Context) ([]string, error)

	// Watch listens for changes until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close releases resources.
	Close() error
}
