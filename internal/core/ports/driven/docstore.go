package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// DocumentStore persists documents across process restarts.
// Chunks are derived state and are never stored; they are rebuilt by
// replaying stored documents through the indexer.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document. Unknown IDs are a no-op.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents ordered by IngestedAt, then ID.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
