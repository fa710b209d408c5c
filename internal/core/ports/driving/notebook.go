package driving

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// NotebookService is the retrieval engine's boundary: documents go in,
// ranked and attributable evidence comes out.
type NotebookService interface {
	// Ingest validates, chunks and indexes a document with extracted text.
	// Repeating the call with unchanged text yields an identical chunk set.
	// Invalid documents are rejected with domain.ErrInvalidDocument before
	// any state changes.
	Ingest(ctx context.Context, doc *domain.Document) error

	// Record stores a document that is not (yet) indexable, e.g. pending
	// or failed extraction. Any chunks it had are removed.
	Record(ctx context.Context, doc *domain.Document) error

	// Delete removes a document and all its chunks. Unknown IDs are a no-op.
	Delete(ctx context.Context, documentID string) error

	// Ask assembles a token-budgeted context for query.
	// An empty context means insufficient evidence, not failure.
	Ask(ctx context.Context, query string, opts domain.AskOptions) (*domain.RetrievalContext, error)

	// Search returns the top ranked chunks for query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.ScoredChunk, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all known documents ordered by ingestion time.
	List(ctx context.Context) ([]domain.Document, error)

	// Chunks returns a document's current chunks in ordinal order.
	Chunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// Stats summarises documents and chunks.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// Restore rebuilds the in-memory index from the document store.
	Restore(ctx context.Context) (int, error)
}
