package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// PostProcessor is one stage of chunking. The first stage of a pipeline
// receives nil chunks and creates them; later stages refine the set they
// are given. A stage must return the same chunks for the same document.
type PostProcessor interface {
	// Name identifies the stage in the registry and in logs.
	Name() string

	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline turns a document into its complete chunk set.
// Every returned chunk carries the document's ID and a unique chunk ID.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
