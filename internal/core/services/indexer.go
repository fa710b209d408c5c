package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Indexer keeps the aggregate chunk set current as documents change.
// It holds no state beyond the chunk index: every query re-scores a fresh
// snapshot, so there is no ranking cache to go stale.
type Indexer struct {
	pipeline driven.PostProcessorPipeline
	index    driven.ChunkIndex
}

// NewIndexer creates an indexer that chunks with pipeline and stores into index.
func NewIndexer(pipeline driven.PostProcessorPipeline, index driven.ChunkIndex) *Indexer {
	return &Indexer{
		pipeline: pipeline,
		index:    index,
	}
}

// Chunk validates doc and runs it through the pipeline without touching
// the index.
func (x *Indexer) Chunk(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	chunks, err := x.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", doc.ID, err)
	}
	return chunks, nil
}

// AddOrReplace chunks doc and swaps its partition in the index.
// Invalid documents are rejected before the index changes.
func (x *Indexer) AddOrReplace(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	chunks, err := x.Chunk(ctx, doc)
	if err != nil {
		return nil, err
	}
	x.Store(doc.ID, chunks)
	return chunks, nil
}

// Store replaces the chunks of documentID with chunks produced by Chunk.
func (x *Indexer) Store(documentID string, chunks []domain.Chunk) {
	x.index.Replace(documentID, chunks)
	logger.Debug("Indexed %s: %d chunks (total %d)", documentID, len(chunks), x.index.Len())
}

// Remove drops every chunk of documentID. Unknown IDs are a no-op.
func (x *Indexer) Remove(documentID string) {
	x.index.Remove(documentID)
	logger.Debug("Removed chunks of %s (total %d)", documentID, x.index.Len())
}

// Snapshot returns the current aggregate chunk set.
func (x *Indexer) Snapshot() []domain.Chunk {
	return x.index.Snapshot()
}

// Chunks returns one document's current chunks.
func (x *Indexer) Chunks(documentID string) []domain.Chunk {
	return x.index.Chunks(documentID)
}

// Len returns the total number of indexed chunks.
func (x *Indexer) Len() int {
	return x.index.Len()
}
