package driven

import "github.com/custodia-labs/notebook-rag/internal/core/domain"

// ChunkIndex holds the current union of chunks across all documents.
// State is partitioned by document ID and each partition is replaced
// atomically: a reader sees either all of a document's old chunks or all
// of its new ones, never a mix.
type ChunkIndex interface {
	// Replace swaps the chunks stored for documentID with chunks.
	// An empty chunks slice leaves the document with no chunks.
	Replace(documentID string, chunks []domain.Chunk)

	// Remove drops every chunk of documentID. Unknown IDs are a no-op.
	Remove(documentID string)

	// Snapshot returns a copy of the aggregate chunk set, ordered by
	// document insertion and then by ordinal.
	Snapshot() []domain.Chunk

	// Chunks returns a copy of one document's chunks in ordinal order.
	Chunks(documentID string) []domain.Chunk

	// Len returns the total number of chunks.
	Len() int
}
