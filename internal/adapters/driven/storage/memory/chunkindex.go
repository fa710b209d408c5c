package memory

import (
	"slices"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure ChunkIndex implements the interface.
var _ driven.ChunkIndex = (*ChunkIndex)(nil)

// ChunkIndex is an in-memory implementation of driven.ChunkIndex.
// Each document's chunks live in their own partition; partitions are
// swapped whole, so readers never see half of a replacement.
type ChunkIndex struct {
	mu         sync.RWMutex
	partitions map[string][]domain.Chunk
	order      []string // document IDs in first-insertion order
	total      int
}

// NewChunkIndex creates a new empty chunk index.
func NewChunkIndex() *ChunkIndex {
	return &ChunkIndex{
		partitions: make(map[string][]domain.Chunk),
	}
}

// Replace swaps the chunks stored for documentID.
// A document keeps its position in the snapshot order across replacements.
func (i *ChunkIndex) Replace(documentID string, chunks []domain.Chunk) {
	if len(chunks) == 0 {
		i.Remove(documentID)
		return
	}

	// Copy before taking the lock so callers may reuse their slice.
	partition := slices.Clone(chunks)

	i.mu.Lock()
	defer i.mu.Unlock()

	old, exists := i.partitions[documentID]
	if !exists {
		i.order = append(i.order, documentID)
	}
	i.total += len(partition) - len(old)
	i.partitions[documentID] = partition
}

// Remove drops every chunk of documentID.
func (i *ChunkIndex) Remove(documentID string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	old, exists := i.partitions[documentID]
	if !exists {
		return
	}
	i.total -= len(old)
	delete(i.partitions, documentID)
	i.order = slices.DeleteFunc(i.order, func(id string) bool {
		return id == documentID
	})
}

// Snapshot returns a copy of all chunks, by document insertion then ordinal.
func (i *ChunkIndex) Snapshot() []domain.Chunk {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result := make([]domain.Chunk, 0, i.total)
	for _, id := range i.order {
		result = append(result, i.partitions[id]...)
	}
	return result
}

// Chunks returns a copy of one document's chunks.
func (i *ChunkIndex) Chunks(documentID string) []domain.Chunk {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.partitions[documentID])
}

// Len returns the total number of chunks.
func (i *ChunkIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.total
}
