// Package memory provides in-memory implementations of the storage ports.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	stored := *doc
	stored.Metadata = maps.Clone(doc.Metadata)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = stored
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc.Metadata = maps.Clone(doc.Metadata)
	return &doc, nil
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}

// ListDocuments returns all documents ordered by ingestion time, then ID.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	result := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		doc.Metadata = maps.Clone(doc.Metadata)
		result = append(result, doc)
	}
	s.mu.RUnlock()

	slices.SortFunc(result, compareDocuments)
	return result, nil
}

func compareDocuments(a, b domain.Document) int {
	if c := a.IngestedAt.Compare(b.IngestedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
