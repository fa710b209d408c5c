package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure NotebookService implements the interface.
var _ driving.NotebookService = (*NotebookService)(nil)

// NotebookService is the retrieval engine: it persists documents, keeps
// their chunks indexed and answers search and context queries from the
// current chunk snapshot.
type NotebookService struct {
	docStore  driven.DocumentStore
	indexer   *Indexer
	ranker    *Ranker
	retrieval domain.RetrievalSettings
	now       func() time.Time

	// locks keeps the stored document and its index partition in step.
	locks docLocks
}

// NewNotebookService creates a notebook service. Zero retrieval settings
// fall back to the domain defaults.
func NewNotebookService(
	docStore driven.DocumentStore,
	indexer *Indexer,
	ranker *Ranker,
	retrieval domain.RetrievalSettings,
) *NotebookService {
	defaults := domain.DefaultAppSettings().Retrieval
	if retrieval.SearchTopK <= 0 {
		retrieval.SearchTopK = defaults.SearchTopK
	}
	if retrieval.ContextTopK <= 0 {
		retrieval.ContextTopK = defaults.ContextTopK
	}
	if retrieval.TokenBudget <= 0 {
		retrieval.TokenBudget = defaults.TokenBudget
	}

	return &NotebookService{
		docStore:  docStore,
		indexer:   indexer,
		ranker:    ranker,
		retrieval: retrieval,
		now:       time.Now,
	}
}

// Ingest validates and chunks doc, stores it as processed and then swaps
// its chunks into the index. Nothing changes if validation, chunking or
// storage fails.
func (s *NotebookService) Ingest(ctx context.Context, doc *domain.Document) error {
	if s.docStore == nil {
		return domain.ErrStoreUnavailable
	}
	if err := doc.Validate(); err != nil {
		logger.Warn("Rejected document: %v", err)
		return err
	}

	unlock := s.locks.lock(doc.ID)
	defer unlock()

	chunks, err := s.indexer.Chunk(ctx, doc)
	if err != nil {
		logger.Warn("Rejected document: %v", err)
		return err
	}

	stored := *doc
	stored.State = domain.StateProcessed
	stored.Error = ""
	if stored.IngestedAt.IsZero() {
		stored.IngestedAt = s.now()
	}

	if err := s.docStore.SaveDocument(ctx, &stored); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	s.indexer.Store(stored.ID, chunks)

	logger.Info("Ingested %q: %d chunks", stored.DisplayName(), len(chunks))
	return nil
}

// Record stores a document that contributes no chunks, such as one whose
// extraction is pending or failed. Any chunks it had are removed.
func (s *NotebookService) Record(ctx context.Context, doc *domain.Document) error {
	if s.docStore == nil {
		return domain.ErrStoreUnavailable
	}
	if doc == nil || strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidDocument)
	}

	unlock := s.locks.lock(doc.ID)
	defer unlock()

	stored := *doc
	if !stored.State.IsValid() {
		stored.State = domain.StatePending
	}
	if stored.IngestedAt.IsZero() {
		stored.IngestedAt = s.now()
	}

	if err := s.docStore.SaveDocument(ctx, &stored); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	s.indexer.Remove(stored.ID)

	logger.Debug("Recorded %q as %s", stored.DisplayName(), stored.State)
	return nil
}

// Delete removes a document and all of its chunks. Unknown IDs are a no-op.
func (s *NotebookService) Delete(ctx context.Context, documentID string) error {
	if strings.TrimSpace(documentID) == "" {
		return fmt.Errorf("%w: missing document id", domain.ErrInvalidInput)
	}

	unlock := s.locks.lock(documentID)
	defer unlock()

	s.indexer.Remove(documentID)

	if s.docStore == nil {
		return nil
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("Deleted document %s", documentID)
	return nil
}

// Ask assembles a token-budgeted context for query. An empty context means
// there was no evidence; it is not an error.
func (s *NotebookService) Ask(_ context.Context, query string, opts domain.AskOptions) (*domain.RetrievalContext, error) {
	logger.Section("Context Assembly")
	logger.Debug("Query: %q", query)
	defer logger.Timed("Context assembly")()

	if strings.TrimSpace(query) == "" {
		return domain.EmptyContext(), nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.retrieval.ContextTopK
	}
	budget := opts.TokenBudget
	if budget <= 0 {
		budget = s.retrieval.TokenBudget
	}

	return s.ranker.BuildContext(query, s.indexer.Snapshot(), topK, budget), nil
}

// Search returns the top ranked chunks for query.
func (s *NotebookService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.ScoredChunk, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)
	defer logger.Timed("Search")()

	if strings.TrimSpace(query) == "" {
		return []domain.ScoredChunk{}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.retrieval.SearchTopK
	}

	results := s.ranker.Search(query, s.indexer.Snapshot(), topK)
	logger.Info("Final results: %d", len(results))
	return results, nil
}

// Get retrieves a document by ID.
func (s *NotebookService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// List returns all documents ordered by ingestion time.
func (s *NotebookService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.docStore.ListDocuments(ctx)
}

// Chunks returns a document's current chunks in ordinal order.
func (s *NotebookService) Chunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	if _, err := s.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return s.indexer.Chunks(documentID), nil
}

// Stats summarises documents and chunks.
func (s *NotebookService) Stats(ctx context.Context) (*domain.IndexStats, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.IndexStats{TotalDocuments: len(docs)}
	for _, d := range docs {
		switch d.State {
		case domain.StateProcessed:
			stats.ProcessedDocuments++
		case domain.StateFailed:
			stats.FailedDocuments++
		}
	}

	chunks := s.indexer.Snapshot()
	stats.TotalChunks = len(chunks)
	if len(chunks) > 0 {
		words := 0
		for _, c := range chunks {
			words += c.WordCount
		}
		stats.AvgChunkWords = int(math.Round(float64(words) / float64(len(chunks))))
	}

	return stats, nil
}

// Restore rebuilds the index by replaying every processed document from
// the store. Documents that no longer validate are skipped with a warning.
// It returns the number of documents indexed.
func (s *NotebookService) Restore(ctx context.Context) (int, error) {
	defer logger.Timed("Restore")()

	docs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return restored, err
		}
		doc := &docs[i]
		if doc.State != domain.StateProcessed {
			continue
		}
		if _, err := s.restoreOne(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrInvalidDocument) {
				logger.Warn("Skipping stored document %s: %v", doc.ID, err)
				continue
			}
			return restored, fmt.Errorf("restore %s: %w", doc.ID, err)
		}
		restored++
	}

	logger.Debug("Restored %d of %d documents (%d chunks)", restored, len(docs), s.indexer.Len())
	return restored, nil
}

func (s *NotebookService) restoreOne(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	unlock := s.locks.lock(doc.ID)
	defer unlock()
	return s.indexer.AddOrReplace(ctx, doc)
}
