package mcp

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// mockNotebookService is a mock implementation of driving.NotebookService.
type mockNotebookService struct {
	results   []domain.ScoredChunk
	context   *domain.RetrievalContext
	documents []domain.Document
	document  *domain.Document
	chunks    []domain.Chunk
	stats     *domain.IndexStats
	err       error

	lastQuery  string
	lastSearch domain.SearchOptions
	lastAsk    domain.AskOptions
	deletedIDs []string
}

func (m *mockNotebookService) Ingest(_ context.Context, _ *domain.Document) error {
	return m.err
}

func (m *mockNotebookService) Record(_ context.Context, _ *domain.Document) error {
	return m.err
}

func (m *mockNotebookService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockNotebookService) Ask(
	_ context.Context,
	query string,
	opts domain.AskOptions,
) (*domain.RetrievalContext, error) {
	m.lastQuery = query
	m.lastAsk = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.context == nil {
		return domain.EmptyContext(), nil
	}
	return m.context, nil
}

func (m *mockNotebookService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.ScoredChunk, error) {
	m.lastQuery = query
	m.lastSearch = opts
	return m.results, m.err
}

func (m *mockNotebookService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.document == nil {
		return nil, domain.ErrNotFound
	}
	return m.document, nil
}

func (m *mockNotebookService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockNotebookService) Chunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockNotebookService) Stats(_ context.Context) (*domain.IndexStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats == nil {
		return &domain.IndexStats{}, nil
	}
	return m.stats, nil
}

func (m *mockNotebookService) Restore(_ context.Context) (int, error) {
	return 0, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	document *domain.Document
	err      error

	lastName string
	lastText string
	lastURL  string
}

func (m *mockIngestService) IngestFile(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestService) IngestURL(_ context.Context, url string) (*domain.Document, error) {
	m.lastURL = url
	return m.document, m.err
}

func (m *mockIngestService) IngestText(_ context.Context, name, text string) (*domain.Document, error) {
	m.lastName = name
	m.lastText = text
	return m.document, m.err
}

func (m *mockIngestService) IngestRaw(_ context.Context, _ string, _ *domain.RawSource) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestService) Supports(_ string) bool {
	return true
}
