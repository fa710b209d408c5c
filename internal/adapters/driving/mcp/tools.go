package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to match against notebook chunks"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []ChunkOutput `json:"results"`
	Count   int           `json:"count"`
}

// ChunkOutput represents a single scored chunk.
type ChunkOutput struct {
	ChunkID      string  `json:"chunk_id"`
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	Ordinal      int     `json:"ordinal"`
	Score        float64 `json:"score"`
	Text         string  `json:"text"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question    string `json:"question" jsonschema:"the question to gather evidence for"`
	TopK        int    `json:"top_k,omitempty" jsonschema:"maximum passages to consider (default from settings)"`
	TokenBudget int    `json:"token_budget,omitempty" jsonschema:"word budget for the passages (default from settings)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Passages   []ChunkOutput        `json:"passages"`
	Documents  []domain.DocumentRef `json:"documents"`
	TokenCount int                  `json:"token_count"`
	Found      bool                 `json:"found"`
}

// IngestTextInput is the input schema for the ingest_text tool.
type IngestTextInput struct {
	Name string `json:"name,omitempty" jsonschema:"display name for the text"`
	Text string `json:"text" jsonschema:"the text to add to the notebook"`
}

// IngestURLInput is the input schema for the ingest_url tool.
type IngestURLInput struct {
	URL string `json:"url" jsonschema:"http or https address of the page to add"`
}

// DocumentOutput describes a stored document.
type DocumentOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	URI   string `json:"uri,omitempty"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// IngestOutput is the output schema for the ingest tools.
type IngestOutput struct {
	Document DocumentOutput `json:"document"`
	Chunks   int            `json:"chunks"`
}

// DeleteInput is the input schema for the delete_document tool.
type DeleteInput struct {
	DocumentID string `json:"document_id" jsonschema:"ID of the document to remove"`
}

// DeleteOutput is the output schema for the delete_document tool.
type DeleteOutput struct {
	Deleted string `json:"deleted"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// StatsInput is the input schema for the stats tool.
type StatsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the notebook for chunks matching a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Gather the best matching passages for a question within a word budget",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every document in the notebook",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a document and all of its chunks",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats",
		Description: "Count documents and chunks",
	}, s.handleStats)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_text",
			Description: "Add text to the notebook",
		}, s.handleIngestText)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_url",
			Description: "Fetch a web page and add it to the notebook",
		}, s.handleIngestURL)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{TopK: input.TopK}
	results, err := s.ports.Notebook.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Results: toChunkOutputs(results),
		Count:   len(results),
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.AskOptions{TopK: input.TopK, TokenBudget: input.TokenBudget}
	rc, err := s.ports.Notebook.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Passages:   toChunkOutputs(rc.Chunks),
		Documents:  rc.Documents,
		TokenCount: rc.TokenCount,
		Found:      !rc.IsEmpty(),
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Notebook.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i])
	}
	return nil, output, nil
}

// handleDeleteDocument handles the delete_document tool invocation.
func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.ports.Notebook.Delete(ctx, input.DocumentID); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: input.DocumentID}, nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, domain.IndexStats, error) {
	stats, err := s.ports.Notebook.Stats(ctx)
	if err != nil {
		return nil, domain.IndexStats{}, err
	}
	return nil, *stats, nil
}

// handleIngestText handles the ingest_text tool invocation.
func (s *Server) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, ErrIngestUnavailable
	}

	doc, err := s.ports.Ingest.IngestText(ctx, input.Name, input.Text)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, s.ingestOutput(ctx, doc), nil
}

// handleIngestURL handles the ingest_url tool invocation.
func (s *Server) handleIngestURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestURLInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, ErrIngestUnavailable
	}

	doc, err := s.ports.Ingest.IngestURL(ctx, input.URL)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, s.ingestOutput(ctx, doc), nil
}

func (s *Server) ingestOutput(ctx context.Context, doc *domain.Document) IngestOutput {
	output := IngestOutput{Document: toDocumentOutput(doc)}
	if chunks, err := s.ports.Notebook.Chunks(ctx, doc.ID); err == nil {
		output.Chunks = len(chunks)
	}
	return output
}

func toChunkOutputs(chunks []domain.ScoredChunk) []ChunkOutput {
	out := make([]ChunkOutput, len(chunks))
	for i := range chunks {
		out[i] = ChunkOutput{
			ChunkID:      chunks[i].ID,
			DocumentID:   chunks[i].DocumentID,
			DocumentName: chunks[i].DocumentName,
			Ordinal:      chunks[i].Ordinal,
			Score:        chunks[i].Score,
			Text:         chunks[i].Text,
		}
	}
	return out
}

func toDocumentOutput(doc *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:    doc.ID,
		Name:  doc.DisplayName(),
		Kind:  doc.Kind.String(),
		URI:   doc.URI,
		State: doc.State.String(),
		Error: doc.Error,
	}
}
