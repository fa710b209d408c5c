package mcp

import (
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Notebook answers search and context queries and manages documents.
	Notebook driving.NotebookService

	// Ingest extracts and adds new documents.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Notebook == nil {
		return ErrMissingNotebookService
	}
	// Ingest is optional; without it the server is read-mostly.
	return nil
}
