// Package mcp provides an MCP (Model Context Protocol) server adapter for the notebook.
// It lets AI assistants search the notebook, pull token-budgeted context
// for a question and manage documents.
package mcp

import "errors"

// ErrMissingNotebookService is returned when the notebook service is not provided.
var ErrMissingNotebookService = errors.New("mcp: notebook service is required")

// ErrIngestUnavailable is returned by ingest tools when no ingest service is configured.
var ErrIngestUnavailable = errors.New("mcp: ingestion is not available")
