// Package domain defines the core business entities for the notebook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Ingested content with its extracted text
//   - Chunk: A retrieval unit derived from exactly one document
//   - ScoredChunk: A chunk ranked against one query
//   - RetrievalContext: The token-budgeted evidence returned for a question
//   - RawSource: Opaque bytes awaiting text extraction
//   - Message: One turn of the conversation history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
