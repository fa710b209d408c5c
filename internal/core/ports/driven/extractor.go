package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// Extractor turns raw bytes of a given format into plain text.
// Each extractor handles specific MIME types (e.g., PDF, Markdown).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the text of raw. Failures are *domain.ExtractionError.
	Extract(ctx context.Context, raw *domain.RawSource) (*domain.Extraction, error)
}

// ExtractorRegistry selects the appropriate extractor for a source.
type ExtractorRegistry interface {
	// Extract transforms raw using the best matching extractor.
	Extract(ctx context.Context, raw *domain.RawSource) (*domain.Extraction, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string

	// Supports reports whether mimeType can be extracted.
	Supports(mimeType string) bool

	// MIMETypeForPath guesses a MIME type from a file name.
	// Unknown extensions return "".
	MIMETypeForPath(path string) string
}
