// Package plaintext provides the fallback extractor for plain text and source code.
package plaintext

import (
	"context"
	"maps"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/x-go",
		"text/x-python",
		"text/x-rust",
		"text/x-java",
		"text/x-c",
		"text/x-ruby",
		"text/x-shellscript",
		"text/x-sql",
		"text/csv",
		"text/yaml",
		"text/toml",
		"text/javascript",
		"text/typescript",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5
}

// Extract returns the content as text. Invalid UTF-8 sequences are
// replaced so the result is always indexable.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawSource) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.NewExtractionError("", domain.ErrInvalidInput)
	}

	metadata := maps.Clone(raw.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}
	metadata["mime_type"] = raw.MIMEType
	metadata["format"] = "text"

	return &domain.Extraction{
		Title:    titleFromMetadataOrURI(raw),
		Text:     strings.ToValidUTF8(string(raw.Content), "�"),
		Metadata: metadata,
	}, nil
}

// titleFromMetadataOrURI prefers an explicit title over the file name.
func titleFromMetadataOrURI(raw *domain.RawSource) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}
	if raw.Name != "" {
		return raw.Name
	}
	return TitleFromURI(raw.URI)
}

// TitleFromURI derives a human-readable title from a path or URL.
func TitleFromURI(uri string) string {
	filename := filepath.Base(uri)
	if filename == "." || filename == "/" {
		return ""
	}

	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
