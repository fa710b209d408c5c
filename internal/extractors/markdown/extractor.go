// Package markdown provides an extractor that strips Markdown formatting.
package markdown

import (
	"context"
	"maps"
	"regexp"
	"strings"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the document text with Markdown syntax removed.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawSource) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.NewExtractionError("", domain.ErrInvalidInput)
	}

	content := strings.ToValidUTF8(string(raw.Content), "�")

	metadata := maps.Clone(raw.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}
	metadata["mime_type"] = raw.MIMEType
	metadata["format"] = "markdown"

	return &domain.Extraction{
		Title:    extractTitle(content, raw),
		Text:     StripMarkdown(content),
		Metadata: metadata,
	}, nil
}

// extractTitle returns the first H1 heading, then the source name,
// then a title derived from the URI.
func extractTitle(content string, raw *domain.RawSource) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	if raw.Name != "" {
		return raw.Name
	}
	return plaintext.TitleFromURI(raw.URI)
}

// Pre-compiled patterns, applied in order.
var (
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	blockquote   = regexp.MustCompile(`(?m)^>[ \t]*`)
	hr           = regexp.MustCompile(`(?m)^[-*_]{3,}[ \t]*$`)
	listMarkers  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedList = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	strong       = regexp.MustCompile(`(\*\*|__)([^*_\n]+)(\*\*|__)`)
	italic       = regexp.MustCompile(`\*([^*\n]+)\*`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown removes common Markdown formatting, keeping readable text.
// Fenced code is dropped; inline code keeps its content.
func StripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = strong.ReplaceAllString(content, "$2")
	content = italic.ReplaceAllString(content, "$1")
	content = multiNewline.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
