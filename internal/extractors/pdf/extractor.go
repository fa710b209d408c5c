// Package pdf provides an extractor for the text layer of PDF documents.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrNoText is returned for PDFs without an extractable text layer,
// such as scanned images.
var ErrNoText = errors.New("no text extracted from pdf")

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract reads the plain text of every page.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawSource) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.NewExtractionError("", domain.ErrInvalidInput)
	}

	text, pages, err := readText(raw.Content)
	if err != nil {
		return nil, domain.NewExtractionError(raw.URI, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewExtractionError(raw.URI, ErrNoText)
	}

	metadata := maps.Clone(raw.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}
	metadata["mime_type"] = raw.MIMEType
	metadata["format"] = "pdf"
	metadata["pages"] = pages

	title := raw.Name
	if title == "" {
		title = plaintext.TitleFromURI(raw.URI)
	}

	return &domain.Extraction{
		Title:    title,
		Text:     strings.ToValidUTF8(text, "�"),
		Metadata: metadata,
	}, nil
}

// readText parses content and returns its plain text and page count.
// The parser panics on some malformed files; that is reported as an error.
func readText(content []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("reading pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, fmt.Errorf("reading pdf buffer: %w", err)
	}

	return buf.String(), reader.NumPage(), nil
}
