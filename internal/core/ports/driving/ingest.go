package driving

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// IngestService runs text extraction and then hands the text to the notebook.
type IngestService interface {
	// IngestFile extracts and indexes a local file.
	IngestFile(ctx context.Context, path string) (*domain.Document, error)

	// IngestURL fetches, extracts and indexes a web page.
	IngestURL(ctx context.Context, url string) (*domain.Document, error)

	// IngestText indexes pasted text under name.
	IngestText(ctx context.Context, name, text string) (*domain.Document, error)

	// IngestRaw extracts and indexes raw bytes under id.
	IngestRaw(ctx context.Context, id string, raw *domain.RawSource) (*domain.Document, error)

	// Supports reports whether a file's format can be extracted.
	Supports(path string) bool
}
