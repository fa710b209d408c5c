package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// Fetcher retrieves remote content for extraction.
type Fetcher interface {
	// Fetch downloads url and returns its bytes and content type.
	Fetch(ctx context.Context, url string) (*domain.RawSource, error)
}
