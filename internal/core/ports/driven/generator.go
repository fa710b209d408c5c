package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// AnswerGenerator phrases an answer from retrieved evidence.
// It never performs retrieval itself.
type AnswerGenerator interface {
	// Name identifies the generator in logs.
	Name() string

	// Generate builds an answer to query from rc.
	Generate(ctx context.Context, query string, rc *domain.RetrievalContext) (*domain.Answer, error)
}
