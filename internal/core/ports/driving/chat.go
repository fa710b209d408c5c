package driving

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// ChatService answers questions from the notebook and keeps the history.
type ChatService interface {
	// Ask retrieves evidence, generates an answer and records both turns.
	Ask(ctx context.Context, query string, opts domain.AskOptions) (*domain.Answer, error)

	// History returns recorded messages oldest-first.
	// A positive limit keeps only the most recent messages.
	History(ctx context.Context, limit int) ([]domain.Message, error)

	// ClearHistory deletes all recorded messages.
	ClearHistory(ctx context.Context) error
}
