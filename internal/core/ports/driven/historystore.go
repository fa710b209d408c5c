package driven

import (
	"context"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// ConversationStore persists chat history.
type ConversationStore interface {
	// Append records a message.
	Append(ctx context.Context, msg *domain.Message) error

	// List returns messages oldest-first.
	List(ctx context.Context) ([]domain.Message, error)

	// Clear deletes all messages.
	Clear(ctx context.Context) error
}
