package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of driven.ConversationStore.
type ConversationStore struct {
	mu       sync.RWMutex
	messages []domain.Message
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// Append records a message.
func (s *ConversationStore) Append(_ context.Context, msg *domain.Message) error {
	if msg == nil {
		return domain.ErrInvalidInput
	}
	stored := *msg
	stored.Sources = slices.Clone(msg.Sources)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, stored)
	return nil
}

// List returns messages oldest-first.
func (s *ConversationStore) List(_ context.Context) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Message, len(s.messages))
	copy(result, s.messages)
	return result, nil
}

// Clear deletes all messages.
func (s *ConversationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}
