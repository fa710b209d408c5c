package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers questions from notebook evidence and records the
// conversation. The conversation store is owned here, separately from
// documents and chunks.
type ChatService struct {
	notebook  driving.NotebookService
	generator driven.AnswerGenerator
	history   driven.ConversationStore
	now       func() time.Time
}

// NewChatService creates a chat service. The history parameter is
// optional (can be nil); without it nothing is recorded.
func NewChatService(
	notebook driving.NotebookService,
	generator driven.AnswerGenerator,
	history driven.ConversationStore,
) *ChatService {
	return &ChatService{
		notebook:  notebook,
		generator: generator,
		history:   history,
		now:       time.Now,
	}
}

// Ask retrieves evidence for query, phrases an answer and records both turns.
func (s *ChatService) Ask(ctx context.Context, query string, opts domain.AskOptions) (*domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no answer generator", domain.ErrNotConfigured)
	}

	asked := s.now()

	rc, err := s.notebook.Ask(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if rc.IsEmpty() {
		logger.Debug("No evidence for %q", query)
	}

	answer, err := s.generator.Generate(ctx, query, rc)
	if err != nil {
		return nil, fmt.Errorf("generate answer with %s: %w", s.generator.Name(), err)
	}

	s.record(ctx, &domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   query,
		CreatedAt: asked,
	})
	s.record(ctx, &domain.Message{
		ID:         uuid.New().String(),
		Role:       domain.RoleAssistant,
		Content:    answer.Content,
		Sources:    answer.Sources,
		Confidence: answer.Confidence,
		CreatedAt:  s.now(),
	})

	return answer, nil
}

// History returns recorded messages oldest-first. A positive limit keeps
// only the most recent messages.
func (s *ChatService) History(ctx context.Context, limit int) ([]domain.Message, error) {
	if s.history == nil {
		return []domain.Message{}, nil
	}

	messages, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if limit > 0 && len(messages) > limit {
		messages = slices.Clone(messages[len(messages)-limit:])
	}
	return messages, nil
}

// ClearHistory deletes all recorded messages.
func (s *ChatService) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// record appends msg to the history. A failure is logged; the answer is
// still returned.
func (s *ChatService) record(ctx context.Context, msg *domain.Message) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, msg); err != nil {
		logger.Warn("Could not record %s message: %v", msg.Role, err)
	}
}
