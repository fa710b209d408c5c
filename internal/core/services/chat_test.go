package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/answer/template"
	"github.com/custodia-labs/notebook-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// stubGenerator echoes how much evidence it was given.
type stubGenerator struct {
	err     error
	queries []string
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(_ context.Context, query string, rc *domain.RetrievalContext) (*domain.Answer, error) {
	g.queries = append(g.queries, query)
	if g.err != nil {
		return nil, g.err
	}
	return &domain.Answer{
		Content:    "answer to " + query,
		Sources:    rc.Documents,
		Confidence: 0.5,
		UsedChunks: len(rc.Chunks),
	}, nil
}

// failingHistory rejects every append.
type failingHistory struct {
	*memory.ConversationStore
}

func (failingHistory) Append(context.Context, *domain.Message) error {
	return errors.New("history unavailable")
}

func newTestChat(t *testing.T) (*ChatService, *NotebookService, *stubGenerator) {
	t.Helper()
	notebook, _ := newTestNotebook(t)
	gen := &stubGenerator{}
	return NewChatService(notebook, gen, memory.NewConversationStore()), notebook, gen
}

func TestChatService_Ask(t *testing.T) {
	chat, notebook, gen := newTestChat(t)
	ctx := context.Background()
	require.NoError(t, notebook.Ingest(ctx, &domain.Document{ID: "d1", Name: "Animals", Text: animals}))

	answer, err := chat.Ask(ctx, "  mammals  ", domain.AskOptions{})

	require.NoError(t, err)
	assert.Equal(t, "answer to mammals", answer.Content)
	assert.Equal(t, 1, answer.UsedChunks)
	assert.Equal(t, []domain.DocumentRef{{ID: "d1", Name: "Animals"}}, answer.Sources)
	assert.Equal(t, []string{"mammals"}, gen.queries)
}

func TestChatService_Ask_RecordsHistory(t *testing.T) {
	chat, notebook, _ := newTestChat(t)
	ctx := context.Background()
	require.NoError(t, notebook.Ingest(ctx, &domain.Document{ID: "d1", Name: "Animals", Text: animals}))

	_, err := chat.Ask(ctx, "mammals", domain.AskOptions{})
	require.NoError(t, err)

	history, err := chat.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "mammals", history[0].Content)
	assert.NotEmpty(t, history[0].ID)

	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "answer to mammals", history[1].Content)
	assert.Equal(t, 0.5, history[1].Confidence)
	assert.Len(t, history[1].Sources, 1)
	assert.NotEqual(t, history[0].ID, history[1].ID)
	assert.False(t, history[1].CreatedAt.Before(history[0].CreatedAt))
}

func TestChatService_Ask_NoEvidence(t *testing.T) {
	chat, _, gen := newTestChat(t)

	answer, err := chat.Ask(context.Background(), "mammals", domain.AskOptions{})

	require.NoError(t, err)
	assert.Zero(t, answer.UsedChunks)
	assert.Empty(t, answer.Sources)
	assert.Len(t, gen.queries, 1)
}

func TestChatService_Ask_WithTemplateGenerator(t *testing.T) {
	notebook, _ := newTestNotebook(t)
	chat := NewChatService(notebook, template.New(nil), nil)
	ctx := context.Background()

	empty, err := chat.Ask(ctx, "What are mammals?", domain.AskOptions{})
	require.NoError(t, err)
	assert.Zero(t, empty.Confidence)
	assert.Empty(t, empty.Sources)

	require.NoError(t, notebook.Ingest(ctx, &domain.Document{ID: "d1", Name: "Animals", Text: animals}))

	answer, err := chat.Ask(ctx, "What are mammals?", domain.AskOptions{})
	require.NoError(t, err)
	assert.Contains(t, answer.Content, "Cats are mammals")
	assert.Greater(t, answer.Confidence, 0.0)
	assert.Equal(t, "d1", answer.Sources[0].ID)
}

func TestChatService_Ask_Errors(t *testing.T) {
	notebook, _ := newTestNotebook(t)
	ctx := context.Background()

	t.Run("empty question", func(t *testing.T) {
		chat := NewChatService(notebook, &stubGenerator{}, nil)
		_, err := chat.Ask(ctx, " \n", domain.AskOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no generator", func(t *testing.T) {
		chat := NewChatService(notebook, nil, nil)
		_, err := chat.Ask(ctx, "mammals", domain.AskOptions{})
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
	})

	t.Run("generator fails", func(t *testing.T) {
		history := memory.NewConversationStore()
		chat := NewChatService(notebook, &stubGenerator{err: errors.New("boom")}, history)

		_, err := chat.Ask(ctx, "mammals", domain.AskOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stub")
		assert.Contains(t, err.Error(), "boom")
		messages, listErr := history.List(ctx)
		require.NoError(t, listErr)
		assert.Empty(t, messages)
	})
}

func TestChatService_Ask_HistoryFailureStillAnswers(t *testing.T) {
	notebook, _ := newTestNotebook(t)
	chat := NewChatService(notebook, &stubGenerator{}, failingHistory{memory.NewConversationStore()})

	answer, err := chat.Ask(context.Background(), "mammals", domain.AskOptions{})

	require.NoError(t, err)
	assert.Equal(t, "answer to mammals", answer.Content)
}

func TestChatService_History_Limit(t *testing.T) {
	chat, _, _ := newTestChat(t)
	ctx := context.Background()
	for _, q := range []string{"cats", "dogs", "birds"} {
		_, err := chat.Ask(ctx, q, domain.AskOptions{})
		require.NoError(t, err)
	}

	all, err := chat.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	last, err := chat.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "birds", last[0].Content)
	assert.Equal(t, "answer to birds", last[1].Content)

	more, err := chat.History(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, more, 6)
}

func TestChatService_ClearHistory(t *testing.T) {
	chat, _, _ := newTestChat(t)
	ctx := context.Background()
	_, err := chat.Ask(ctx, "cats", domain.AskOptions{})
	require.NoError(t, err)

	require.NoError(t, chat.ClearHistory(ctx))

	history, err := chat.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatService_NilHistory(t *testing.T) {
	notebook, _ := newTestNotebook(t)
	chat := NewChatService(notebook, &stubGenerator{}, nil)
	ctx := context.Background()

	_, err := chat.Ask(ctx, "cats", domain.AskOptions{})
	require.NoError(t, err)

	history, err := chat.History(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
	assert.NoError(t, chat.ClearHistory(ctx))
}
