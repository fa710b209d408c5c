package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 3, s.Chunking.SentencesPerChunk)
	assert.Equal(t, 50, s.Chunking.MinChunkLength)
	assert.Equal(t, 5, s.Retrieval.SearchTopK)
	assert.Equal(t, 8, s.Retrieval.ContextTopK)
	assert.Equal(t, 2000, s.Retrieval.TokenBudget)
	assert.Empty(t, s.Storage.DataDir)
	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
		want   string
	}{
		{"zero window", func(s *AppSettings) { s.Chunking.SentencesPerChunk = 0 }, "sentences_per_chunk"},
		{"negative floor", func(s *AppSettings) { s.Chunking.MinChunkLength = -1 }, "min_chunk_length"},
		{"zero search top k", func(s *AppSettings) { s.Retrieval.SearchTopK = 0 }, "search_top_k"},
		{"zero context top k", func(s *AppSettings) { s.Retrieval.ContextTopK = 0 }, "context_top_k"},
		{"zero budget", func(s *AppSettings) { s.Retrieval.TokenBudget = 0 }, "token_budget"},
		{"zero rate", func(s *AppSettings) { s.Fetch.RequestsPerSecond = 0 }, "requests_per_second"},
		{"zero timeout", func(s *AppSettings) { s.Fetch.TimeoutSeconds = 0 }, "timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("zero floor is allowed", func(t *testing.T) {
		s := DefaultAppSettings()
		s.Chunking.MinChunkLength = 0
		assert.NoError(t, s.Validate())
	})
}
