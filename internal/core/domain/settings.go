package domain

import (
	"fmt"
	"strings"
)

// ChunkingSettings configures the chunker.
type ChunkingSettings struct {
	// SentencesPerChunk is the window size N.
	SentencesPerChunk int

	// MinChunkLength is the character floor below which windows are dropped.
	MinChunkLength int
}

// RetrievalSettings configures ranking and context assembly.
type RetrievalSettings struct {
	// SearchTopK is the default result count for direct search.
	SearchTopK int

	// ContextTopK is the default ranked chunk count for context building.
	ContextTopK int

	// TokenBudget is the default context size cap in words.
	TokenBudget int
}

// FetchSettings configures the URL fetcher.
type FetchSettings struct {
	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64

	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int
}

// StorageSettings configures persistence.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty means ~/.notebook/data.
	DataDir string
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Chunking  ChunkingSettings
	Retrieval RetrievalSettings
	Fetch     FetchSettings
	Storage   StorageSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			SentencesPerChunk: 3,
			MinChunkLength:    50,
		},
		Retrieval: RetrievalSettings{
			SearchTopK:  DefaultSearchTopK,
			ContextTopK: DefaultContextTopK,
			TokenBudget: DefaultTokenBudget,
		},
		Fetch: FetchSettings{
			RequestsPerSecond: 2,
			TimeoutSeconds:    30,
		},
	}
}

// Validate checks that every numeric setting is usable.
func (s *AppSettings) Validate() error {
	var problems []string
	if s.Chunking.SentencesPerChunk <= 0 {
		problems = append(problems, "chunking.sentences_per_chunk must be positive")
	}
	if s.Chunking.MinChunkLength < 0 {
		problems = append(problems, "chunking.min_chunk_length must not be negative")
	}
	if s.Retrieval.SearchTopK <= 0 {
		problems = append(problems, "retrieval.search_top_k must be positive")
	}
	if s.Retrieval.ContextTopK <= 0 {
		problems = append(problems, "retrieval.context_top_k must be positive")
	}
	if s.Retrieval.TokenBudget <= 0 {
		problems = append(problems, "retrieval.token_budget must be positive")
	}
	if s.Fetch.RequestsPerSecond <= 0 {
		problems = append(problems, "fetch.requests_per_second must be positive")
	}
	if s.Fetch.TimeoutSeconds <= 0 {
		problems = append(problems, "fetch.timeout_seconds must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
