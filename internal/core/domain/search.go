package domain

// Retrieval defaults.
const (
	// DefaultSearchTopK is the number of chunks returned by a direct search.
	DefaultSearchTopK = 5

	// DefaultContextTopK is the number of ranked chunks considered for a context.
	DefaultContextTopK = 8

	// DefaultTokenBudget caps the words assembled into one context.
	DefaultTokenBudget = 2000
)

// SearchOptions configures a direct search.
type SearchOptions struct {
	// TopK is the maximum number of results. Zero means DefaultSearchTopK.
	TopK int
}

// AskOptions configures context assembly for a question.
type AskOptions struct {
	// TopK is the number of ranked chunks considered. Zero means the configured default.
	TopK int

	// TokenBudget caps the context size in words. Zero means the configured default.
	TokenBudget int
}

// ScoredChunk is a chunk plus its relevance score for one query.
// Scores are only comparable within a single query's results.
type ScoredChunk struct {
	Chunk

	// Score is the non-negative relevance score.
	Score float64 `json:"score"`
}

// RetrievalContext is the result of asking a question: ranked chunks
// selected under a token budget, the documents that contributed them and
// the number of tokens (words) consumed.
type RetrievalContext struct {
	// Chunks are the included chunks in rank order.
	Chunks []ScoredChunk `json:"chunks"`

	// Documents are the distinct contributing documents in first-seen rank order.
	Documents []DocumentRef `json:"documents"`

	// TokenCount is the cumulative word count of Chunks.
	TokenCount int `json:"token_count"`
}

// EmptyContext returns a context with no evidence.
func EmptyContext() *RetrievalContext {
	return &RetrievalContext{
		Chunks:    []ScoredChunk{},
		Documents: []DocumentRef{},
	}
}

// IsEmpty reports whether the context carries no evidence.
// Callers treat this as "insufficient evidence", not as a failure.
func (c *RetrievalContext) IsEmpty() bool {
	return c == nil || len(c.Chunks) == 0
}

// IndexStats summarises the current notebook.
type IndexStats struct {
	// TotalDocuments is the number of known documents.
	TotalDocuments int `json:"total_documents"`

	// ProcessedDocuments is the number of documents in StateProcessed.
	ProcessedDocuments int `json:"processed_documents"`

	// FailedDocuments is the number of documents in StateFailed.
	FailedDocuments int `json:"failed_documents"`

	// TotalChunks is the number of indexed chunks.
	TotalChunks int `json:"total_chunks"`

	// AvgChunkWords is the rounded mean word count per chunk.
	AvgChunkWords int `json:"avg_chunk_words"`
}
