package driven

import "github.com/custodia-labs/notebook-rag/internal/core/domain"

// Scorer measures the relevance of a chunk to a query.
// Swapping implementations (lexical, embedding-based) leaves indexing and
// context assembly untouched.
type Scorer interface {
	// Name identifies the scorer in logs.
	Name() string

	// Score returns a non-negative relevance score. Zero means no evidence.
	Score(query string, chunk domain.Chunk) float64
}
