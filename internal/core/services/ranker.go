package services

import (
	"slices"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ranker scores chunks against a query and assembles budgeted contexts.
// It is stateless: every call works on the chunk set it is given.
type Ranker struct {
	scorer driven.Scorer
}

// NewRanker creates a ranker using scorer for relevance.
func NewRanker(scorer driven.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Search scores every chunk, drops those scoring zero and returns the top
// topK by descending score. Equal scores keep their order in chunks.
// A non-positive topK means domain.DefaultSearchTopK.
func (r *Ranker) Search(query string, chunks []domain.Chunk, topK int) []domain.ScoredChunk {
	if topK <= 0 {
		topK = domain.DefaultSearchTopK
	}

	results := make([]domain.ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		if score := r.scorer.Score(query, c); score > 0 {
			results = append(results, domain.ScoredChunk{Chunk: c, Score: score})
		}
	}

	slices.SortStableFunc(results, func(a, b domain.ScoredChunk) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	logger.Debug("Scored %d chunks with %s: %d matched", len(chunks), r.scorer.Name(), len(results))

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// BuildContext ranks chunks and walks the top topK in order, including
// whole chunks until the next one would push the word count past budget.
// The first ranked chunk is always included, even when it alone exceeds
// the budget. Non-positive topK and budget take the package defaults.
func (r *Ranker) BuildContext(query string, chunks []domain.Chunk, topK, budget int) *domain.RetrievalContext {
	if topK <= 0 {
		topK = domain.DefaultContextTopK
	}
	if budget <= 0 {
		budget = domain.DefaultTokenBudget
	}

	ranked := r.Search(query, chunks, topK)
	if len(ranked) == 0 {
		return domain.EmptyContext()
	}

	rc := domain.EmptyContext()
	seen := make(map[string]bool)

	for i, sc := range ranked {
		if i > 0 && rc.TokenCount+sc.WordCount > budget {
			logger.Debug("Budget reached at rank %d (%d + %d > %d)", i, rc.TokenCount, sc.WordCount, budget)
			break
		}

		rc.Chunks = append(rc.Chunks, sc)
		rc.TokenCount += sc.WordCount

		if !seen[sc.DocumentID] {
			seen[sc.DocumentID] = true
			rc.Documents = append(rc.Documents, sc.Ref())
		}
	}

	logger.Debug("Context: %d chunks from %d documents, %d/%d tokens",
		len(rc.Chunks), len(rc.Documents), rc.TokenCount, budget)

	return rc
}
