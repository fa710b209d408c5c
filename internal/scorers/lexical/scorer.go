// Package lexical provides a deterministic token-overlap relevance scorer.
package lexical

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

// Scoring weights.
const (
	// MinQueryTokenLength is the length a query token must exceed to count.
	MinQueryTokenLength = 2

	// LongTokenLength is the length a query token must exceed to earn LongTokenWeight.
	LongTokenLength = 3

	// LongTokenWeight is added per matching pair for a long query token.
	LongTokenWeight = 2

	// ShortTokenWeight is added per matching pair for a short query token.
	ShortTokenWeight = 1

	// PhraseBonus is added when the chunk contains the whole query.
	PhraseBonus = 10
)

// Scorer ranks chunks by substring overlap between query and chunk words,
// with a flat bonus for a verbatim phrase match.
type Scorer struct{}

// New creates a lexical scorer.
func New() *Scorer {
	return &Scorer{}
}

// Name returns the scorer name.
func (s *Scorer) Name() string {
	return "lexical"
}

// Score returns the relevance of chunk to query. Every pair of query and
// chunk tokens where one contains the other adds a weight, so repeated
// words in the chunk count repeatedly.
func (s *Scorer) Score(query string, chunk domain.Chunk) float64 {
	phrase := strings.ToLower(strings.TrimSpace(query))
	if phrase == "" {
		return 0
	}

	text := strings.ToLower(chunk.Text)
	chunkTokens := strings.Fields(text)

	score := 0
	for _, qt := range QueryTokens(query) {
		weight := ShortTokenWeight
		if utf8.RuneCountInString(qt) > LongTokenLength {
			weight = LongTokenWeight
		}
		for _, ct := range chunkTokens {
			if strings.Contains(ct, qt) || strings.Contains(qt, ct) {
				score += weight
			}
		}
	}

	if strings.Contains(text, phrase) {
		score += PhraseBonus
	}

	return float64(score)
}

// QueryTokens lowercases and splits query on whitespace, discarding
// tokens of MinQueryTokenLength characters or fewer.
func QueryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > MinQueryTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
