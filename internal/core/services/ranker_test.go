package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/scorers/lexical"
)

// fixedScorer implements driven.Scorer with a score per chunk ID.
type fixedScorer map[string]float64

func (f fixedScorer) Name() string { return "fixed" }

func (f fixedScorer) Score(_ string, c domain.Chunk) float64 { return f[c.ID] }

func testChunk(docID string, ordinal, words int) domain.Chunk {
	return domain.Chunk{
		ID:           domain.ChunkID(docID, ordinal),
		DocumentID:   docID,
		DocumentName: "Doc " + docID,
		Ordinal:      ordinal,
		WordCount:    words,
	}
}

func chunkIDs(scored []domain.ScoredChunk) []string {
	ids := make([]string, len(scored))
	for i, sc := range scored {
		ids[i] = sc.ID
	}
	return ids
}

func TestRanker_Search_OrdersByScore(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 5), testChunk("a", 1, 5), testChunk("b", 0, 5)}
	r := NewRanker(fixedScorer{"a-chunk-0": 1, "a-chunk-1": 7, "b-chunk-0": 3})

	results := r.Search("q", chunks, 10)

	assert.Equal(t, []string{"a-chunk-1", "b-chunk-0", "a-chunk-0"}, chunkIDs(results))
	assert.Equal(t, 7.0, results[0].Score)
}

func TestRanker_Search_DropsZeroScores(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 5), testChunk("a", 1, 5)}
	r := NewRanker(fixedScorer{"a-chunk-1": 2})

	results := r.Search("q", chunks, 10)

	assert.Equal(t, []string{"a-chunk-1"}, chunkIDs(results))
}

func TestRanker_Search_TiesKeepSnapshotOrder(t *testing.T) {
	chunks := []domain.Chunk{testChunk("b", 0, 5), testChunk("a", 0, 5), testChunk("a", 2, 5)}
	r := NewRanker(fixedScorer{"b-chunk-0": 4, "a-chunk-0": 4, "a-chunk-2": 4})

	results := r.Search("q", chunks, 10)

	assert.Equal(t, []string{"b-chunk-0", "a-chunk-0", "a-chunk-2"}, chunkIDs(results))
}

func TestRanker_Search_TopK(t *testing.T) {
	var chunks []domain.Chunk
	scores := fixedScorer{}
	for i := range 8 {
		c := testChunk("a", i, 5)
		chunks = append(chunks, c)
		scores[c.ID] = float64(i + 1)
	}
	r := NewRanker(scores)

	assert.Len(t, r.Search("q", chunks, 3), 3)
	assert.Len(t, r.Search("q", chunks, 0), domain.DefaultSearchTopK)
	assert.Len(t, r.Search("q", chunks, 100), 8)
}

func TestRanker_Search_Empty(t *testing.T) {
	r := NewRanker(fixedScorer{})

	results := r.Search("q", nil, 5)
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRanker_Search_ExactPhraseDominates(t *testing.T) {
	verbatim := domain.Chunk{ID: "v", DocumentID: "d1", Text: "the quick brown fox"}
	partial := domain.Chunk{ID: "p", DocumentID: "d2", Text: "brown dogs are quick, quick and brown"}

	results := NewRanker(lexical.New()).Search("quick brown", []domain.Chunk{partial, verbatim}, 5)

	require.Len(t, results, 2)
	assert.Equal(t, "v", results[0].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRanker_BuildContext_RespectsBudget(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 5), testChunk("a", 1, 5), testChunk("b", 0, 5)}
	r := NewRanker(fixedScorer{"a-chunk-0": 3, "a-chunk-1": 2, "b-chunk-0": 1})

	rc := r.BuildContext("q", chunks, 8, 12)

	assert.Equal(t, []string{"a-chunk-0", "a-chunk-1"}, chunkIDs(rc.Chunks))
	assert.Equal(t, 10, rc.TokenCount)
	assert.LessOrEqual(t, rc.TokenCount, 12)
}

func TestRanker_BuildContext_BudgetIsInclusive(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 6), testChunk("a", 1, 6)}
	r := NewRanker(fixedScorer{"a-chunk-0": 2, "a-chunk-1": 1})

	rc := r.BuildContext("q", chunks, 8, 12)

	assert.Len(t, rc.Chunks, 2)
	assert.Equal(t, 12, rc.TokenCount)
}

func TestRanker_BuildContext_OversizedFirstChunk(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 50), testChunk("b", 0, 2)}
	r := NewRanker(fixedScorer{"a-chunk-0": 9, "b-chunk-0": 1})

	rc := r.BuildContext("q", chunks, 8, 10)

	assert.Equal(t, []string{"a-chunk-0"}, chunkIDs(rc.Chunks))
	assert.Equal(t, 50, rc.TokenCount)
	assert.Equal(t, []domain.DocumentRef{{ID: "a", Name: "Doc a"}}, rc.Documents)
}

func TestRanker_BuildContext_StopsAtFirstOverflow(t *testing.T) {
	// The third chunk would fit, but walking stops at the second.
	chunks := []domain.Chunk{testChunk("a", 0, 5), testChunk("a", 1, 20), testChunk("a", 2, 1)}
	r := NewRanker(fixedScorer{"a-chunk-0": 3, "a-chunk-1": 2, "a-chunk-2": 1})

	rc := r.BuildContext("q", chunks, 8, 10)

	assert.Equal(t, []string{"a-chunk-0"}, chunkIDs(rc.Chunks))
	assert.Equal(t, 5, rc.TokenCount)
}

func TestRanker_BuildContext_DistinctDocumentsInRankOrder(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 1), testChunk("b", 0, 1), testChunk("a", 1, 1), testChunk("c", 0, 1)}
	r := NewRanker(fixedScorer{"b-chunk-0": 9, "a-chunk-1": 8, "a-chunk-0": 7, "c-chunk-0": 6})

	rc := r.BuildContext("q", chunks, 8, 100)

	assert.Equal(t, []domain.DocumentRef{
		{ID: "b", Name: "Doc b"},
		{ID: "a", Name: "Doc a"},
		{ID: "c", Name: "Doc c"},
	}, rc.Documents)
	assert.Equal(t, 4, rc.TokenCount)
}

func TestRanker_BuildContext_TopK(t *testing.T) {
	chunks := []domain.Chunk{testChunk("a", 0, 1), testChunk("a", 1, 1), testChunk("a", 2, 1)}
	r := NewRanker(fixedScorer{"a-chunk-0": 1, "a-chunk-1": 1, "a-chunk-2": 1})

	assert.Len(t, r.BuildContext("q", chunks, 2, 100).Chunks, 2)
	assert.Len(t, r.BuildContext("q", chunks, 0, 0).Chunks, 3)
}

func TestRanker_BuildContext_NoMatches(t *testing.T) {
	r := NewRanker(fixedScorer{})

	rc := r.BuildContext("q", []domain.Chunk{testChunk("a", 0, 5)}, 8, 100)

	assert.True(t, rc.IsEmpty())
	assert.Equal(t, []domain.ScoredChunk{}, rc.Chunks)
	assert.Equal(t, []domain.DocumentRef{}, rc.Documents)
	assert.Zero(t, rc.TokenCount)
}
