package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

func TestDocumentCmd_Aliases(t *testing.T) {
	assert.Contains(t, documentCmd.Aliases, "documents")
	assert.Contains(t, documentCmd.Aliases, "doc")
}

func TestDocumentCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range documentCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"list", "get", "content", "chunks", "refresh"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestDocumentListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand("document", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "No documents yet.")
}

func TestDocumentListCmd(t *testing.T) {
	svcs := setupTestServices(t)
	doc := ingestAnimals(t, svcs)

	output, err := executeCommand("documents", "list")

	require.NoError(t, err)
	assert.Contains(t, output, doc.ID)
	assert.Contains(t, output, "Name:  Animals")
	assert.Contains(t, output, "Kind:  text")
	assert.Contains(t, output, "State: processed")
	assert.Contains(t, output, "Total: 1 document")
}

func TestDocumentListCmd_ShowsFailures(t *testing.T) {
	setupTestServices(t)
	bad := writeTestFile(t, "data.zzq", "opaque")
	_, _ = executeCommand("ingest", bad)

	output, err := executeCommand("doc", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "State: failed")
	assert.Contains(t, output, "Error:")
}

func TestDocumentGetCmd(t *testing.T) {
	svcs := setupTestServices(t)
	path := writeTestFile(t, "animals.md", "# Animals\n\n"+animals)
	doc, err := svcs.ingest.IngestFile(context.Background(), path)
	require.NoError(t, err)

	output, err := executeCommand("document", "get", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, output, "Document: "+doc.ID)
	assert.Contains(t, output, "Kind:     file")
	assert.Contains(t, output, "URI:      "+doc.URI)
	assert.Contains(t, output, "Chunks:   2")
	assert.Contains(t, output, "Metadata:")
	assert.Contains(t, output, "format:")
}

func TestDocumentGetCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand("document", "get", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentContentCmd(t *testing.T) {
	svcs := setupTestServices(t)
	doc := ingestAnimals(t, svcs)

	output, err := executeCommand("document", "content", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, output, animals)
}

func TestDocumentChunksCmd(t *testing.T) {
	svcs := setupTestServices(t)
	doc := ingestAnimals(t, svcs)

	output, err := executeCommand("document", "chunks", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, output, "#0 sentences 0-1, 7 words")
	assert.Contains(t, output, "#1 sentences 2-3, 7 words")
	assert.Contains(t, output, "Birds can fly. Fish live in water")
}

func TestDocumentChunksCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand("document", "chunks", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRefreshCmd_File(t *testing.T) {
	svcs := setupTestServices(t)
	path := writeTestFile(t, "animals.txt", animals)
	doc, err := svcs.ingest.IngestFile(context.Background(), path)
	require.NoError(t, err)

	output, err := executeCommand("document", "refresh", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, output, "Refreshing document "+doc.ID)
	assert.Contains(t, output, "✓ animals.txt")
}

func TestDocumentRefreshCmd_TextHasNoSource(t *testing.T) {
	svcs := setupTestServices(t)
	doc := ingestAnimals(t, svcs)

	_, err := executeCommand("document", "refresh", doc.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "text documents have no source to refresh from")
}

func TestDeleteCmd(t *testing.T) {
	svcs := setupTestServices(t)
	doc := ingestAnimals(t, svcs)

	output, err := executeCommand("delete", doc.ID, "unknown")

	require.NoError(t, err)
	assert.Contains(t, output, "Deleted "+doc.ID)
	assert.Contains(t, output, "Deleted unknown")

	results, err := svcs.notebook.Search(context.Background(), "mammals", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDeleteCmd_RequiresID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand("delete")

	assert.Error(t, err)
}

func TestStatsCmd(t *testing.T) {
	svcs := setupTestServices(t)
	ingestAnimals(t, svcs)

	output, err := executeCommand("stats")

	require.NoError(t, err)
	assert.Contains(t, output, "[Documents]")
	assert.Contains(t, output, "Processed: 1")
	assert.Contains(t, output, "[Chunks]")
	assert.Contains(t, output, "Total:         2")
	assert.Contains(t, output, "Average words: 7")
}

func TestStatsCmd_JSON(t *testing.T) {
	svcs := setupTestServices(t)
	ingestAnimals(t, svcs)

	output, err := executeCommand("stats", "--json")
	require.NoError(t, err)

	var stats domain.IndexStats
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, 2, stats.TotalChunks)
	assert.Equal(t, 7, stats.AvgChunkWords)
}
