package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/extractors"
)

// stubFetcher serves a fixed page or error for any URL.
type stubFetcher struct {
	mimeType string
	content  string
	err      error
	calls    int
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*domain.RawSource, error) {
	f.calls++
	if f.err != nil {
		return nil, domain.NewExtractionError(url, f.err)
	}
	return &domain.RawSource{
		URI:      url,
		Name:     url,
		MIMEType: f.mimeType,
		Content:  []byte(f.content),
		Metadata: map[string]any{"status_code": 200},
	}, nil
}

func newTestIngest(t *testing.T, fetcher *stubFetcher) (*IngestService, *NotebookService) {
	t.Helper()
	notebook, _ := newTestNotebook(t)
	if fetcher == nil {
		return NewIngestService(notebook, extractors.NewDefaultRegistry(), nil), notebook
	}
	return NewIngestService(notebook, extractors.NewDefaultRegistry(), fetcher), notebook
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDocumentIDForPath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "notes.txt")

	assert.Equal(t, DocumentIDForPath(abs), DocumentIDForPath(abs))
	assert.NotEqual(t, DocumentIDForPath(abs), DocumentIDForPath(filepath.Join(dir, "other.txt")))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, DocumentIDForPath(filepath.Join(wd, "notes.txt")), DocumentIDForPath("notes.txt"))
}

func TestDocumentIDForURL(t *testing.T) {
	assert.Equal(t, DocumentIDForURL("https://example.com/a"), DocumentIDForURL(" https://example.com/a "))
	assert.NotEqual(t, DocumentIDForURL("https://example.com/a"), DocumentIDForURL("https://example.com/b"))
	assert.NotEqual(t, DocumentIDForURL("https://example.com/a"), DocumentIDForPath("https://example.com/a"))
}

func TestIngestService_IngestFile(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	path := writeFile(t, t.TempDir(), "animals.txt", animals)

	doc, err := svc.IngestFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, DocumentIDForPath(path), doc.ID)
	assert.Equal(t, "animals.txt", doc.Name)
	assert.Equal(t, domain.KindFile, doc.Kind)
	assert.Equal(t, path, doc.URI)
	assert.Equal(t, domain.StateProcessed, doc.State)
	assert.Equal(t, animals, doc.Text)
	assert.EqualValues(t, len(animals), doc.Metadata["size"])
	assert.Equal(t, "text", doc.Metadata["format"])

	results, err := notebook.Search(context.Background(), "mammals", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, doc.ID, results[0].DocumentID)
}

func TestIngestService_IngestFile_MarkdownTitle(t *testing.T) {
	svc, _ := newTestIngest(t, nil)
	path := writeFile(t, t.TempDir(), "zoo.md", "# Animals\n\n"+animals)

	doc, err := svc.IngestFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Animals", doc.Name)
}

func TestIngestService_IngestFile_ReingestReplaces(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "animals.txt", animals)

	first, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("Reptiles are cold blooded animals."), 0o600))
	second, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.IngestedAt, second.IngestedAt)

	docs, err := notebook.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	results, err := notebook.Search(ctx, "mammals", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIngestService_IngestFile_Directory(t *testing.T) {
	svc, _ := newTestIngest(t, nil)

	_, err := svc.IngestFile(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_IngestFile_Missing(t *testing.T) {
	svc, _ := newTestIngest(t, nil)

	_, err := svc.IngestFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIngestService_IngestFile_UnsupportedType(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "blob.zzq", "opaque")

	_, err := svc.IngestFile(ctx, path)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	doc, err := notebook.Get(ctx, DocumentIDForPath(path))
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailed, doc.State)
	assert.Contains(t, doc.Error, "unsupported type")
}

func TestIngestService_IngestFile_MalformedPDF(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "broken.pdf", "this is not a pdf")

	_, err := svc.IngestFile(ctx, path)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)

	stats, err := notebook.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FailedDocuments)
	assert.Zero(t, stats.TotalChunks)
}

func TestIngestService_IngestURL(t *testing.T) {
	fetcher := &stubFetcher{
		mimeType: "text/html",
		content:  "<html><head><title>Animals</title></head><body><p>" + animals + "</p></body></html>",
	}
	svc, notebook := newTestIngest(t, fetcher)
	ctx := context.Background()
	url := "https://example.com/animals"

	doc, err := svc.IngestURL(ctx, url)

	require.NoError(t, err)
	assert.Equal(t, DocumentIDForURL(url), doc.ID)
	assert.Equal(t, "Animals", doc.Name)
	assert.Equal(t, domain.KindURL, doc.Kind)
	assert.Equal(t, url, doc.URI)
	assert.Equal(t, 200, doc.Metadata["status_code"])
	assert.Equal(t, 1, fetcher.calls)

	rc, err := notebook.Ask(ctx, "mammals", domain.AskOptions{})
	require.NoError(t, err)
	require.Len(t, rc.Documents, 1)
	assert.Equal(t, "Animals", rc.Documents[0].Name)
	assert.Equal(t, domain.KindURL, rc.Documents[0].Kind)
}

func TestIngestService_IngestURL_FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("unexpected status 404")}
	svc, notebook := newTestIngest(t, fetcher)
	ctx := context.Background()
	url := "https://example.com/missing"

	_, err := svc.IngestURL(ctx, url)

	require.Error(t, err)
	doc, getErr := notebook.Get(ctx, DocumentIDForURL(url))
	require.NoError(t, getErr)
	assert.Equal(t, domain.StateFailed, doc.State)
	assert.Contains(t, doc.Error, "404")
}

func TestIngestService_IngestURL_FetchErrorKeepsIndexedPage(t *testing.T) {
	fetcher := &stubFetcher{
		mimeType: "text/html",
		content:  "<html><head><title>Animals</title></head><body><p>" + animals + "</p></body></html>",
	}
	svc, notebook := newTestIngest(t, fetcher)
	ctx := context.Background()
	url := "https://example.com/animals"

	first, err := svc.IngestURL(ctx, url)
	require.NoError(t, err)

	notebook.now = func() time.Time { return first.IngestedAt.Add(time.Hour) }
	fetcher.err = errors.New("connection reset")

	_, err = svc.IngestURL(ctx, url)
	require.Error(t, err)

	doc, err := notebook.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateProcessed, doc.State)
	assert.Empty(t, doc.Error)
	assert.True(t, first.IngestedAt.Equal(doc.IngestedAt))

	chunks, err := notebook.Chunks(ctx, first.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}

func TestIngestService_IngestURL_RepeatedFetchErrorKeepsIngestedAt(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("unexpected status 503")}
	svc, notebook := newTestIngest(t, fetcher)
	ctx := context.Background()
	url := "https://example.com/flaky"

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	notebook.now = func() time.Time { return start }
	_, err := svc.IngestURL(ctx, url)
	require.Error(t, err)

	notebook.now = func() time.Time { return start.Add(time.Hour) }
	_, err = svc.IngestURL(ctx, url)
	require.Error(t, err)

	doc, err := notebook.Get(ctx, DocumentIDForURL(url))
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailed, doc.State)
	assert.True(t, start.Equal(doc.IngestedAt), "got %s", doc.IngestedAt)
}

func TestIngestService_IngestURL_NoFetcher(t *testing.T) {
	svc, _ := newTestIngest(t, nil)

	_, err := svc.IngestURL(context.Background(), "https://example.com")

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestIngestService_IngestText(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	ctx := context.Background()

	doc, err := svc.IngestText(ctx, "Animals", animals)
	require.NoError(t, err)
	assert.Equal(t, "Animals", doc.Name)
	assert.Equal(t, domain.KindText, doc.Kind)
	assert.NotEmpty(t, doc.ID)

	unnamed, err := svc.IngestText(ctx, "  ", animals)
	require.NoError(t, err)
	assert.Equal(t, DefaultTextName, unnamed.Name)
	assert.NotEqual(t, doc.ID, unnamed.ID)

	results, err := notebook.Search(ctx, "mammals", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestIngestService_IngestText_Invalid(t *testing.T) {
	svc, notebook := newTestIngest(t, nil)
	ctx := context.Background()

	_, err := svc.IngestText(ctx, "Bad", string([]byte{0xff}))

	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	docs, err := notebook.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestService_IngestRaw_Validation(t *testing.T) {
	svc, _ := newTestIngest(t, nil)
	ctx := context.Background()

	_, err := svc.IngestRaw(ctx, "id", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.IngestRaw(ctx, " ", &domain.RawSource{MIMEType: "text/plain"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_IngestRaw_NoExtractors(t *testing.T) {
	notebook, _ := newTestNotebook(t)
	svc := NewIngestService(notebook, nil, nil)

	_, err := svc.IngestRaw(context.Background(), "r1", &domain.RawSource{URI: "mem://r1", MIMEType: "text/plain"})

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.False(t, svc.Supports("notes.txt"))
}

func TestIngestService_Supports(t *testing.T) {
	svc, _ := newTestIngest(t, nil)

	assert.True(t, svc.Supports("notes.txt"))
	assert.True(t, svc.Supports("README.md"))
	assert.True(t, svc.Supports("page.html"))
	assert.True(t, svc.Supports("paper.pdf"))
	assert.True(t, svc.Supports("report.docx"))
	assert.False(t, svc.Supports("blob.zzq"))
	assert.False(t, svc.Supports("Makefile"))
}
