package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultTextName names pasted text when the caller gives no name.
const DefaultTextName = "Pasted Text"

// DocumentIDForPath returns the stable document ID of a local file.
// Re-ingesting the same path replaces the same document.
func DocumentIDForPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).String()
}

// DocumentIDForURL returns the stable document ID of a web page.
func DocumentIDForURL(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.TrimSpace(url))).String()
}

// IngestService runs text extraction and hands the text to the notebook.
// Extraction failures are recorded against the document and returned as
// *domain.ExtractionError; they are never retried.
type IngestService struct {
	notebook   driving.NotebookService
	extractors driven.ExtractorRegistry
	fetcher    driven.Fetcher
}

// NewIngestService creates an ingest service.
// The extractors and fetcher parameters are optional (can be nil).
func NewIngestService(
	notebook driving.NotebookService,
	extractors driven.ExtractorRegistry,
	fetcher driven.Fetcher,
) *IngestService {
	return &IngestService{
		notebook:   notebook,
		extractors: extractors,
		fetcher:    fetcher,
	}
}

// IngestFile extracts and indexes a local file.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, abs)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	raw := &domain.RawSource{
		URI:      abs,
		Name:     filepath.Base(abs),
		MIMEType: s.mimeTypeForPath(abs),
		Kind:     domain.KindFile,
		Content:  content,
		Metadata: map[string]any{
			"size":     info.Size(),
			"modified": info.ModTime().UTC().Format(time.RFC3339),
		},
	}

	return s.IngestRaw(ctx, DocumentIDForPath(abs), raw)
}

// IngestURL fetches, extracts and indexes a web page.
func (s *IngestService) IngestURL(ctx context.Context, url string) (*domain.Document, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: url ingestion needs a fetcher", domain.ErrNotConfigured)
	}
	url = strings.TrimSpace(url)
	id := DocumentIDForURL(url)

	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.recordFetchFailure(ctx, &domain.Document{ID: id, Name: url, Kind: domain.KindURL, URI: url}, err)
		return nil, err
	}
	if raw.Kind == "" {
		raw.Kind = domain.KindURL
	}

	return s.IngestRaw(ctx, id, raw)
}

// IngestText indexes pasted text under name.
func (s *IngestService) IngestText(ctx context.Context, name, text string) (*domain.Document, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTextName
	}

	doc := &domain.Document{
		ID:   uuid.New().String(),
		Name: name,
		Text: text,
		Kind: domain.KindText,
	}
	if err := s.notebook.Ingest(ctx, doc); err != nil {
		return nil, err
	}
	return s.notebook.Get(ctx, doc.ID)
}

// IngestRaw extracts and indexes raw bytes under id. A document seen for
// the first time is recorded as pending before extraction starts.
func (s *IngestService) IngestRaw(ctx context.Context, id string, raw *domain.RawSource) (*domain.Document, error) {
	if raw == nil || strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: raw source and id are required", domain.ErrInvalidInput)
	}

	doc := &domain.Document{
		ID:   id,
		Name: raw.Name,
		Kind: raw.Kind,
		URI:  raw.URI,
	}
	if doc.Name == "" {
		doc.Name = raw.URI
	}

	existing, err := s.notebook.Get(ctx, id)
	switch {
	case err == nil:
		doc.IngestedAt = existing.IngestedAt
	case errors.Is(err, domain.ErrNotFound):
		pending := *doc
		pending.State = domain.StatePending
		if err := s.notebook.Record(ctx, &pending); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	logger.Debug("Ingesting %s as %s (%s)", raw.URI, id, raw.MIMEType)

	extraction, err := s.extract(ctx, raw)
	if err != nil {
		s.recordFailure(ctx, doc, err)
		return nil, err
	}

	if extraction.Title != "" {
		doc.Name = extraction.Title
	}
	doc.Text = extraction.Text
	doc.Metadata = maps.Clone(raw.Metadata)
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	maps.Copy(doc.Metadata, extraction.Metadata)

	// A rejected re-ingest leaves the previously indexed version in place.
	if err := s.notebook.Ingest(ctx, doc); err != nil {
		if existing == nil {
			s.recordFailure(ctx, doc, err)
		}
		return nil, err
	}
	return s.notebook.Get(ctx, id)
}

// Supports reports whether a file's format can be extracted.
func (s *IngestService) Supports(path string) bool {
	if s.extractors == nil {
		return false
	}
	return s.extractors.Supports(s.mimeTypeForPath(path))
}

func (s *IngestService) extract(ctx context.Context, raw *domain.RawSource) (*domain.Extraction, error) {
	if s.extractors == nil {
		return nil, domain.NewExtractionError(raw.URI,
			fmt.Errorf("%w: no extractors configured", domain.ErrNotConfigured))
	}

	extraction, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		var extractionErr *domain.ExtractionError
		if errors.As(err, &extractionErr) {
			return nil, err
		}
		return nil, domain.NewExtractionError(raw.URI, err)
	}
	return extraction, nil
}

func (s *IngestService) mimeTypeForPath(path string) string {
	if s.extractors == nil {
		return ""
	}
	return s.extractors.MIMETypeForPath(path)
}

// recordFailure marks doc as failed. The original error is what the caller
// sees; a failure to record it is only logged.
// recordFetchFailure records a page that could not be fetched. A page
// that is already indexed keeps its chunks, since the failure may be
// transient; a retry replaces them.
func (s *IngestService) recordFetchFailure(ctx context.Context, doc *domain.Document, cause error) {
	existing, err := s.notebook.Get(ctx, doc.ID)
	switch {
	case err == nil && existing.State == domain.StateProcessed:
		logger.Warn("Fetch of %s failed, keeping indexed version: %v", doc.URI, cause)
		return
	case err == nil:
		doc.Name = existing.Name
		doc.IngestedAt = existing.IngestedAt
	case !errors.Is(err, domain.ErrNotFound):
		logger.Error("Could not look up %s: %v", doc.ID, err)
	}
	s.recordFailure(ctx, doc, cause)
}

func (s *IngestService) recordFailure(ctx context.Context, doc *domain.Document, cause error) {
	failed := *doc
	failed.Text = ""
	failed.State = domain.StateFailed
	failed.Error = cause.Error()

	if err := s.notebook.Record(ctx, &failed); err != nil {
		logger.Error("Could not record failure of %s: %v", doc.ID, err)
		return
	}
	logger.Warn("Ingestion of %s failed: %v", doc.URI, cause)
}
