package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the highest-priority extractor for a MIME type.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Extractor),
	}
}

// Register adds an extractor for each MIME type it supports.
// Among extractors of equal priority the first registered wins.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range extractor.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mimeType] = list
	}
}

// Extract runs the best extractor for raw.MIMEType.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawSource) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.NewExtractionError("", domain.ErrInvalidInput)
	}

	extractor := r.lookup(raw.MIMEType)
	if extractor == nil {
		return nil, domain.NewExtractionError(raw.URI,
			fmt.Errorf("%w: %q", domain.ErrUnsupportedType, raw.MIMEType))
	}

	logger.Debug("Extracting %s (%s, %d bytes)", raw.URI, raw.MIMEType, len(raw.Content))
	return extractor.Extract(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be extracted, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// Supports reports whether mimeType has an extractor.
func (r *Registry) Supports(mimeType string) bool {
	return r.lookup(mimeType) != nil
}

// MIMETypeForPath guesses a MIME type from a file extension.
func (r *Registry) MIMETypeForPath(path string) string {
	return MIMETypeForPath(path)
}

func (r *Registry) lookup(mimeType string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list := r.byMIME[mimeType]; len(list) > 0 {
		return list[0]
	}
	return nil
}
