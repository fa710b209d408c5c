package extractors

import (
	"github.com/custodia-labs/notebook-rag/internal/extractors/docx"
	"github.com/custodia-labs/notebook-rag/internal/extractors/html"
	"github.com/custodia-labs/notebook-rag/internal/extractors/markdown"
	"github.com/custodia-labs/notebook-rag/internal/extractors/pdf"
	"github.com/custodia-labs/notebook-rag/internal/extractors/plaintext"
)

// RegisterDefaults registers all built-in extractors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(pdf.New())
	r.Register(docx.New())
}

// NewDefaultRegistry returns a registry with every built-in extractor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
