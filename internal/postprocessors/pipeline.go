// Package postprocessors turns document text into chunks. A Pipeline runs
// processors in order; the first creates chunks and later ones refine them.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains PostProcessors and checks that the chunk set they
// produce belongs to the document being processed.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline that runs processors in the order given.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs doc through every processor. The first processor receives
// nil chunks. An empty pipeline yields no chunks.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidDocument)
	}

	var chunks []domain.Chunk
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	if chunks == nil {
		return []domain.Chunk{}, nil
	}
	if err := checkChunks(doc, chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}

// checkChunks rejects chunk sets that would leave orphaned or colliding
// entries in the index.
func checkChunks(doc *domain.Document, chunks []domain.Chunk) error {
	seen := make(map[string]struct{}, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if c.DocumentID != doc.ID {
			return fmt.Errorf("chunk %q belongs to %q, not %q", c.ID, c.DocumentID, doc.ID)
		}
		if c.ID == "" {
			return fmt.Errorf("chunk %d of %q has no id", i, doc.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate chunk id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
