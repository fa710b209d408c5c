// Package chunker provides a sentence-window text chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

// DefaultSentencesPerChunk is the default window size in sentences.
const DefaultSentencesPerChunk = 3

// DefaultMinChunkLength is the default character floor for a chunk.
const DefaultMinChunkLength = 50

// sentenceSeparator joins the sentences of one window.
const sentenceSeparator = ". "

// Processor splits document text into fixed-size sentence windows.
// It implements the PostProcessor interface.
type Processor struct {
	sentencesPerChunk int
	minLength         int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithSentencesPerChunk sets the window size N.
func WithSentencesPerChunk(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.sentencesPerChunk = n
		}
	}
}

// WithMinLength sets the minimum chunk length in characters.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		sentencesPerChunk: DefaultSentencesPerChunk,
		minLength:         DefaultMinChunkLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// SentencesPerChunk returns the configured window size.
func (p *Processor) SentencesPerChunk() int {
	return p.sentencesPerChunk
}

// MinLength returns the configured character floor.
func (p *Processor) MinLength() int {
	return p.minLength
}

// Process splits the document text into chunks.
// Input chunks are ignored; this processor creates new chunks from document text.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	return p.Chunk(doc), nil
}

// Chunk splits doc.Text on sentence-terminal punctuation and groups the
// sentences into windows of N. Windows shorter than the floor are dropped,
// leaving a gap in the ordinals. The result depends only on the input.
func (p *Processor) Chunk(doc *domain.Document) []domain.Chunk {
	if doc == nil || doc.Text == "" {
		// Empty text produces no chunks
		return nil
	}

	sentences := SplitSentences(doc.Text)
	if len(sentences) == 0 {
		return nil
	}

	n := p.sentencesPerChunk
	chunks := make([]domain.Chunk, 0, (len(sentences)+n-1)/n)

	for start := 0; start < len(sentences); start += n {
		end := start + n
		if end > len(sentences) {
			end = len(sentences)
		}

		text := strings.TrimSpace(strings.Join(sentences[start:end], sentenceSeparator))
		if utf8.RuneCountInString(text) < p.minLength {
			continue
		}

		ordinal := start / n
		chunks = append(chunks, domain.Chunk{
			ID:            domain.ChunkID(doc.ID, ordinal),
			DocumentID:    doc.ID,
			DocumentName:  doc.DisplayName(),
			DocumentKind:  doc.Kind,
			Text:          text,
			Ordinal:       ordinal,
			StartSentence: start,
			EndSentence:   end - 1,
			WordCount:     domain.CountWords(text),
		})
	}

	return chunks
}

// SplitSentences splits text on '.', '!' and '?' and returns the trimmed,
// non-empty fragments. Runs of terminators count as one boundary.
func SplitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, isTerminator)

	sentences := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if s := strings.TrimSpace(f); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
