// Package template provides an AnswerGenerator that phrases answers by
// filling user-editable templates with retrieved passages. It performs no
// model inference.
package template

import (
	"context"
	"fmt"
	"maps"
	"math"
	"strings"
	gotemplate "text/template"
	"unicode/utf8"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// Confidence heuristic: base plus a step per passage, capped.
const (
	BaseConfidence = 0.3
	ConfidenceStep = 0.15
	MaxConfidence  = 0.95
)

//nolint:lll // Template content is intentionally long and should not be wrapped.
var defaultTemplates = map[string]string{
	driven.TemplateInsufficient: `I don't have enough information in your sources to answer that question. Could you try rephrasing or adding more relevant sources?`,

	driven.TemplateSummary: `Based on your sources, here's a summary of the key points:

{{range take 3 .Passages}}{{.Number}}. {{excerpt 150 .Text}}

{{end}}This information comes from {{plural .Sources "source"}} in your collection.`,

	driven.TemplateExplain: `According to your sources, here's what I found:

{{(index .Passages 0).Text}}
{{if gt (len .Passages) 1}}{{with index .Passages 1}}
Additionally, {{.Document}} mentions: {{excerpt 200 .Text}}
{{end}}{{end}}
Would you like me to elaborate on any of these points?`,

	driven.TemplateInsights: `Based on the information in your sources, I can provide the following insights:

{{range take 2 .Passages}}From "{{.Document}}": {{.Text}}

{{end}}{{if .Remaining}}I found {{plural .Remaining "additional relevant passage"}} that support this information.{{end}}`,
}

// DefaultTemplates returns a copy of the built-in templates, keyed by name.
func DefaultTemplates() map[string]string {
	return maps.Clone(defaultTemplates)
}

// Passage is one retrieved chunk as seen by a template.
type Passage struct {
	// Number is the 1-based rank.
	Number int

	// Document is the contributing document's display name.
	Document string

	// Text is the full chunk text.
	Text string

	// Score is the relevance score.
	Score float64
}

// Data is the value templates are executed against.
type Data struct {
	// Query is the question as asked.
	Query string

	// Passages are the included chunks in rank order.
	Passages []Passage

	// Sources is the number of distinct contributing documents.
	Sources int

	// Remaining is the number of passages beyond the first two.
	Remaining int
}

var funcs = gotemplate.FuncMap{
	"take":    take,
	"excerpt": excerpt,
	"plural":  plural,
}

// Generator fills templates with retrieved evidence.
type Generator struct {
	store driven.TemplateStore
}

// New creates a generator. A nil store uses the built-in templates.
func New(store driven.TemplateStore) *Generator {
	return &Generator{store: store}
}

// Name returns the generator name.
func (g *Generator) Name() string {
	return "template"
}

// Generate phrases an answer to query from rc. An empty context yields the
// insufficient-evidence message with zero confidence.
func (g *Generator) Generate(_ context.Context, query string, rc *domain.RetrievalContext) (*domain.Answer, error) {
	if rc.IsEmpty() {
		content, err := g.render(driven.TemplateInsufficient, Data{Query: query})
		if err != nil {
			return nil, err
		}
		return &domain.Answer{Content: content, Sources: []domain.DocumentRef{}}, nil
	}

	name := Classify(query)
	logger.Debug("Answer template: %s (%d passages)", name, len(rc.Chunks))

	content, err := g.render(name, newData(query, rc))
	if err != nil {
		return nil, err
	}

	sources := make([]domain.DocumentRef, len(rc.Documents))
	copy(sources, rc.Documents)

	return &domain.Answer{
		Content:    content,
		Sources:    sources,
		Confidence: Confidence(len(rc.Chunks)),
		UsedChunks: len(rc.Chunks),
	}, nil
}

// Classify picks the template for query.
func Classify(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "summary"), strings.Contains(q, "summarize"), strings.Contains(q, "summarise"):
		return driven.TemplateSummary
	case strings.Contains(q, "what"), strings.Contains(q, "how"):
		return driven.TemplateExplain
	default:
		return driven.TemplateInsights
	}
}

// Confidence returns the heuristic confidence for an answer built from n passages.
func Confidence(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Min(MaxConfidence, BaseConfidence+ConfidenceStep*float64(n))
}

func (g *Generator) render(name string, data Data) (string, error) {
	text, err := g.load(name)
	if err != nil {
		return "", err
	}

	t, err := gotemplate.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute template %q: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

func (g *Generator) load(name string) (string, error) {
	if g.store != nil {
		text, err := g.store.Load(name)
		if err == nil {
			return text, nil
		}
		logger.Warn("Template %q unavailable, using default: %v", name, err)
	}
	text, ok := defaultTemplates[name]
	if !ok {
		return "", fmt.Errorf("%w: template %q", domain.ErrNotFound, name)
	}
	return text, nil
}

func newData(query string, rc *domain.RetrievalContext) Data {
	passages := make([]Passage, len(rc.Chunks))
	for i, c := range rc.Chunks {
		passages[i] = Passage{
			Number:   i + 1,
			Document: c.DocumentName,
			Text:     c.Text,
			Score:    c.Score,
		}
	}
	return Data{
		Query:     query,
		Passages:  passages,
		Sources:   len(rc.Documents),
		Remaining: max(len(passages)-2, 0),
	}
}

func take(n int, passages []Passage) []Passage {
	if n < len(passages) {
		return passages[:n]
	}
	return passages
}

// excerpt cuts text to n characters, marking the cut with an ellipsis.
func excerpt(n int, text string) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
