package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
)

func TestExtractor_Basics(t *testing.T) {
	e := New()

	assert.Equal(t, 50, e.Priority())
	assert.Equal(t, []string{"text/markdown", "text/x-markdown"}, e.SupportedMIMETypes())
}

func TestExtractor_Extract(t *testing.T) {
	content := "# Animal Facts\n\nCats are **mammals**. See [the guide](https://example.com).\n\n- Dogs bark\n- Birds fly\n"

	result, err := New().Extract(context.Background(), &domain.RawSource{
		URI:      "/notes/animals.md",
		MIMEType: "text/markdown",
		Content:  []byte(content),
	})
	require.NoError(t, err)

	assert.Equal(t, "Animal Facts", result.Title)
	assert.Equal(t, "Animal Facts\n\nCats are mammals. See the guide.\n\nDogs bark\nBirds fly", result.Text)
	assert.Equal(t, "markdown", result.Metadata["format"])
}

func TestExtractor_TitleFallback(t *testing.T) {
	result, err := New().Extract(context.Background(), &domain.RawSource{
		URI:     "/notes/reading_list.md",
		Content: []byte("No heading here."),
	})
	require.NoError(t, err)
	assert.Equal(t, "reading list", result.Title)
}

func TestExtractor_NilSource(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"headings", "## Section\nBody", "Section\nBody"},
		{"code block removed", "Before\n```go\nfmt.Println(1)\n```\nAfter", "Before\n\nAfter"},
		{"inline code kept", "Run `make test` now", "Run make test now"},
		{"image removed", "See ![diagram](d.png) here", "See  here"},
		{"link text kept", "[docs](https://x.y)", "docs"},
		{"bold and italic", "**bold** and *italic* and __strong__", "bold and italic and strong"},
		{"snake case untouched", "use snake_case_names", "use snake_case_names"},
		{"blockquote", "> quoted line", "quoted line"},
		{"numbered list", "1. first\n2. second", "first\nsecond"},
		{"horizontal rule", "above\n---\nbelow", "above\n\nbelow"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripMarkdown(tc.input))
		})
	}
}
