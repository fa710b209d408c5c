package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DocumentKind tags where a document came from.
// It is informational only and never affects chunking.
type DocumentKind string

// Known document kinds.
const (
	// KindFile is an uploaded or watched local file.
	KindFile DocumentKind = "file"

	// KindURL is a fetched web page.
	KindURL DocumentKind = "url"

	// KindText is text pasted directly by the user.
	KindText DocumentKind = "text"

	// KindYouTube is a video transcript.
	KindYouTube DocumentKind = "youtube"

	// KindAudio is an audio transcript.
	KindAudio DocumentKind = "audio"

	// KindVideo is a video transcript.
	KindVideo DocumentKind = "video"
)

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// IngestionState tracks a document through extraction and indexing.
type IngestionState string

// Ingestion states.
const (
	// StatePending means extraction has not finished yet.
	StatePending IngestionState = "pending"

	// StateProcessed means the text was extracted and indexed.
	StateProcessed IngestionState = "processed"

	// StateFailed means extraction failed; the document has no chunks.
	StateFailed IngestionState = "failed"
)

// IsValid returns true if the state is recognised.
func (s IngestionState) IsValid() bool {
	switch s {
	case StatePending, StateProcessed, StateFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IngestionState) String() string {
	return string(s)
}

// Document represents a unit of ingested content.
// Its text is mutated only by replacement (re-extraction) or deletion.
type Document struct {
	// ID is the opaque unique identifier, immutable once assigned.
	ID string

	// Name is the display label.
	Name string

	// Text is the fully extracted textual content.
	// It stays empty until extraction completes.
	Text string

	// Kind is the origin tag (file, url, text, ...).
	Kind DocumentKind

	// URI is the original location, if any (file path or URL).
	URI string

	// State is the ingestion state.
	State IngestionState

	// Error holds the extraction failure message when State is StateFailed.
	Error string

	// Metadata contains arbitrary key-value pairs from extraction.
	Metadata map[string]any

	// IngestedAt is when the document was ingested.
	IngestedAt time.Time
}

// Validate checks that the document can be indexed.
// It returns an error wrapping ErrInvalidDocument when it cannot.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}
	if !utf8.ValidString(d.Text) {
		return fmt.Errorf("%w: text of %s is not valid UTF-8", ErrInvalidDocument, d.ID)
	}
	return nil
}

// DisplayName returns the name, falling back to the ID.
func (d *Document) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Ref returns the attribution reference for this document.
func (d *Document) Ref() DocumentRef {
	return DocumentRef{
		ID:   d.ID,
		Name: d.DisplayName(),
		Kind: d.Kind,
	}
}

// DocumentRef identifies a document that contributed evidence.
type DocumentRef struct {
	// ID is the document identifier.
	ID string `json:"id"`

	// Name is the display label at the time of indexing.
	Name string `json:"name"`

	// Kind is the origin tag.
	Kind DocumentKind `json:"kind,omitempty"`
}

// Chunk is a contiguous retrieval unit derived from exactly one Document.
// Chunks are created in a batch whenever their document is chunked and
// are replaced wholesale, never patched.
type Chunk struct {
	// ID is the deterministic composite of DocumentID and Ordinal.
	ID string `json:"id"`

	// DocumentID references the owning Document.
	DocumentID string `json:"document_id"`

	// DocumentName is the owning document's display label.
	DocumentName string `json:"document_name"`

	// DocumentKind is the owning document's origin tag.
	DocumentKind DocumentKind `json:"document_kind,omitempty"`

	// Text is the chunk's content.
	Text string `json:"text"`

	// Ordinal is the position among the document's chunks.
	Ordinal int `json:"ordinal"`

	// StartSentence is the index of the first sentence in the window.
	StartSentence int `json:"start_sentence"`

	// EndSentence is the index of the last sentence in the window.
	EndSentence int `json:"end_sentence"`

	// WordCount is used for token-budget accounting.
	WordCount int `json:"word_count"`
}

// Ref returns the attribution reference of the chunk's document.
func (c *Chunk) Ref() DocumentRef {
	return DocumentRef{
		ID:   c.DocumentID,
		Name: c.DocumentName,
		Kind: c.DocumentKind,
	}
}

// ChunkID builds the stable chunk identifier for a document ordinal.
func ChunkID(documentID string, ordinal int) string {
	return fmt.Sprintf("%s-chunk-%d", documentID, ordinal)
}

// CountWords returns the number of whitespace-separated words in text.
// Words stand in for model tokens in budget accounting.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
