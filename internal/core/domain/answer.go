package domain

// Answer is the natural-language output of answer generation.
// The retrieval engine only supplies the evidence it is built from.
type Answer struct {
	// Content is the answer text.
	Content string `json:"content"`

	// Sources are the documents the answer draws on.
	Sources []DocumentRef `json:"sources"`

	// Confidence is a heuristic in [0, 1].
	Confidence float64 `json:"confidence"`

	// UsedChunks is the number of chunks the answer was built from.
	UsedChunks int `json:"used_chunks"`
}
