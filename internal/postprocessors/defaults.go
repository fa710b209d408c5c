package postprocessors

import (
	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/postprocessors/chunker"
)

// ChunkerStage is the registry name of the sentence-window chunker.
const ChunkerStage = "chunker"

// Chunker config keys.
const (
	configSentencesPerChunk = "sentences_per_chunk"
	configMinChunkLength    = "min_chunk_length"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) error {
	return r.Register(ChunkerStage, buildChunker)
}

// NewDefaultPipeline builds the chunking pipeline from chunking settings.
func NewDefaultPipeline(settings domain.ChunkingSettings) (*Pipeline, error) {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		return nil, err
	}

	return r.BuildPipeline(Stage{
		Name: ChunkerStage,
		Config: map[string]any{
			configSentencesPerChunk: settings.SentencesPerChunk,
			configMinChunkLength:    settings.MinChunkLength,
		},
	})
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - sentences_per_chunk (int): Sentences per window (default: 3)
//   - min_chunk_length (int): Character floor per chunk (default: 50)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if n, ok := getIntFromConfig(cfg, configSentencesPerChunk); ok && n > 0 {
		opts = append(opts, chunker.WithSentencesPerChunk(n))
	}
	if n, ok := getIntFromConfig(cfg, configMinChunkLength); ok && n >= 0 {
		opts = append(opts, chunker.WithMinLength(n))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig extracts an int from a generic config map. TOML decodes
// integers as int64 and JSON as float64.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	switch v := cfg[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
