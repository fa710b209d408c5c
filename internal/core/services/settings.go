package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySentencesPerChunk = "chunking.sentences_per_chunk"
	KeyMinChunkLength    = "chunking.min_chunk_length"
	KeySearchTopK        = "retrieval.search_top_k"
	KeyContextTopK       = "retrieval.context_top_k"
	KeyTokenBudget       = "retrieval.token_budget"
	KeyRequestsPerSecond = "fetch.requests_per_second"
	KeyTimeoutSeconds    = "fetch.timeout_seconds"
	KeyDataDir           = "storage.data_dir"
)

type settingKind int

const (
	kindInt settingKind = iota
	kindFloat
	kindString
)

var settingKinds = map[string]settingKind{
	KeySentencesPerChunk: kindInt,
	KeyMinChunkLength:    kindInt,
	KeySearchTopK:        kindInt,
	KeyContextTopK:       kindInt,
	KeyTokenBudget:       kindInt,
	KeyRequestsPerSecond: kindFloat,
	KeyTimeoutSeconds:    kindInt,
	KeyDataDir:           kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing keys take defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			SentencesPerChunk: s.getInt(KeySentencesPerChunk, defaults.Chunking.SentencesPerChunk),
			MinChunkLength:    s.getInt(KeyMinChunkLength, defaults.Chunking.MinChunkLength),
		},
		Retrieval: domain.RetrievalSettings{
			SearchTopK:  s.getInt(KeySearchTopK, defaults.Retrieval.SearchTopK),
			ContextTopK: s.getInt(KeyContextTopK, defaults.Retrieval.ContextTopK),
			TokenBudget: s.getInt(KeyTokenBudget, defaults.Retrieval.TokenBudget),
		},
		Fetch: domain.FetchSettings{
			RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.Fetch.RequestsPerSecond),
			TimeoutSeconds:    s.getInt(KeyTimeoutSeconds, defaults.Fetch.TimeoutSeconds),
		},
		Storage: domain.StorageSettings{
			DataDir: s.getString(KeyDataDir, defaults.Storage.DataDir),
		},
	}, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeySentencesPerChunk, settings.Chunking.SentencesPerChunk},
		{KeyMinChunkLength, settings.Chunking.MinChunkLength},
		{KeySearchTopK, settings.Retrieval.SearchTopK},
		{KeyContextTopK, settings.Retrieval.ContextTopK},
		{KeyTokenBudget, settings.Retrieval.TokenBudget},
		{KeyRequestsPerSecond, settings.Fetch.RequestsPerSecond},
		{KeyTimeoutSeconds, settings.Fetch.TimeoutSeconds},
		{KeyDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it. The resulting settings must
// validate; otherwise nothing is stored.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = f
	default:
		parsed = value
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings, key, parsed)
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func apply(settings *domain.AppSettings, key string, value any) {
	switch key {
	case KeySentencesPerChunk:
		settings.Chunking.SentencesPerChunk = value.(int)
	case KeyMinChunkLength:
		settings.Chunking.MinChunkLength = value.(int)
	case KeySearchTopK:
		settings.Retrieval.SearchTopK = value.(int)
	case KeyContextTopK:
		settings.Retrieval.ContextTopK = value.(int)
	case KeyTokenBudget:
		settings.Retrieval.TokenBudget = value.(int)
	case KeyRequestsPerSecond:
		settings.Fetch.RequestsPerSecond = value.(float64)
	case KeyTimeoutSeconds:
		settings.Fetch.TimeoutSeconds = value.(int)
	case KeyDataDir:
		settings.Storage.DataDir = value.(string)
	}
}

// Helper methods for reading config with defaults. A stored zero is kept.

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
