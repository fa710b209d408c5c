package postprocessors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/domain"
	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// BuilderFunc creates a PostProcessor from generic config, typically a
// table decoded from config.toml.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Stage names one processor of a pipeline and its config.
type Stage struct {
	Name   string
	Config map[string]any
}

// Registry maps processor names to their builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a builder under name, which should match the processor's
// Name. Names are unique.
func (r *Registry) Register(name string, builder BuilderFunc) error {
	name = strings.TrimSpace(name)
	if name == "" || builder == nil {
		return fmt.Errorf("%w: processor needs a name and a builder", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("%w: processor %q already registered", domain.ErrInvalidInput, name)
	}
	r.builders[name] = builder
	return nil
}

// Build creates the processor registered as name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: processor %q", domain.ErrNotFound, name)
	}

	processor, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return processor, nil
}

// BuildPipeline builds one processor per stage, in order.
func (r *Registry) BuildPipeline(stages ...Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("pipeline needs at least one stage")
	}

	processors := make([]driven.PostProcessor, 0, len(stages))
	for _, stage := range stages {
		processor, err := r.Build(stage.Name, stage.Config)
		if err != nil {
			return nil, err
		}
		processors = append(processors, processor)
	}
	return NewPipeline(processors...), nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered processor names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.builders))
}
