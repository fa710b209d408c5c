package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/notebook-rag/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore loads answer templates from user-editable files on disk,
// falling back to the defaults it was created with.
//
// Files are only created on the first Load, not in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	defaults map[string]string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.notebook/templates/.
func NewTemplateStore(dir string, defaults map[string]string) (*TemplateStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".notebook", "templates")
	}

	return &TemplateStore{
		dir:      dir,
		defaults: defaults,
		cache:    make(map[string]string),
	}, nil
}

// Load returns the template for name. The user's file wins over the
// default; a missing or unreadable file falls back to the default.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if tmpl, ok := s.defaults[name]; ok {
			return tmpl, nil
		}
		return "", fmt.Errorf("template store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	// No lock held during I/O.
	tmpl, err := s.loadFromFile(name)
	if err != nil {
		if fallback, ok := s.defaults[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// initialise creates the directory and writes any missing default files.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range s.defaults {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *TemplateStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}
