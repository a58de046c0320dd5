// Package registry persists the set of upstream model identifiers the relay
// may use, each with an active flag, as a single JSON file.
//
// Every operation reads the whole file and mutations rewrite it wholesale.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrModelNotFound is returned when a model identifier is not registered
var ErrModelNotFound = errors.New("model not found")

// ErrEmptyModel is returned when a model identifier is blank
var ErrEmptyModel = errors.New("model identifier is required")

// Status is the persisted value for one model
type Status struct {
	Active bool `json:"active"`
}

// Models maps model identifier to its status. It is the on-disk shape.
type Models map[string]Status

// Entry is a flattened view of one registered model
type Entry struct {
	Model  string `json:"model" example:"mistral/mistral-7b-instruct:free"`
	Active bool   `json:"active" example:"true"`
}

// Store reads and writes the registry file
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry file. A missing file is an empty registry.
func (s *Store) Load() (Models, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the registry file with models
func (s *Store) Save(models Models) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(models)
}

// Add registers model, overwriting any existing entry for it
func (s *Store) Add(model string, active bool) (Entry, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return Entry{}, ErrEmptyModel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	models[model] = Status{Active: active}
	if err := s.save(models); err != nil {
		return Entry{}, err
	}
	return Entry{Model: model, Active: active}, nil
}

// Toggle flips the active flag of model
func (s *Store) Toggle(model string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	status, ok := models[model]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrModelNotFound, model)
	}
	status.Active = !status.Active
	models[model] = status
	if err := s.save(models); err != nil {
		return Entry{}, err
	}
	return Entry{Model: model, Active: status.Active}, nil
}

// Delete removes model from the registry
func (s *Store) Delete(model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := models[model]; !ok {
		return fmt.Errorf("%w: %s", ErrModelNotFound, model)
	}
	delete(models, model)
	return s.save(models)
}

// IsActive reports whether model is registered and active
func (s *Store) IsActive(model string) (bool, error) {
	models, err := s.Load()
	if err != nil {
		return false, err
	}
	return models[model].Active, nil
}

// Active returns the active model identifiers in sorted order
func (s *Store) Active() ([]string, error) {
	models, err := s.Load()
	if err != nil {
		return nil, err
	}
	active := make([]string, 0, len(models))
	for model, status := range models {
		if status.Active {
			active = append(active, model)
		}
	}
	sort.Strings(active)
	return active, nil
}

// List returns every registered model in sorted order
func (s *Store) List() ([]Entry, error) {
	models, err := s.Load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(models))
	for model, status := range models {
		entries = append(entries, Entry{Model: model, Active: status.Active})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Model < entries[j].Model })
	return entries, nil
}

func (s *Store) load() (Models, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Models{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Models{}, nil
	}

	models := Models{}
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", s.path, err)
	}
	// A file holding `null` decodes to a nil map
	if models == nil {
		models = Models{}
	}
	return models, nil
}

func (s *Store) save(models Models) error {
	if models == nil {
		models = Models{}
	}
	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp registry file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace registry %s: %w", s.path, err)
	}
	return nil
}
