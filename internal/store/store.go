// Package store persists the template collection as one JSON file with
// full-collection read-modify-write semantics. Good enough for a single
// user driving one tool instance; concurrent writers would lose updates.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lukman83/vinted-relist/internal/models"
)

// Store owns the template collection on disk.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file. The file is created lazily
// on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// All returns every saved template in insertion order. A missing store file
// is an empty collection, not an error.
func (s *Store) All() ([]models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the template at the given position.
func (s *Store) Get(index int) (models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load()
	if err != nil {
		return models.Template{}, err
	}
	if index < 0 || index >= len(templates) {
		return models.Template{}, fmt.Errorf("invalid template index %d (have %d)", index, len(templates))
	}
	return templates[index], nil
}

// Add appends a new template built from the data and returns it with its
// assigned id and creation time.
func (s *Store) Add(data models.TemplateData) (models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load()
	if err != nil {
		return models.Template{}, err
	}

	name := data.Title
	if name == "" {
		name = "Unnamed template"
	}
	tpl := models.Template{
		ID:        time.Now().UnixMilli(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}

	templates = append(templates, tpl)
	if err := s.save(templates); err != nil {
		return models.Template{}, err
	}
	return tpl, nil
}

// Delete removes the template at the given position.
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(templates) {
		return fmt.Errorf("invalid template index %d (have %d)", index, len(templates))
	}

	templates = append(templates[:index], templates[index+1:]...)
	return s.save(templates)
}

// Update replaces the template at the given position, keeping its id and
// creation time.
func (s *Store) Update(index int, data models.TemplateData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(templates) {
		return fmt.Errorf("invalid template index %d (have %d)", index, len(templates))
	}

	templates[index].Data = data
	if data.Title != "" {
		templates[index].Name = data.Title
	}
	return s.save(templates)
}

func (s *Store) load() ([]models.Template, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template store: %w", err)
	}

	var templates []models.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("parse template store %s: %w", s.path, err)
	}
	return templates, nil
}

// save writes the whole collection through a temp file and rename so a
// crash mid-write cannot leave a torn store.
func (s *Store) save(templates []models.Template) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	raw, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write template store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace template store: %w", err)
	}
	return nil
}
