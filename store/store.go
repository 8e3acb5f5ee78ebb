// Package store persists saved worlds the way a browser would use
// localStorage: one namespaced document mapping world name to world data,
// rewritten atomically on every save.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lixenwraith/worldkit/worldfile"
)

// ErrNotFound is returned when the named world does not exist
var ErrNotFound = errors.New("world not found")

type document struct {
	Worlds map[string]worldfile.World `json:"worlds"`
}

// Store is a file-backed world map
type Store struct {
	path string
}

// New creates a store persisting at path; the file appears on first save
func New(path string) *Store {
	return &Store{path: path}
}

// List returns saved world names, sorted
func (s *Store) List() ([]string, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Worlds))
	for name := range doc.Worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the named world or ErrNotFound
func (s *Store) Load(name string) (worldfile.World, error) {
	doc, err := s.read()
	if err != nil {
		return worldfile.World{}, err
	}
	w, ok := doc.Worlds[name]
	if !ok {
		return worldfile.World{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return w, nil
}

// Save upserts the named world with an atomic rewrite
func (s *Store) Save(name string, w worldfile.World) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc.Worlds == nil {
		doc.Worlds = make(map[string]worldfile.World)
	}
	doc.Worlds[name] = w
	return s.write(doc)
}

// Delete removes the named world; deleting a missing world is a no-op
func (s *Store) Delete(name string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Worlds[name]; !ok {
		return nil
	}
	delete(doc.Worlds, name)
	return s.write(doc)
}

func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return document{}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("read store: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse store: %w", err)
	}
	return doc, nil
}

// write lands the document under a temp name then renames over the store
// file, so a crash mid-write never corrupts existing saves
func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".worlds-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit store: %w", err)
	}
	return nil
}
