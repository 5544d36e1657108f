// Package library persists the curated book list.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jinhuihu/orc-book/internal/book"
)

// Store keeps the book list in a JSON file. Writes go through a temp
// file and rename so a crash never leaves a half-written list.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the book list. A missing file is an empty list.
func (s *Store) Load() ([]book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the book list.
func (s *Store) Save(books []book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(books)
}

// Add prepends a book so the newest scan shows first.
func (s *Store) Add(b book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append([]book.Book{b}, books...))
}

// Remove deletes the book at index.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(books) {
		return fmt.Errorf("no book at index %d", index)
	}
	return s.save(append(books[:index], books[index+1:]...))
}

// Clear removes every book.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]book.Book{})
}

func (s *Store) load() ([]book.Book, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []book.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}
	return books, nil
}

func (s *Store) save(books []book.Book) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace library file: %w", err)
	}
	return nil
}
