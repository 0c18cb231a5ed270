package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KnowledgeStore holds the full knowledge text in memory, backed by a single
// file on disk. The text is replaced wholesale and never mutated in place:
// readers always see either the old or the new content in full.
type KnowledgeStore struct {
	path string

	mu   sync.RWMutex
	text string
}

// NewKnowledgeStore creates a store backed by the file at path. Call Load to
// pick up existing content.
func NewKnowledgeStore(path string) *KnowledgeStore {
	return &KnowledgeStore{path: path}
}

// Load reads the backing file into memory. A missing file is not an error;
// it simply leaves the store empty so retrieval degrades gracefully.
func (s *KnowledgeStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read knowledge file: %w", err)
	}

	s.mu.Lock()
	s.text = string(data)
	s.mu.Unlock()
	return nil
}

// Replace persists content to the backing file and atomically swaps the
// in-memory text. Returns the effective storage path.
func (s *KnowledgeStore) Replace(content string) (string, error) {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create knowledge directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write knowledge file: %w", err)
	}

	s.mu.Lock()
	s.text = content
	s.mu.Unlock()
	return s.path, nil
}

// Text returns the current knowledge text, or the empty string when no
// knowledge has been loaded.
func (s *KnowledgeStore) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Path returns the backing file path.
func (s *KnowledgeStore) Path() string {
	return s.path
}
