package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultKey is the fixed name the cart document is stored under.
const DefaultKey = "cart.json"

// Store is the persistence boundary for a cart. A cart belongs to exactly
// one session, so implementations are single-writer and need no locking.
type Store interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
	Clear(ctx context.Context) error
}

// FileStore persists the cart as a JSON document under a fixed key inside a
// directory, surviving process restarts the way browser-local storage
// survives reloads.
type FileStore struct {
	path string
}

// NewFileStore builds a store rooted at dir using the default key.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, DefaultKey)}
}

// Load reads the stored lines. A missing or unreadable document yields an
// empty cart, matching the forgiving read behavior carts have always had.
func (s *FileStore) Load(_ context.Context) ([]Line, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cart document: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

// Save writes the lines atomically (temp file + rename).
func (s *FileStore) Save(_ context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing cart document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing cart document: %w", err)
	}
	return nil
}

// Clear removes the stored document entirely.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cart document: %w", err)
	}
	return nil
}
