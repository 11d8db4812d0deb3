// Package store persists citation occurrences as sharded JSON files: one
// file per citation key under references/, one per book under books/, and
// one per chapter under chapters/. Shards are read-modify-written in full;
// the engine guarantees a single writer per shard within a run.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shard namespace directory names.
const (
	ReferencesDir = "references"
	BooksDir      = "books"
	ChaptersDir   = "chapters"
)

// DedupWindowSeconds is the timestamp tolerance for occurrence identity: two
// occurrences from the same sermon closer than this are the same citation
// instance and only one is stored.
const DedupWindowSeconds = 5.0

// ErrCorrupt reports a shard or aggregate file that exists but does not
// parse. Corruption is surfaced to the operator instead of silently
// discarding prior data; the rebuild command recovers counters from the
// shards that still parse.
var ErrCorrupt = errors.New("corrupted data file")

// Store is the sharded occurrence store rooted at an analytics directory.
type Store struct {
	dir string
}

// New opens the store at dir, creating the shard directories if needed.
func New(dir string) (*Store, error) {
	for _, sub := range []string{ReferencesDir, BooksDir, ChaptersDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// SafeKey converts a citation key to its filesystem-safe shard name:
// colons and spaces become underscores, range hyphens become "_to_".
// "John 3:16-18" → "John_3_16_to_18".
func SafeKey(key string) string {
	key = strings.ReplaceAll(key, ":", "_")
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_to_")
	return key
}

func (s *Store) shardPath(namespace, key string) string {
	return filepath.Join(s.dir, namespace, SafeKey(key)+".json")
}

// ReadJSON reads path into v. A missing file returns os.ErrNotExist; a file
// that fails to parse returns ErrCorrupt.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return nil
}

// WriteJSON rewrites path wholesale with two-space indented JSON.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
