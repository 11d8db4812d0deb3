package analytics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// ProcessedSet tracks which sermon ids have already been merged into the
// aggregates. It grows monotonically and persists as an ordered list so
// repeated runs write identical bytes.
type ProcessedSet struct {
	ids  []string
	seen map[string]bool
}

// LoadProcessed reads the processed-sermon list from dir. A missing file
// yields an empty set; a corrupt file is an error.
func LoadProcessed(dir string) (*ProcessedSet, error) {
	p := &ProcessedSet{seen: make(map[string]bool)}

	var ids []string
	err := store.ReadJSON(filepath.Join(dir, ProcessedFile), &ids)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading processed sermons: %w", err)
	}
	for _, id := range ids {
		p.Add(id)
	}
	return p, nil
}

// Contains reports whether a sermon id has been processed.
func (p *ProcessedSet) Contains(id string) bool {
	return p.seen[id]
}

// Add records a sermon id. Adding an already-present id is a no-op.
func (p *ProcessedSet) Add(id string) {
	if p.seen[id] {
		return
	}
	p.seen[id] = true
	p.ids = append(p.ids, id)
}

// Len returns the number of processed sermons.
func (p *ProcessedSet) Len() int {
	return len(p.ids)
}

// IDs returns the processed ids in insertion order. The slice is shared;
// callers must not mutate it.
func (p *ProcessedSet) IDs() []string {
	return p.ids
}

// Save rewrites the processed-sermon list in dir.
func (p *ProcessedSet) Save(dir string) error {
	ids := p.ids
	if ids == nil {
		ids = []string{}
	}
	return store.WriteJSON(filepath.Join(dir, ProcessedFile), ids)
}
