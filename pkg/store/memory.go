package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/graphio"
)

// MemoryStore is an in-memory snapshot archive. Used when no MongoDB
// connection is configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Save archives a snapshot under the given name.
func (s *MemoryStore) Save(ctx context.Context, name string, snap graphio.Snapshot) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = Entry{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Snapshot:  snap,
	}
	return nil
}

// Load retrieves a snapshot by name.
func (s *MemoryStore) Load(ctx context.Context, name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot not found: %s", name)
	}
	return &entry, nil
}

// List returns all archived entries, most recent first.
func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries, nil
}

// Delete removes a snapshot by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot not found: %s", name)
	}
	delete(s.entries, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
