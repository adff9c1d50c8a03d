package store

import (
	"slices"
	"sync"
)

// MemoryListStore keeps named string lists in process memory.
type MemoryListStore struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemoryListStore creates an empty MemoryListStore.
func NewMemoryListStore() *MemoryListStore {
	return &MemoryListStore{lists: make(map[string][]string)}
}

// ReadList returns a copy of the named list, or an empty list if it was never written.
func (s *MemoryListStore) ReadList(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.lists[name]
	if !ok {
		return []string{}, nil
	}
	return slices.Clone(items), nil
}

// WriteList replaces the named list.
func (s *MemoryListStore) WriteList(name string, items []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[name] = slices.Clone(items)
	return nil
}
