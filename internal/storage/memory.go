package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. It is the session-scoped
// backend: everything is gone when the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
	hub   *hub
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]string),
		hub:   newHub(),
	}
}

// Get returns the slot value or ErrNotFound
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set overwrites the slot
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.slots[key] = value
	s.mu.Unlock()

	s.hub.publish(Change{Key: key, Value: value})
	return nil
}

// Remove empties the slot. Removing an empty slot is not an error.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.slots[key]
	delete(s.slots, key)
	s.mu.Unlock()

	if existed {
		s.hub.publish(Change{Key: key, Removed: true})
	}
	return nil
}

// Watch streams changes made through this store
func (s *MemoryStore) Watch(ctx context.Context, key string) (<-chan Change, error) {
	return s.hub.subscribe(ctx, key), nil
}
