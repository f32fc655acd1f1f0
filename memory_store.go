package main

import (
	"context"
	"sync"
)

// MemoryStore implements KV in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Item)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return Item{}, ErrNotFound
	}
	item.Value = append([]byte(nil), item.Value...)
	return item, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, expectVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items[key].Version != expectVersion {
		return 0, ErrVersionConflict
	}

	next := expectVersion + 1
	s.items[key] = Item{
		Key:     key,
		Value:   append([]byte(nil), value...),
		Version: next,
	}
	return next, nil
}

func (s *MemoryStore) Close() error { return nil }
