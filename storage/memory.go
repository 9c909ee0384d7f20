package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore keeps games in a map. Values are copied in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return slices.Clone(value), nil
}

func (s *MemoryStore) Create(_ context.Context, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; ok {
		return fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	s.games[id] = slices.Clone(value)
	return nil
}

func (s *MemoryStore) Put(_ context.Context, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[id] = slices.Clone(value)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
