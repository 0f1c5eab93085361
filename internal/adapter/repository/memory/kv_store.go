// Package memory provides an in-process usecase.KVStore.
package memory

import (
	"context"
	"sync"

	"github.com/iho/debtnet/internal/usecase"
)

// KVStore keeps values in a map. Nothing survives the process.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVStore creates an empty KVStore.
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

// Get retrieves a copy of the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, usecase.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}
