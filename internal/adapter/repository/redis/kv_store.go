package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iho/debtnet/internal/usecase"
)

// DefaultPrefix namespaces ledger slots in a shared Redis.
const DefaultPrefix = "debtnet:"

// KVStore implements usecase.KVStore using Redis strings without expiry.
type KVStore struct {
	client *redis.Client
	prefix string
}

// NewKVStore creates a new KVStore.
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{
		client: client,
		prefix: DefaultPrefix,
	}
}

// Get retrieves a value by key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrKeyNotFound
	}
	return val, err
}

// Set stores a value, replacing any previous one.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
