package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/debtnet/internal/usecase"
)

const (
	getSlotSQL = `SELECT value FROM kv_slots WHERE key = $1`
	setSlotSQL = `INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KVStore implements usecase.KVStore on the kv_slots table.
type KVStore struct {
	db querier
}

// NewKVStore creates a new KVStore. The schema is created by the migrations
// in infrastructure/postgres.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return newKVStoreWithQuerier(pool)
}

func newKVStoreWithQuerier(db querier) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves a value by key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getSlotSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set upserts a value.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, setSlotSQL, key, value)
	return err
}
