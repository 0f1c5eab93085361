package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/debtnet/internal/usecase"
)

func TestKVStoreSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewKVStore(client)
	ctx := context.Background()

	if err := store.Set(ctx, "SavedDebts", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := store.Get(ctx, "SavedDebts")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != "[]" {
		t.Fatalf("expected [], got %s", val)
	}
}

func TestKVStoreUsesPrefixWithoutTTL(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewKVStore(client)
	if err := store.Set(context.Background(), "SavedDebts", []byte("x")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !mr.Exists("debtnet:SavedDebts") {
		t.Fatalf("expected prefixed key to exist")
	}
	if ttl := mr.TTL("debtnet:SavedDebts"); ttl != 0 {
		t.Fatalf("expected no TTL, got %s", ttl)
	}
}

func TestKVStoreMissingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewKVStore(client)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, usecase.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestKVStoreOverwrite(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewKVStore(client)
	ctx := context.Background()

	_ = store.Set(ctx, "key", []byte("first"))
	_ = store.Set(ctx, "key", []byte("second"))

	val, err := store.Get(ctx, "key")
	if err != nil || string(val) != "second" {
		t.Fatalf("expected second, got %q err=%v", val, err)
	}

	if ttl := mr.TTL(DefaultPrefix + "key"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}
}

func TestKVStoreServerDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	store := NewKVStore(client)
	mr.Close()

	if err := store.Set(context.Background(), "key", []byte("v")); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
	if _, err := store.Get(context.Background(), "key"); err == nil || errors.Is(err, usecase.ErrKeyNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
