package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/debtnet/internal/usecase"
)

func TestKVStoreGet(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(getSlotSQL)).
		WithArgs("SavedDebts").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	store := newKVStoreWithQuerier(mockPool)
	val, err := store.Get(context.Background(), "SavedDebts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(val) != "[]" {
		t.Fatalf("expected [], got %s", val)
	}

	assertExpectations(t, mockPool)
}

func TestKVStoreGetMissing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(getSlotSQL)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := newKVStoreWithQuerier(mockPool)
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, usecase.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestKVStoreGetError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("connection reset")
	mockPool.ExpectQuery(regexp.QuoteMeta(getSlotSQL)).
		WithArgs("SavedDebts").
		WillReturnError(mockErr)

	store := newKVStoreWithQuerier(mockPool)
	if _, err := store.Get(context.Background(), "SavedDebts"); !errors.Is(err, mockErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestKVStoreSet(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec(regexp.QuoteMeta(setSlotSQL)).
		WithArgs("SavedDebts", []byte(`[{"id":"a"}]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := newKVStoreWithQuerier(mockPool)
	if err := store.Set(context.Background(), "SavedDebts", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestKVStoreSetError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("disk full")
	mockPool.ExpectExec(regexp.QuoteMeta(setSlotSQL)).
		WithArgs("SavedDebts", []byte(`[]`)).
		WillReturnError(mockErr)

	store := newKVStoreWithQuerier(mockPool)
	if err := store.Set(context.Background(), "SavedDebts", []byte(`[]`)); !errors.Is(err, mockErr) {
		t.Fatalf("expected exec error, got %v", err)
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
