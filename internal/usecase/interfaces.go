package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/debtnet/internal/domain"
)

// ErrKeyNotFound is returned by a KVStore when the slot has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durable key-value facility the ledger is persisted into.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Listener is notified after the ledger changes.
type Listener interface {
	OnLedgerEvent(ctx context.Context, event domain.LedgerEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, event domain.LedgerEvent)

// OnLedgerEvent calls f.
func (f ListenerFunc) OnLedgerEvent(ctx context.Context, event domain.LedgerEvent) {
	f(ctx, event)
}
