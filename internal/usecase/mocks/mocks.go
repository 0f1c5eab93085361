package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/usecase"
)

// FakeKVStore is an in-memory KVStore whose behaviour can be overridden per method.
type FakeKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte) error
}

func NewFakeKVStore() *FakeKVStore {
	return &FakeKVStore{
		values: make(map[string][]byte),
	}
}

func (m *FakeKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, usecase.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *FakeKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Put seeds a raw value, bypassing SetFunc.
func (m *FakeKVStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Raw returns the stored bytes for key.
func (m *FakeKVStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes returns the number of successful Set calls.
func (m *FakeKVStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// FakeClock is a settable clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequenceIDGenerator yields debt-1, debt-2, ...
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("debt-%d", g.n)
}

// RecordingListener keeps every event it receives.
type RecordingListener struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
}

func (l *RecordingListener) OnLedgerEvent(_ context.Context, event domain.LedgerEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a copy of the received events.
func (l *RecordingListener) Events() []domain.LedgerEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.LedgerEvent(nil), l.events...)
}

// Types returns the received event types in order.
func (l *RecordingListener) Types() []domain.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	types := make([]domain.EventType, 0, len(l.events))
	for _, e := range l.events {
		types = append(types, e.Type)
	}
	return types
}
