package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
)

// DebtInput represents input for adding a debt. ID and CreatedAt are assigned
// by the store.
type DebtInput struct {
	CounterpartyName    string
	Principal           decimal.Decimal
	Note                string
	DueAt               *time.Time
	Category            domain.Category
	Direction           domain.Direction
	InterestRatePercent decimal.Decimal
}

// LedgerStore owns the authoritative, ordered collection of debts and
// persists the whole collection under a single key after every change.
type LedgerStore struct {
	mu    sync.RWMutex
	debts []domain.Debt
	dirty bool

	kv            KVStore
	clock         Clock
	idGen         IDGenerator
	logger        zerolog.Logger
	key           string
	notFoundError bool

	listenersMu sync.Mutex
	listeners   []subscription
	nextSubID   int
}

type subscription struct {
	id       int
	listener Listener
}

// Option configures a LedgerStore.
type Option func(*LedgerStore)

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *LedgerStore) { s.logger = l }
}

// WithStorageKey overrides the slot name in the KV store.
func WithStorageKey(key string) Option {
	return func(s *LedgerStore) { s.key = key }
}

// WithNotFoundErrors makes Update, Delete, ToggleSettled and ApplyPayment
// return domain.ErrDebtNotFound for unknown IDs instead of doing nothing.
func WithNotFoundErrors() Option {
	return func(s *LedgerStore) { s.notFoundError = true }
}

// NewLedgerStore creates an empty LedgerStore. The clock stamps CreatedAt and
// decides overdue status. Call Load to restore persisted state.
func NewLedgerStore(kv KVStore, idGen IDGenerator, clock Clock, opts ...Option) *LedgerStore {
	s := &LedgerStore{
		kv:     kv,
		idGen:  idGen,
		clock:  clock,
		logger: zerolog.Nop(),
		key:    DefaultStorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener and returns a function that removes it.
func (s *LedgerStore) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, subscription{id: id, listener: l})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Load replaces the collection with the persisted document. A missing or
// malformed document leaves the store empty; it is logged, never returned.
func (s *LedgerStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.debts = nil
	s.dirty = false

	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		s.logger.Debug().Str("key", s.key).Msg("no saved ledger, starting empty")
	case err != nil:
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read ledger, starting empty")
	default:
		debts, decodeErr := DecodeLedger(data)
		if decodeErr != nil {
			s.logger.Warn().Err(decodeErr).Str("key", s.key).Msg("malformed ledger document, starting empty")
		} else {
			s.debts = debts
		}
	}

	count := len(s.debts)
	s.mu.Unlock()

	s.logger.Info().Int("count", count).Msg("ledger loaded")
	s.notify(ctx, domain.LedgerEvent{Type: domain.EventTypeLedgerLoaded, Count: count})
}

// Add validates the input, assigns an ID and creation time, appends and persists.
func (s *LedgerStore) Add(ctx context.Context, input DebtInput) (domain.Debt, error) {
	debt := domain.Debt{
		ID:                  s.idGen.Generate(),
		CounterpartyName:    input.CounterpartyName,
		Principal:           input.Principal,
		Note:                input.Note,
		CreatedAt:           s.clock.Now(),
		DueAt:               input.DueAt,
		Category:            input.Category,
		Direction:           input.Direction,
		InterestRatePercent: input.InterestRatePercent,
		PaymentsMade:        decimal.Zero,
	}
	if debt.Category == "" {
		debt.Category = domain.CategoryOther
	}

	if err := debt.Validate(); err != nil {
		return domain.Debt{}, err
	}

	s.mu.Lock()
	if _, exists := s.indexOf(debt.ID); exists {
		s.mu.Unlock()
		return domain.Debt{}, errors.New("id generator produced a duplicate id")
	}
	s.debts = append(s.debts, debt.Clone())
	events := s.persistLocked(ctx, domain.LedgerEvent{Type: domain.EventTypeDebtAdded, DebtID: debt.ID})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return debt.Clone(), nil
}

// Update replaces the stored record with the same ID. ID and CreatedAt keep
// their stored values.
func (s *LedgerStore) Update(ctx context.Context, debt domain.Debt) error {
	if err := debt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	i, ok := s.indexOf(debt.ID)
	if !ok {
		s.mu.Unlock()
		return s.missing(debt.ID)
	}

	debt.CreatedAt = s.debts[i].CreatedAt
	s.debts[i] = debt.Clone()
	events := s.persistLocked(ctx, domain.LedgerEvent{Type: domain.EventTypeDebtUpdated, DebtID: debt.ID})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return nil
}

// Delete removes the debt with the given ID.
func (s *LedgerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i, ok := s.indexOf(id)
	if !ok {
		s.mu.Unlock()
		return s.missing(id)
	}

	s.debts = append(s.debts[:i], s.debts[i+1:]...)
	events := s.persistLocked(ctx, domain.LedgerEvent{Type: domain.EventTypeDebtDeleted, DebtID: id})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return nil
}

// ToggleSettled flips the settled flag. Applying it twice restores the original state.
func (s *LedgerStore) ToggleSettled(ctx context.Context, id string) error {
	s.mu.Lock()
	i, ok := s.indexOf(id)
	if !ok {
		s.mu.Unlock()
		return s.missing(id)
	}

	s.debts[i].IsSettled = !s.debts[i].IsSettled
	events := s.persistLocked(ctx, domain.LedgerEvent{Type: domain.EventTypeSettledToggled, DebtID: id})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return nil
}

// ApplyPayment records a payment of 0 < amount <= remaining. A rejected
// payment changes nothing.
func (s *LedgerStore) ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) error {
	s.mu.Lock()
	i, ok := s.indexOf(id)
	if !ok {
		s.mu.Unlock()
		return s.missing(id)
	}

	if err := domain.ValidatePayment(amount, s.debts[i].RemainingAmount()); err != nil {
		s.mu.Unlock()
		return err
	}

	s.debts[i].PaymentsMade = s.debts[i].PaymentsMade.Add(amount)
	events := s.persistLocked(ctx, domain.LedgerEvent{
		Type:   domain.EventTypePaymentApplied,
		DebtID: id,
		Amount: amount,
	})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return nil
}

// ClearAll removes every debt and persists the empty ledger.
func (s *LedgerStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.debts = nil
	events := s.persistLocked(ctx, domain.LedgerEvent{Type: domain.EventTypeLedgerCleared})
	s.mu.Unlock()

	s.notify(ctx, events...)
	return nil
}

// Flush writes the collection again and returns the write error, if any.
// It is the explicit recovery path after a failed save.
func (s *LedgerStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	err := s.saveLocked(ctx)
	wasDirty := s.dirty
	if err == nil {
		s.dirty = false
	}
	count := len(s.debts)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if wasDirty {
		s.notify(ctx, domain.LedgerEvent{Type: domain.EventTypePersistRecovered, Count: count})
	}
	return nil
}

// Dirty reports whether the in-memory ledger is ahead of the persisted one.
func (s *LedgerStore) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Get returns a copy of the debt with the given ID.
func (s *LedgerStore) Get(id string) (domain.Debt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Debt{}, false
	}
	return s.debts[i].Clone(), true
}

// All returns copies of every debt in insertion order.
func (s *LedgerStore) All() []domain.Debt {
	return s.filter(func(domain.Debt) bool { return true })
}

// Len returns the number of debts.
func (s *LedgerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.debts)
}

func (s *LedgerStore) indexOf(id string) (int, bool) {
	for i := range s.debts {
		if s.debts[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *LedgerStore) missing(id string) error {
	s.logger.Debug().Str("debt_id", id).Msg("debt not found")
	if s.notFoundError {
		return domain.ErrDebtNotFound
	}
	return nil
}

// persistLocked saves the collection and returns the events to publish once
// the lock is released. A failed save marks the store dirty.
func (s *LedgerStore) persistLocked(ctx context.Context, event domain.LedgerEvent) []domain.LedgerEvent {
	now := s.clock.Now()
	event.Count = len(s.debts)
	event.OccurredAt = now

	if err := s.saveLocked(ctx); err != nil {
		s.dirty = true
		s.logger.Error().Err(err).
			Str("key", s.key).
			Str("event_type", string(event.Type)).
			Msg("failed to persist ledger")

		return []domain.LedgerEvent{event, {
			Type:       domain.EventTypePersistFailed,
			DebtID:     event.DebtID,
			Count:      event.Count,
			Err:        err,
			OccurredAt: now,
		}}
	}

	s.dirty = false
	return []domain.LedgerEvent{event}
}

func (s *LedgerStore) saveLocked(ctx context.Context) error {
	data, err := EncodeLedger(s.debts)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, data)
}

func (s *LedgerStore) notify(ctx context.Context, events ...domain.LedgerEvent) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		listeners = append(listeners, sub.listener)
	}
	s.listenersMu.Unlock()

	for _, event := range events {
		if event.OccurredAt.IsZero() {
			event.OccurredAt = s.clock.Now()
		}
		for _, l := range listeners {
			l.OnLedgerEvent(ctx, event)
		}
	}
}
