package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/debtnet/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the persisted document differs from memory.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: persisted document differs from memory")
)

// ConsistencyReport compares the in-memory collection with the persisted one.
type ConsistencyReport struct {
	InMemory  int
	Persisted int
	// Unsaved lists IDs held in memory but absent from storage.
	Unsaved []string
	// Stale lists IDs present in storage but no longer in memory.
	Stale []string
	// Changed lists IDs whose stored record differs.
	Changed    []string
	Consistent bool
}

// CheckConsistency re-reads the persisted document and compares it record by
// record with the in-memory collection.
func (s *LedgerStore) CheckConsistency(ctx context.Context) (ConsistencyReport, error) {
	memory := s.All()
	report := ConsistencyReport{InMemory: len(memory)}

	var persisted []domain.Debt
	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
	case err != nil:
		return report, err
	default:
		persisted, err = DecodeLedger(data)
		if err != nil {
			return report, fmt.Errorf("%w: %v", ErrInconsistentLedger, err)
		}
	}
	report.Persisted = len(persisted)

	stored := make(map[string]domain.Debt, len(persisted))
	for _, d := range persisted {
		stored[d.ID] = d
	}

	seen := make(map[string]struct{}, len(memory))
	for _, d := range memory {
		seen[d.ID] = struct{}{}
		p, ok := stored[d.ID]
		switch {
		case !ok:
			report.Unsaved = append(report.Unsaved, d.ID)
		case !sameDebt(d, p):
			report.Changed = append(report.Changed, d.ID)
		}
	}
	for _, d := range persisted {
		if _, ok := seen[d.ID]; !ok {
			report.Stale = append(report.Stale, d.ID)
		}
	}

	report.Consistent = len(report.Unsaved) == 0 && len(report.Stale) == 0 && len(report.Changed) == 0
	if !report.Consistent {
		return report, ErrInconsistentLedger
	}
	return report, nil
}

func sameDebt(a, b domain.Debt) bool {
	if a.ID != b.ID ||
		a.CounterpartyName != b.CounterpartyName ||
		a.Note != b.Note ||
		a.IsSettled != b.IsSettled ||
		a.Category != b.Category ||
		a.Direction != b.Direction {
		return false
	}

	if !a.Principal.Equal(b.Principal) ||
		!a.InterestRatePercent.Equal(b.InterestRatePercent) ||
		!a.PaymentsMade.Equal(b.PaymentsMade) {
		return false
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return false
	}

	switch {
	case a.DueAt == nil && b.DueAt == nil:
		return true
	case a.DueAt == nil || b.DueAt == nil:
		return false
	default:
		return a.DueAt.Equal(*b.DueAt)
	}
}
