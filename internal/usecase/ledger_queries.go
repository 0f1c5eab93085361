package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
)

// CategorySummary aggregates the debts of one category.
type CategorySummary struct {
	Category    domain.Category
	ActiveCount int
	ActiveTotal decimal.Decimal
	Debts       []domain.Debt
}

// Statistics is a point-in-time snapshot of the ledger aggregates.
type Statistics struct {
	TotalOwedToUser             decimal.Decimal
	TotalOwedToUserWithInterest decimal.Decimal
	TotalOwedByUser             decimal.Decimal
	TotalOwedByUserWithInterest decimal.Decimal
	TotalOutstanding            decimal.Decimal
	TotalSettled                decimal.Decimal
	NetBalance                  decimal.Decimal
	ActiveCount                 int
	SettledCount                int
	OverdueCount                int
	UpcomingCount               int
}

// TotalOwedToUser sums the principal of active debts owed to the user.
func (s *LedgerStore) TotalOwedToUser() decimal.Decimal {
	return s.sum(activeIn(domain.DirectionOwedToUser), principal)
}

// TotalOwedToUserWithInterest sums the interest-adjusted amount of active debts owed to the user.
func (s *LedgerStore) TotalOwedToUserWithInterest() decimal.Decimal {
	return s.sum(activeIn(domain.DirectionOwedToUser), withInterest)
}

// TotalOwedByUser sums the principal of active debts the user owes.
func (s *LedgerStore) TotalOwedByUser() decimal.Decimal {
	return s.sum(activeIn(domain.DirectionOwedByUser), principal)
}

// TotalOwedByUserWithInterest sums the interest-adjusted amount of active debts the user owes.
func (s *LedgerStore) TotalOwedByUserWithInterest() decimal.Decimal {
	return s.sum(activeIn(domain.DirectionOwedByUser), withInterest)
}

// TotalOutstanding sums the principal of every active debt regardless of direction.
func (s *LedgerStore) TotalOutstanding() decimal.Decimal {
	return s.sum(isActive, principal)
}

// TotalSettled sums the principal of settled debts.
func (s *LedgerStore) TotalSettled() decimal.Decimal {
	return s.sum(isSettled, principal)
}

// NetBalance is what the user is owed minus what the user owes, over active debts.
func (s *LedgerStore) NetBalance() decimal.Decimal {
	return s.sum(isActive, func(d *domain.Debt) decimal.Decimal { return d.SignedAmount() })
}

// ActiveDebts returns unsettled debts in insertion order.
func (s *LedgerStore) ActiveDebts() []domain.Debt {
	return s.filter(isActive)
}

// SettledDebts returns settled debts in insertion order.
func (s *LedgerStore) SettledDebts() []domain.Debt {
	return s.filter(isSettled)
}

// OverdueDebts returns active debts whose due date has passed.
func (s *LedgerStore) OverdueDebts() []domain.Debt {
	now := s.clock.Now()
	return s.filter(func(d domain.Debt) bool { return d.IsOverdue(now) })
}

// DebtsByDirection returns every debt, settled or not, with the given direction.
func (s *LedgerStore) DebtsByDirection(dir domain.Direction) []domain.Debt {
	return s.filter(func(d domain.Debt) bool { return d.Direction == dir })
}

// ActiveByDirection returns active debts with the given direction, newest first.
// An empty direction matches both.
func (s *LedgerStore) ActiveByDirection(dir domain.Direction) []domain.Debt {
	debts := s.filter(func(d domain.Debt) bool {
		return !d.IsSettled && (dir == "" || d.Direction == dir)
	})
	domain.SortByCreatedDesc(debts)
	return debts
}

// UpcomingDebts returns active debts falling due within window from now.
func (s *LedgerStore) UpcomingDebts(window time.Duration) []domain.Debt {
	now := s.clock.Now()
	return s.filter(func(d domain.Debt) bool { return d.IsDueWithin(now, window) })
}

// RecentDebts returns up to limit debts, newest first.
func (s *LedgerStore) RecentDebts(limit int) []domain.Debt {
	debts := s.All()
	domain.SortByCreatedDesc(debts)
	if limit >= 0 && len(debts) > limit {
		debts = debts[:limit]
	}
	return debts
}

// GroupByCategory partitions the whole collection, settled and active, by category.
func (s *LedgerStore) GroupByCategory() map[domain.Category][]domain.Debt {
	groups := make(map[domain.Category][]domain.Debt)
	for _, d := range s.All() {
		groups[d.Category] = append(groups[d.Category], d)
	}
	return groups
}

// CategorySummaries returns one summary per non-empty category in display order.
func (s *LedgerStore) CategorySummaries() []CategorySummary {
	groups := s.GroupByCategory()

	summaries := make([]CategorySummary, 0, len(groups))
	for _, c := range domain.Categories {
		debts, ok := groups[c]
		if !ok {
			continue
		}

		summary := CategorySummary{Category: c, ActiveTotal: decimal.Zero, Debts: debts}
		for i := range debts {
			if !debts[i].IsSettled {
				summary.ActiveCount++
				summary.ActiveTotal = summary.ActiveTotal.Add(debts[i].Principal)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Statistics computes every aggregate in a single pass.
func (s *LedgerStore) Statistics(upcomingWindow time.Duration) Statistics {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Statistics{
		TotalOwedToUser:             decimal.Zero,
		TotalOwedToUserWithInterest: decimal.Zero,
		TotalOwedByUser:             decimal.Zero,
		TotalOwedByUserWithInterest: decimal.Zero,
		TotalOutstanding:            decimal.Zero,
		TotalSettled:                decimal.Zero,
		NetBalance:                  decimal.Zero,
	}

	for i := range s.debts {
		d := &s.debts[i]

		if d.IsSettled {
			st.SettledCount++
			st.TotalSettled = st.TotalSettled.Add(d.Principal)
			continue
		}

		st.ActiveCount++
		st.TotalOutstanding = st.TotalOutstanding.Add(d.Principal)
		st.NetBalance = st.NetBalance.Add(d.SignedAmount())

		switch d.Direction {
		case domain.DirectionOwedToUser:
			st.TotalOwedToUser = st.TotalOwedToUser.Add(d.Principal)
			st.TotalOwedToUserWithInterest = st.TotalOwedToUserWithInterest.Add(d.AmountWithInterest())
		case domain.DirectionOwedByUser:
			st.TotalOwedByUser = st.TotalOwedByUser.Add(d.Principal)
			st.TotalOwedByUserWithInterest = st.TotalOwedByUserWithInterest.Add(d.AmountWithInterest())
		}

		if d.IsOverdue(now) {
			st.OverdueCount++
		}
		if d.IsDueWithin(now, upcomingWindow) {
			st.UpcomingCount++
		}
	}

	return st
}

func (s *LedgerStore) filter(keep func(domain.Debt) bool) []domain.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Debt, 0, len(s.debts))
	for _, d := range s.debts {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

func (s *LedgerStore) sum(keep func(domain.Debt) bool, amount func(*domain.Debt) decimal.Decimal) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for i := range s.debts {
		if keep(s.debts[i]) {
			total = total.Add(amount(&s.debts[i]))
		}
	}
	return total
}

func isActive(d domain.Debt) bool  { return !d.IsSettled }
func isSettled(d domain.Debt) bool { return d.IsSettled }

func activeIn(dir domain.Direction) func(domain.Debt) bool {
	return func(d domain.Debt) bool { return !d.IsSettled && d.Direction == dir }
}

func principal(d *domain.Debt) decimal.Decimal    { return d.Principal }
func withInterest(d *domain.Debt) decimal.Decimal { return d.AmountWithInterest() }
