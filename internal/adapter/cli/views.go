package cli

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/usecase"
)

// DebtView is the JSON shape of a debt with its derived amounts.
type DebtView struct {
	ID                  string           `json:"id"`
	Counterparty        string           `json:"counterparty"`
	Direction           domain.Direction `json:"direction"`
	Category            domain.Category  `json:"category"`
	Principal           decimal.Decimal  `json:"principal"`
	InterestRatePercent decimal.Decimal  `json:"interestRatePercent"`
	AmountWithInterest  decimal.Decimal  `json:"amountWithInterest"`
	PaymentsMade        decimal.Decimal  `json:"paymentsMade"`
	Remaining           decimal.Decimal  `json:"remaining"`
	Note                string           `json:"note,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	DueAt               *time.Time       `json:"dueAt"`
	Settled             bool             `json:"settled"`
	Overdue             bool             `json:"overdue"`
}

// DebtFromDomain converts a domain debt to a view.
func DebtFromDomain(d domain.Debt, now time.Time) DebtView {
	return DebtView{
		ID:                  d.ID,
		Counterparty:        d.CounterpartyName,
		Direction:           d.Direction,
		Category:            d.Category,
		Principal:           d.Principal,
		InterestRatePercent: d.InterestRatePercent,
		AmountWithInterest:  d.AmountWithInterest(),
		PaymentsMade:        d.PaymentsMade,
		Remaining:           d.RemainingAmount(),
		Note:                d.Note,
		CreatedAt:           d.CreatedAt,
		DueAt:               d.DueAt,
		Settled:             d.IsSettled,
		Overdue:             d.IsOverdue(now),
	}
}

// DebtsFromDomain converts domain debts to views.
func DebtsFromDomain(debts []domain.Debt, now time.Time) []DebtView {
	result := make([]DebtView, len(debts))
	for i, d := range debts {
		result[i] = DebtFromDomain(d, now)
	}
	return result
}

// StatsView is the JSON shape of the ledger statistics.
type StatsView struct {
	TotalOwedToUser             decimal.Decimal `json:"totalOwedToUser"`
	TotalOwedToUserWithInterest decimal.Decimal `json:"totalOwedToUserWithInterest"`
	TotalOwedByUser             decimal.Decimal `json:"totalOwedByUser"`
	TotalOwedByUserWithInterest decimal.Decimal `json:"totalOwedByUserWithInterest"`
	TotalOutstanding            decimal.Decimal `json:"totalOutstanding"`
	TotalSettled                decimal.Decimal `json:"totalSettled"`
	NetBalance                  decimal.Decimal `json:"netBalance"`
	ActiveCount                 int             `json:"activeCount"`
	SettledCount                int             `json:"settledCount"`
	OverdueCount                int             `json:"overdueCount"`
	UpcomingCount               int             `json:"upcomingCount"`
	UpcomingWindow              string          `json:"upcomingWindow"`
}

// StatsFromUsecase converts statistics to a view.
func StatsFromUsecase(st usecase.Statistics, window time.Duration) StatsView {
	return StatsView{
		TotalOwedToUser:             st.TotalOwedToUser,
		TotalOwedToUserWithInterest: st.TotalOwedToUserWithInterest,
		TotalOwedByUser:             st.TotalOwedByUser,
		TotalOwedByUserWithInterest: st.TotalOwedByUserWithInterest,
		TotalOutstanding:            st.TotalOutstanding,
		TotalSettled:                st.TotalSettled,
		NetBalance:                  st.NetBalance,
		ActiveCount:                 st.ActiveCount,
		SettledCount:                st.SettledCount,
		OverdueCount:                st.OverdueCount,
		UpcomingCount:               st.UpcomingCount,
		UpcomingWindow:              window.String(),
	}
}

// CategoryView is the JSON shape of a category summary.
type CategoryView struct {
	Category    domain.Category `json:"category"`
	Label       string          `json:"label"`
	ActiveCount int             `json:"activeCount"`
	ActiveTotal decimal.Decimal `json:"activeTotal"`
	Debts       []DebtView      `json:"debts"`
}

// CategoriesFromUsecase converts category summaries to views.
func CategoriesFromUsecase(summaries []usecase.CategorySummary, now time.Time) []CategoryView {
	result := make([]CategoryView, len(summaries))
	for i, s := range summaries {
		result[i] = CategoryView{
			Category:    s.Category,
			Label:       s.Category.Label(),
			ActiveCount: s.ActiveCount,
			ActiveTotal: s.ActiveTotal,
			Debts:       DebtsFromDomain(s.Debts, now),
		}
	}
	return result
}

// ConsistencyView is the JSON shape of a consistency report.
type ConsistencyView struct {
	Consistent bool     `json:"consistent"`
	InMemory   int      `json:"inMemory"`
	Persisted  int      `json:"persisted"`
	Unsaved    []string `json:"unsaved,omitempty"`
	Changed    []string `json:"changed,omitempty"`
	Stale      []string `json:"stale,omitempty"`
}

// ConsistencyFromUsecase converts a consistency report to a view.
func ConsistencyFromUsecase(r usecase.ConsistencyReport) ConsistencyView {
	return ConsistencyView{
		Consistent: r.Consistent,
		InMemory:   r.InMemory,
		Persisted:  r.Persisted,
		Unsaved:    r.Unsaved,
		Changed:    r.Changed,
		Stale:      r.Stale,
	}
}
