package cli

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/usecase"
)

// LedgerService defines the behavior the commands need from the ledger store.
type LedgerService interface {
	Add(ctx context.Context, input usecase.DebtInput) (domain.Debt, error)
	Update(ctx context.Context, debt domain.Debt) error
	Delete(ctx context.Context, id string) error
	ToggleSettled(ctx context.Context, id string) error
	ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) error
	ClearAll(ctx context.Context) error
	Flush(ctx context.Context) error
	Dirty() bool

	Get(id string) (domain.Debt, bool)
	All() []domain.Debt
	SettledDebts() []domain.Debt
	OverdueDebts() []domain.Debt
	ActiveByDirection(dir domain.Direction) []domain.Debt
	UpcomingDebts(window time.Duration) []domain.Debt
	RecentDebts(limit int) []domain.Debt
	CategorySummaries() []usecase.CategorySummary
	Statistics(upcomingWindow time.Duration) usecase.Statistics
	CheckConsistency(ctx context.Context) (usecase.ConsistencyReport, error)
}

var _ LedgerService = (*usecase.LedgerStore)(nil)
