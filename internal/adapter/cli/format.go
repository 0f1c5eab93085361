package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
)

// Formatter renders values for terminal output. Amounts are rounded to whole
// units and rates to one decimal place; stored values keep full precision.
type Formatter struct {
	Currency string
}

// Amount formats a money amount.
func (f Formatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(0)
	if s == "-0" {
		s = "0"
	}
	if f.Currency == "" {
		return s
	}
	return s + " " + f.Currency
}

// Rate formats an interest rate.
func (f Formatter) Rate(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Date formats an optional due date.
func (f Formatter) Date(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(domain.DueDateLayout)
}

func directionLabel(d domain.Direction) string {
	switch d {
	case domain.DirectionOwedToUser:
		return "owes me"
	case domain.DirectionOwedByUser:
		return "I owe"
	default:
		return string(d)
	}
}

func statusLabel(d *domain.Debt, now time.Time) string {
	switch {
	case d.IsSettled:
		return "settled"
	case d.IsOverdue(now):
		return "overdue"
	default:
		return "active"
	}
}

func windowLabel(window time.Duration) string {
	day := 24 * time.Hour
	if window > 0 && window%day == 0 {
		return fmt.Sprintf("%dd", window/day)
	}
	return window.String()
}
