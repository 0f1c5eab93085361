package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a debt by relationship with the counterparty.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryBusiness Category = "business"
	CategoryFamily   Category = "family"
	CategoryFriend   Category = "friend"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPersonal,
	CategoryBusiness,
	CategoryFamily,
	CategoryFriend,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryBusiness, CategoryFamily, CategoryFriend, CategoryOther:
		return true
	}
	return false
}

// Direction tells whether money is owed to the user or by the user.
type Direction string

const (
	DirectionOwedToUser Direction = "owedToUser"
	DirectionOwedByUser Direction = "owedByUser"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionOwedToUser || d == DirectionOwedByUser
}

// Debt is a single ledger record.
type Debt struct {
	ID                  string
	CounterpartyName    string
	Principal           decimal.Decimal
	Note                string
	CreatedAt           time.Time
	DueAt               *time.Time
	IsSettled           bool
	Category            Category
	Direction           Direction
	InterestRatePercent decimal.Decimal
	PaymentsMade        decimal.Decimal
}

// HasInterest reports whether an interest rate applies.
func (d *Debt) HasInterest() bool {
	return d.InterestRatePercent.IsPositive()
}

// AmountWithInterest returns principal * (1 + rate/100).
func (d *Debt) AmountWithInterest() decimal.Decimal {
	if !d.HasInterest() {
		return d.Principal
	}
	return d.Principal.Mul(decimal.NewFromInt(1).Add(d.InterestRatePercent.Shift(-2)))
}

// RemainingAmount returns the interest-adjusted amount minus payments made.
func (d *Debt) RemainingAmount() decimal.Decimal {
	return d.AmountWithInterest().Sub(d.PaymentsMade)
}

// IsOverdue reports whether an active debt is past its due date.
func (d *Debt) IsOverdue(now time.Time) bool {
	return !d.IsSettled && d.DueAt != nil && now.After(*d.DueAt)
}

// IsDueWithin reports whether an active debt falls due in (now, now+window].
func (d *Debt) IsDueWithin(now time.Time, window time.Duration) bool {
	if d.IsSettled || d.DueAt == nil {
		return false
	}
	return d.DueAt.After(now) && !d.DueAt.After(now.Add(window))
}

// SignedAmount returns the principal, negated for debts owed by the user.
func (d *Debt) SignedAmount() decimal.Decimal {
	return d.sign(d.Principal)
}

// SignedAmountWithInterest applies the direction sign to AmountWithInterest.
func (d *Debt) SignedAmountWithInterest() decimal.Decimal {
	return d.sign(d.AmountWithInterest())
}

func (d *Debt) sign(amount decimal.Decimal) decimal.Decimal {
	if d.Direction == DirectionOwedByUser {
		return amount.Neg()
	}
	return amount
}

// Validate checks the record invariants.
func (d *Debt) Validate() error {
	if err := ValidateCounterpartyName(d.CounterpartyName); err != nil {
		return err
	}
	if !d.Principal.IsPositive() {
		return ErrInvalidAmount
	}
	if d.InterestRatePercent.IsNegative() {
		return ErrInvalidInterestRate
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category)
	}
	if !d.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, d.Direction)
	}
	if d.PaymentsMade.IsNegative() {
		return fmt.Errorf("%w: payments made cannot be negative", ErrInvalidPayment)
	}
	if d.PaymentsMade.GreaterThan(d.AmountWithInterest()) {
		return fmt.Errorf("%w: payments made %s exceed %s", ErrPaymentExceedsRemaining,
			d.PaymentsMade, d.AmountWithInterest())
	}
	return nil
}

// Clone returns a deep copy; DueAt is not shared with the original.
func (d Debt) Clone() Debt {
	if d.DueAt != nil {
		due := *d.DueAt
		d.DueAt = &due
	}
	return d
}

// SortByCreatedDesc orders debts newest first, keeping insertion order on ties.
func SortByCreatedDesc(debts []Debt) {
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].CreatedAt.After(debts[j].CreatedAt)
	})
}

// Label returns a human readable name for the category.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
