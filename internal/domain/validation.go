package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxCounterpartyNameLength = 255
	DueDateLayout             = "2006-01-02"
)

var categoryAliases = map[string]Category{
	"personal": CategoryPersonal,
	"business": CategoryBusiness,
	"family":   CategoryFamily,
	"friend":   CategoryFriend,
	"friends":  CategoryFriend,
	"other":    CategoryOther,
}

var directionAliases = map[string]Direction{
	"owedtouser": DirectionOwedToUser,
	"owed-to-me": DirectionOwedToUser,
	"to":         DirectionOwedToUser,
	"owedbyuser": DirectionOwedByUser,
	"i-owe":      DirectionOwedByUser,
	"by":         DirectionOwedByUser,
}

// ValidateCounterpartyName validates the display name of a counterparty.
func ValidateCounterpartyName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCounterparty)
	}

	if utf8.RuneCountInString(name) > MaxCounterpartyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCounterparty, MaxCounterpartyNameLength)
	}

	return nil
}

// ParseAmount parses user-entered money text. A comma is accepted as the
// decimal separator. The result is always positive.
func ParseAmount(text string) (decimal.Decimal, error) {
	value, err := parseDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	if !value.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return value, nil
}

// ParseInterestRate parses an interest percentage. Empty text means no interest.
func ParseInterestRate(text string) (decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, nil
	}

	value, err := parseDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidInterestRate, err)
	}

	if value.IsNegative() {
		return decimal.Zero, ErrInvalidInterestRate
	}

	return value, nil
}

// ParsePayment parses a payment amount and checks it against the remaining balance.
func ParsePayment(text string, remaining decimal.Decimal) (decimal.Decimal, error) {
	value, err := parseDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	if err := ValidatePayment(value, remaining); err != nil {
		return decimal.Zero, err
	}

	return value, nil
}

// ValidatePayment checks 0 < amount <= remaining.
func ValidatePayment(amount, remaining decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidPayment
	}

	if amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: %s > %s", ErrPaymentExceedsRemaining, amount, remaining)
	}

	return nil
}

// ParseDueDate parses a calendar date (2006-01-02) or an RFC3339 timestamp.
// Empty text means no due date.
func ParseDueDate(text string) (*time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if t, err := time.Parse(DueDateLayout, text); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a date", ErrInvalidDate, text)
	}

	t = t.UTC()
	return &t, nil
}

// ParseCategory resolves a category name.
func ParseCategory(text string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return CategoryOther, nil
	}

	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, text)
}

// ParseDirection resolves a direction name or alias.
func ParseDirection(text string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(text))

	if d, ok := directionAliases[key]; ok {
		return d, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, text)
}

func parseDecimal(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, fmt.Errorf("value is empty")
	}

	text = strings.ReplaceAll(text, ",", ".")

	return decimal.NewFromString(text)
}
