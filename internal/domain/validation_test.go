package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCounterpartyName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateCounterpartyName("Ann"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateCounterpartyName("   ")
		if !errors.Is(err, ErrInvalidCounterparty) {
			t.Fatalf("expected ErrInvalidCounterparty, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("я", MaxCounterpartyNameLength+1)
		err := ValidateCounterpartyName(tooLong)
		if !errors.Is(err, ErrInvalidCounterparty) {
			t.Fatalf("expected ErrInvalidCounterparty, got %v", err)
		}
	})

	t.Run("multibyte name at limit", func(t *testing.T) {
		if err := ValidateCounterpartyName(strings.Repeat("я", MaxCounterpartyNameLength)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "5000", expected: "5000"},
		{input: " 12.50 ", expected: "12.5"},
		{input: "12,75", expected: "12.75"},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-10", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "input %q: got %s", tt.input, got)
	}
}

func TestParseInterestRate(t *testing.T) {
	t.Parallel()

	rate, err := ParseInterestRate("")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	rate, err = ParseInterestRate("7,5")
	require.NoError(t, err)
	assert.Equal(t, "7.5", rate.String())

	rate, err = ParseInterestRate("0")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	_, err = ParseInterestRate("-1")
	assert.ErrorIs(t, err, ErrInvalidInterestRate)

	_, err = ParseInterestRate("ten")
	assert.ErrorIs(t, err, ErrInvalidInterestRate)
}

func TestParsePayment(t *testing.T) {
	t.Parallel()

	remaining := decimal.NewFromInt(3000)

	amount, err := ParsePayment("2000", remaining)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(2000)))

	amount, err = ParsePayment("3000", remaining)
	require.NoError(t, err)
	assert.True(t, amount.Equal(remaining))

	_, err = ParsePayment("4000", remaining)
	assert.ErrorIs(t, err, ErrPaymentExceedsRemaining)

	_, err = ParsePayment("0", remaining)
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = ParsePayment("", remaining)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	due, err := ParseDueDate("")
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = ParseDueDate("2026-05-01")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.True(t, due.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	due, err = ParseDueDate("2026-05-01T10:00:00+03:00")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.True(t, due.Equal(time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)))

	_, err = ParseDueDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseCategoryAndDirection(t *testing.T) {
	t.Parallel()

	c, err := ParseCategory("Business")
	require.NoError(t, err)
	assert.Equal(t, CategoryBusiness, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, c)

	_, err = ParseCategory("loan")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	d, err := ParseDirection("to")
	require.NoError(t, err)
	assert.Equal(t, DirectionOwedToUser, d)

	d, err = ParseDirection("i-owe")
	require.NoError(t, err)
	assert.Equal(t, DirectionOwedByUser, d)

	d, err = ParseDirection("owedByUser")
	require.NoError(t, err)
	assert.Equal(t, DirectionOwedByUser, d)

	_, err = ParseDirection("")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
