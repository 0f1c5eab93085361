package domain

import "errors"

var (
	// Record errors
	ErrInvalidCounterparty = errors.New("invalid counterparty name")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidInterestRate = errors.New("interest rate must not be negative")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidDirection    = errors.New("invalid direction")
	ErrInvalidDate         = errors.New("invalid date")
	ErrDebtNotFound        = errors.New("debt not found")

	// Payment errors
	ErrInvalidPayment          = errors.New("payment must be positive")
	ErrPaymentExceedsRemaining = errors.New("payment exceeds remaining amount")
)
