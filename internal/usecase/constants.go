package usecase

import "time"

const (
	// DefaultStorageKey is the slot the whole ledger document is written under.
	DefaultStorageKey = "SavedDebts"

	// DefaultUpcomingWindow is how far ahead a due date counts as upcoming.
	DefaultUpcomingWindow = 7 * 24 * time.Hour

	// DefaultRecentLimit is the number of debts shown as recent activity.
	DefaultRecentLimit = 5
)
