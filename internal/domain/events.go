package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a change to the ledger.
type EventType string

// Event types
const (
	EventTypeDebtAdded        EventType = "debt.added"
	EventTypeDebtUpdated      EventType = "debt.updated"
	EventTypeDebtDeleted      EventType = "debt.deleted"
	EventTypeSettledToggled   EventType = "debt.settled_toggled"
	EventTypePaymentApplied   EventType = "debt.payment_applied"
	EventTypeLedgerCleared    EventType = "ledger.cleared"
	EventTypeLedgerLoaded     EventType = "ledger.loaded"
	EventTypePersistFailed    EventType = "ledger.persist_failed"
	EventTypePersistRecovered EventType = "ledger.persist_recovered"
)

// LedgerEvent is emitted by the store after a change has been applied and persisted.
type LedgerEvent struct {
	Type       EventType
	DebtID     string
	Amount     decimal.Decimal // payment amount for EventTypePaymentApplied
	Count      int             // collection size after the change
	Err        error           // persistence error for EventTypePersistFailed
	OccurredAt time.Time
}
