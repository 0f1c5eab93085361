package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
)

// debtDocument is the persisted shape of one debt.
type debtDocument struct {
	ID                  string      `json:"id"`
	CounterpartyName    string      `json:"counterpartyName"`
	Principal           json.Number `json:"principal"`
	Note                string      `json:"note"`
	CreatedAt           time.Time   `json:"createdAt"`
	DueAt               *time.Time  `json:"dueAt"`
	IsSettled           bool        `json:"isSettled"`
	Category            string      `json:"category"`
	Direction           string      `json:"direction"`
	InterestRatePercent json.Number `json:"interestRatePercent"`
	PaymentsMade        json.Number `json:"paymentsMade"`
}

// EncodeLedger serializes the collection as one JSON array.
func EncodeLedger(debts []domain.Debt) ([]byte, error) {
	docs := make([]debtDocument, 0, len(debts))
	for _, d := range debts {
		docs = append(docs, debtDocument{
			ID:                  d.ID,
			CounterpartyName:    d.CounterpartyName,
			Principal:           json.Number(d.Principal.String()),
			Note:                d.Note,
			CreatedAt:           d.CreatedAt,
			DueAt:               d.DueAt,
			IsSettled:           d.IsSettled,
			Category:            string(d.Category),
			Direction:           string(d.Direction),
			InterestRatePercent: json.Number(d.InterestRatePercent.String()),
			PaymentsMade:        json.Number(d.PaymentsMade.String()),
		})
	}
	return json.Marshal(docs)
}

// DecodeLedger parses a ledger document. Every record must satisfy the
// domain validation and ids must be unique, otherwise the whole document
// is rejected.
func DecodeLedger(data []byte) ([]domain.Debt, error) {
	var docs []debtDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	debts := make([]domain.Debt, 0, len(docs))

	for i, doc := range docs {
		d, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if d.ID == "" {
			return nil, fmt.Errorf("record %d: missing id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, d.ID)
		}
		seen[d.ID] = struct{}{}

		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, d.ID, err)
		}

		debts = append(debts, d)
	}

	return debts, nil
}

func (doc debtDocument) toDomain() (domain.Debt, error) {
	principal, err := numberOrZero(doc.Principal)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("principal: %w", err)
	}
	rate, err := numberOrZero(doc.InterestRatePercent)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("interestRatePercent: %w", err)
	}
	paid, err := numberOrZero(doc.PaymentsMade)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("paymentsMade: %w", err)
	}

	return domain.Debt{
		ID:                  doc.ID,
		CounterpartyName:    doc.CounterpartyName,
		Principal:           principal,
		Note:                doc.Note,
		CreatedAt:           doc.CreatedAt,
		DueAt:               doc.DueAt,
		IsSettled:           doc.IsSettled,
		Category:            domain.Category(doc.Category),
		Direction:           domain.Direction(doc.Direction),
		InterestRatePercent: rate,
		PaymentsMade:        paid,
	}, nil
}

// numberOrZero treats an omitted number as zero so older documents without
// interest or payment fields still load.
func numberOrZero(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
