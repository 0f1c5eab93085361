package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/infrastructure/metrics"
	"github.com/iho/debtnet/internal/usecase"
)

type stubStats struct {
	stats  usecase.Statistics
	calls  int
	window time.Duration
}

func (s *stubStats) Statistics(window time.Duration) usecase.Statistics {
	s.calls++
	s.window = window
	return s.stats
}

func TestLogListenerWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogListener(zerolog.New(&buf).Level(zerolog.DebugLevel))

	l.OnLedgerEvent(context.Background(), domain.LedgerEvent{
		Type:   domain.EventTypePaymentApplied,
		DebtID: "d1",
		Amount: decimal.NewFromInt(250),
		Count:  3,
	})

	out := buf.String()
	for _, want := range []string{`"event_type":"debt.payment_applied"`, `"debt_id":"d1"`, `"amount":"250"`, `"level":"debug"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestLogListenerWarnsOnPersistFailure(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogListener(zerolog.New(&buf).Level(zerolog.WarnLevel))

	l.OnLedgerEvent(context.Background(), domain.LedgerEvent{Type: domain.EventTypeDebtAdded})
	if buf.Len() != 0 {
		t.Fatalf("expected routine events at debug level, got %s", buf.String())
	}

	l.OnLedgerEvent(context.Background(), domain.LedgerEvent{
		Type: domain.EventTypePersistFailed,
		Err:  errors.New("disk full"),
	})
	if !strings.Contains(buf.String(), "disk full") {
		t.Fatalf("expected persist failure to be logged, got %s", buf.String())
	}
}

func TestMetricsListenerCountsAndRefreshes(t *testing.T) {
	m := metrics.New()
	source := &stubStats{stats: usecase.Statistics{
		TotalOwedToUser:             decimal.NewFromInt(8000),
		TotalOwedToUserWithInterest: decimal.NewFromInt(8600),
		TotalOwedByUser:             decimal.NewFromInt(15000),
		TotalOwedByUserWithInterest: decimal.NewFromInt(16500),
		NetBalance:                  decimal.NewFromInt(-7000),
		ActiveCount:                 3,
		SettledCount:                1,
		OverdueCount:                1,
	}}
	l := NewMetricsListener(m, source, 0)
	ctx := context.Background()

	l.OnLedgerEvent(ctx, domain.LedgerEvent{Type: domain.EventTypeDebtAdded})
	l.OnLedgerEvent(ctx, domain.LedgerEvent{Type: domain.EventTypePaymentApplied, Amount: decimal.NewFromInt(100)})
	l.OnLedgerEvent(ctx, domain.LedgerEvent{Type: domain.EventTypePersistFailed})

	if got := testutil.ToFloat64(m.LedgerOperations.WithLabelValues("add")); got != 1 {
		t.Fatalf("expected 1 add, got %v", got)
	}
	if got := testutil.ToFloat64(m.LedgerOperations.WithLabelValues("payment")); got != 1 {
		t.Fatalf("expected 1 payment, got %v", got)
	}
	if got := testutil.ToFloat64(m.PersistFailures); got != 1 {
		t.Fatalf("expected 1 persist failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.Debts.WithLabelValues("active")); got != 3 {
		t.Fatalf("expected 3 active debts, got %v", got)
	}
	if got := testutil.ToFloat64(m.OwedAmount.WithLabelValues("owedByUser", "true")); got != 16500 {
		t.Fatalf("expected 16500 owed by user with interest, got %v", got)
	}
	if got := testutil.ToFloat64(m.NetBalance); got != -7000 {
		t.Fatalf("expected net balance -7000, got %v", got)
	}

	if source.calls != 2 {
		t.Fatalf("expected gauges refreshed after each ledger change only, got %d refreshes", source.calls)
	}
	if source.window != usecase.DefaultUpcomingWindow {
		t.Fatalf("expected default window, got %s", source.window)
	}
}
