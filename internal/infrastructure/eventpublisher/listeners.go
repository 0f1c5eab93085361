package eventpublisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/infrastructure/metrics"
	"github.com/iho/debtnet/internal/usecase"
)

// LogListener writes every ledger event to the logger.
type LogListener struct {
	logger zerolog.Logger
}

// NewLogListener creates a new LogListener.
func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

// OnLedgerEvent logs the event.
func (l *LogListener) OnLedgerEvent(_ context.Context, event domain.LedgerEvent) {
	e := l.logger.Debug()
	if event.Type == domain.EventTypePersistFailed {
		e = l.logger.Warn().Err(event.Err)
	}

	e = e.Str("event_type", string(event.Type)).
		Int("count", event.Count).
		Time("occurred_at", event.OccurredAt)

	if event.DebtID != "" {
		e = e.Str("debt_id", event.DebtID)
	}
	if event.Type == domain.EventTypePaymentApplied {
		e = e.Str("amount", event.Amount.String())
	}

	e.Msg("ledger event")
}

// StatsSource provides the aggregates mirrored into gauges.
type StatsSource interface {
	Statistics(upcomingWindow time.Duration) usecase.Statistics
}

// MetricsListener counts ledger events and refreshes snapshot gauges after each one.
type MetricsListener struct {
	metrics *metrics.Metrics
	source  StatsSource
	window  time.Duration
}

// NewMetricsListener creates a new MetricsListener.
func NewMetricsListener(m *metrics.Metrics, source StatsSource, upcomingWindow time.Duration) *MetricsListener {
	if upcomingWindow <= 0 {
		upcomingWindow = usecase.DefaultUpcomingWindow
	}
	return &MetricsListener{metrics: m, source: source, window: upcomingWindow}
}

// OnLedgerEvent updates counters and gauges.
func (l *MetricsListener) OnLedgerEvent(_ context.Context, event domain.LedgerEvent) {
	switch event.Type {
	case domain.EventTypePersistFailed:
		l.metrics.PersistFailures.Inc()
		return
	case domain.EventTypePersistRecovered:
		return
	case domain.EventTypeLedgerLoaded:
		l.metrics.LedgerLoads.Inc()
	case domain.EventTypePaymentApplied:
		l.metrics.PaymentAmount.Observe(event.Amount.InexactFloat64())
		l.metrics.LedgerOperations.WithLabelValues(operationLabel(event.Type)).Inc()
	default:
		l.metrics.LedgerOperations.WithLabelValues(operationLabel(event.Type)).Inc()
	}

	l.Refresh()
}

// Refresh copies the current aggregates into the gauges.
func (l *MetricsListener) Refresh() {
	st := l.source.Statistics(l.window)

	l.metrics.Debts.WithLabelValues("active").Set(float64(st.ActiveCount))
	l.metrics.Debts.WithLabelValues("settled").Set(float64(st.SettledCount))
	l.metrics.Debts.WithLabelValues("overdue").Set(float64(st.OverdueCount))
	l.metrics.Debts.WithLabelValues("upcoming").Set(float64(st.UpcomingCount))

	l.metrics.OwedAmount.WithLabelValues(string(domain.DirectionOwedToUser), "false").Set(st.TotalOwedToUser.InexactFloat64())
	l.metrics.OwedAmount.WithLabelValues(string(domain.DirectionOwedToUser), "true").Set(st.TotalOwedToUserWithInterest.InexactFloat64())
	l.metrics.OwedAmount.WithLabelValues(string(domain.DirectionOwedByUser), "false").Set(st.TotalOwedByUser.InexactFloat64())
	l.metrics.OwedAmount.WithLabelValues(string(domain.DirectionOwedByUser), "true").Set(st.TotalOwedByUserWithInterest.InexactFloat64())

	l.metrics.NetBalance.Set(st.NetBalance.InexactFloat64())
}

func operationLabel(t domain.EventType) string {
	switch t {
	case domain.EventTypeDebtAdded:
		return "add"
	case domain.EventTypeDebtUpdated:
		return "update"
	case domain.EventTypeDebtDeleted:
		return "delete"
	case domain.EventTypeSettledToggled:
		return "toggle_settled"
	case domain.EventTypePaymentApplied:
		return "payment"
	case domain.EventTypeLedgerCleared:
		return "clear"
	default:
		return string(t)
	}
}
