package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	m := New()

	if m.LedgerOperations == nil || m.Debts == nil || m.OwedAmount == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.LedgerOperations.WithLabelValues("add").Inc()
	m.Debts.WithLabelValues("active").Set(3)

	metricFamilies, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.LedgerOperations.WithLabelValues("add")); got != 1 {
		t.Fatalf("expected add counter 1, got %v", got)
	}
}

func TestNewUsesIndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New()
	b := New()

	a.PersistFailures.Inc()

	if got := testutil.ToFloat64(b.PersistFailures); got != 0 {
		t.Fatalf("expected independent counters, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.NetBalance.Set(-7000)

	path := filepath.Join(t.TempDir(), "debtnet.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("failed to write textfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}

	if !strings.Contains(string(data), "debtnet_net_balance -7000") {
		t.Fatalf("expected net balance sample, got:\n%s", data)
	}
}
