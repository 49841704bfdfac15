package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQuoteMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.IncSuccess(3)
	m.IncFailure("DEPENDENCY_ERROR")
	m.IncFailure("")
	m.ObserveDuration("success", 120*time.Millisecond)

	if got := testutil.ToFloat64(m.success); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("DEPENDENCY_ERROR")); got != 1 {
		t.Fatalf("expected 1 dependency failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty code to normalize to unknown, got %v", got)
	}
}

func TestQuoteMetricsNilSafe(t *testing.T) {
	var m *QuoteMetrics
	m.IncSuccess(1)
	m.IncFailure("x")
	m.ObserveDuration("success", time.Second)

	empty := NewQuoteMetrics(nil)
	empty.IncSuccess(1)
	empty.IncFailure("x")
}
