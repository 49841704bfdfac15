package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records submission outcomes for the quote pipeline.
type QuoteMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
	items    prometheus.Histogram
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_submit_duration_seconds",
		Help:    "Duration of quote submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_submit_success_total",
		Help: "Successfully persisted quote requests.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submit_failure_total",
		Help: "Failed quote submissions by error code.",
	}, []string{"code"})
	items := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_submit_line_items",
		Help:    "Line items per submitted quote request.",
		Buckets: []float64{1, 2, 5, 10, 20, 50},
	})
	reg.MustRegister(duration, success, failure, items)
	return &QuoteMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		items:    items,
	}
}

// ObserveDuration records the submission duration for an outcome label.
func (q *QuoteMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter and records line-item volume.
func (q *QuoteMetrics) IncSuccess(lineItems int) {
	if q == nil || q.success == nil {
		return
	}
	q.success.Inc()
	q.items.Observe(float64(lineItems))
}

// IncFailure increments the failure counter for the given error code.
func (q *QuoteMetrics) IncFailure(code string) {
	if q == nil || q.failure == nil {
		return
	}
	q.failure.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
