package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records submission outcomes for the checkout path.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	refused  *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"storefront"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Checkout submissions that returned a redirect URL.",
	}, []string{"storefront"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failure_total",
		Help: "Checkout submissions that failed.",
	}, []string{"storefront"})
	refused := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_refused_total",
		Help: "Checkout submissions refused by the in-flight or empty-cart guard.",
	}, []string{"storefront", "reason"})
	reg.MustRegister(duration, success, failure, refused)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		refused:  refused,
	}
}

// ObserveDuration records the round-trip time for a submission.
func (c *CheckoutMetrics) ObserveDuration(storefront string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(storefront)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (c *CheckoutMetrics) IncSuccess(storefront string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(storefront)).Inc()
}

// IncFailure increments the failure counter.
func (c *CheckoutMetrics) IncFailure(storefront string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(storefront)).Inc()
}

// IncRefused increments the guard-refusal counter for the given reason.
func (c *CheckoutMetrics) IncRefused(storefront, reason string) {
	if c == nil || c.refused == nil {
		return
	}
	c.refused.WithLabelValues(normalizeLabel(storefront), normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
