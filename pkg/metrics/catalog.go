package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records storefront fetch outcomes.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	fetches  *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of storefront catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"storefront"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_total",
		Help: "Storefront catalog fetches by outcome.",
	}, []string{"storefront", "outcome"})
	reg.MustRegister(duration, fetches)
	return &CatalogMetrics{
		duration: duration,
		fetches:  fetches,
	}
}

// ObserveFetch records one fetch with its outcome and duration.
func (c *CatalogMetrics) ObserveFetch(storefront, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	if c.duration != nil {
		c.duration.WithLabelValues(normalizeLabel(storefront)).Observe(duration.Seconds())
	}
	if c.fetches != nil {
		c.fetches.WithLabelValues(normalizeLabel(storefront), normalizeLabel(outcome)).Inc()
	}
}
