package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/pricing"
)

// PricingMetrics tracks pricing lookup behaviour.
//
// Metrics:
//   - atlas_core_pricing_lookups_total: Lookups by provider and confidence
//   - atlas_core_pricing_lookup_duration_seconds: Lookup latency (histogram)
//   - atlas_core_pricing_cache_hits_total / misses_total: Quote cache effectiveness
//   - atlas_core_pricing_fallback_total: Static-table rates served
type PricingMetrics struct {
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	fallbacks *prometheus.CounterVec
}

var _ pricing.Observer = (*PricingMetrics)(nil)

// NewPricingMetrics creates and registers pricing metrics with the provided registry.
func NewPricingMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PricingMetrics {
	pm := &PricingMetrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pricing_lookups_total",
				Help:      "Pricing lookups by provider and served confidence",
			},
			[]string{"provider", "confidence"},
		),

		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pricing_lookup_duration_seconds",
				Help:      "Pricing lookup latency in seconds",
				// Cache hits land in the microsecond buckets, live
				// provider fetches in the multi-second tail.
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider"},
		),

		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pricing_cache_hits_total",
				Help:      "Quote cache hits by provider",
			},
			[]string{"provider"},
		),

		cacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pricing_cache_misses_total",
				Help:      "Quote cache misses by provider",
			},
			[]string{"provider"},
		),

		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pricing_fallback_total",
				Help:      "Static fallback rates served by provider",
			},
			[]string{"provider"},
		),
	}

	registry.MustRegister(
		pm.lookups,
		pm.lookupDuration,
		pm.cacheHits,
		pm.cacheMisses,
		pm.fallbacks,
	)

	return pm
}

// LookupCompleted records one resolved lookup and its latency.
func (pm *PricingMetrics) LookupCompleted(provider string, confidence pricing.Confidence, elapsed time.Duration) {
	pm.lookups.WithLabelValues(provider, string(confidence)).Inc()
	pm.lookupDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// CacheHit records a quote served from the cache.
func (pm *PricingMetrics) CacheHit(provider string) {
	pm.cacheHits.WithLabelValues(provider).Inc()
}

// CacheMiss records a lookup that had to go past the cache.
func (pm *PricingMetrics) CacheMiss(provider string) {
	pm.cacheMisses.WithLabelValues(provider).Inc()
}

// FallbackServed records a static-table rate being served.
func (pm *PricingMetrics) FallbackServed(provider string) {
	pm.fallbacks.WithLabelValues(provider).Inc()
}
