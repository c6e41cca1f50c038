package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tokenworks/atlas/pkg/config"
)

// AnalysisMetrics tracks cost-analysis runs.
//
// Metrics:
//   - atlas_core_analyses_total: Completed analyses by model
//   - atlas_core_analysis_duration_seconds: End-to-end analysis latency (histogram)
//   - atlas_core_estimates_total: Estimates produced by approach
type AnalysisMetrics struct {
	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	estimates        *prometheus.CounterVec
}

// NewAnalysisMetrics creates and registers analysis metrics with the provided registry.
func NewAnalysisMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AnalysisMetrics {
	am := &AnalysisMetrics{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analyses_total",
				Help:      "Completed cost analyses by model",
			},
			[]string{"model"},
		),

		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_duration_seconds",
				Help:      "End-to-end analysis latency in seconds",
				// An analysis is cheap when quotes are cached and
				// provider-bound when they are not.
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		estimates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "estimates_total",
				Help:      "Cost estimates produced by approach",
			},
			[]string{"approach"},
		),
	}

	registry.MustRegister(
		am.analyses,
		am.analysisDuration,
		am.estimates,
	)

	return am
}

// RecordAnalysis records one completed analysis run.
func (am *AnalysisMetrics) RecordAnalysis(model string, duration time.Duration) {
	am.analyses.WithLabelValues(model).Inc()
	am.analysisDuration.Observe(duration.Seconds())
}

// RecordEstimate records a single produced estimate.
func (am *AnalysisMetrics) RecordEstimate(approach string) {
	am.estimates.WithLabelValues(approach).Inc()
}
