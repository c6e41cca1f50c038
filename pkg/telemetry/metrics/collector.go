// Package metrics exposes Prometheus instrumentation for pricing
// lookups and cost analyses.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/pricing"
)

// Collector owns the Prometheus registry and all metric subsystems.
// Its Pricing() observer plugs directly into pricing.NewSource.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	pricingMetrics  *PricingMetrics
	analysisMetrics *AnalysisMetrics
}

// NewCollector creates a collector with the specified configuration and
// registry. If registry is nil a fresh one is used, keeping the default
// registry free of process-global state.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "atlas"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "core"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}
	c.pricingMetrics = NewPricingMetrics(cfg, registry)
	c.analysisMetrics = NewAnalysisMetrics(cfg, registry)
	return c
}

// Pricing returns the pricing.Observer implementation, or nil when
// metrics are disabled so the pricing source skips instrumentation
// entirely.
func (c *Collector) Pricing() pricing.Observer {
	if !c.config.Enabled {
		return nil
	}
	return c.pricingMetrics
}

// RecordAnalysis records a completed analysis run for a model.
func (c *Collector) RecordAnalysis(model string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.analysisMetrics.RecordAnalysis(model, duration)
}

// RecordEstimate records a single produced estimate.
func (c *Collector) RecordEstimate(approach string) {
	if !c.config.Enabled {
		return
	}
	c.analysisMetrics.RecordEstimate(approach)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
