package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/pricing"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	cfg := &config.MetricsConfig{Enabled: true}
	return NewCollector(cfg, prometheus.NewRegistry())
}

func TestCollectorDefaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)
	if cfg.Namespace != "atlas" || cfg.Subsystem != "core" {
		t.Errorf("namespace/subsystem = %q/%q, want atlas/core", cfg.Namespace, cfg.Subsystem)
	}
}

func TestPricingObserverCounts(t *testing.T) {
	c := newTestCollector(t)
	obs := c.Pricing()
	if obs == nil {
		t.Fatal("Pricing() = nil with metrics enabled")
	}

	obs.LookupCompleted("lambda_labs", pricing.ConfidenceLive, 120*time.Millisecond)
	obs.LookupCompleted("lambda_labs", pricing.ConfidenceCached, time.Microsecond)
	obs.CacheHit("lambda_labs")
	obs.CacheMiss("vast_ai")
	obs.FallbackServed("runpod")

	pm := c.pricingMetrics
	if got := testutil.ToFloat64(pm.lookups.WithLabelValues("lambda_labs", "live")); got != 1 {
		t.Errorf("live lookups = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.lookups.WithLabelValues("lambda_labs", "cached")); got != 1 {
		t.Errorf("cached lookups = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.cacheHits.WithLabelValues("lambda_labs")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.cacheMisses.WithLabelValues("vast_ai")); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.fallbacks.WithLabelValues("runpod")); got != 1 {
		t.Errorf("fallbacks = %v, want 1", got)
	}
}

func TestPricingObserverNilWhenDisabled(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false}
	c := NewCollector(cfg, prometheus.NewRegistry())
	if c.Pricing() != nil {
		t.Error("Pricing() should be nil when metrics are disabled")
	}
}

func TestAnalysisMetrics(t *testing.T) {
	c := newTestCollector(t)

	c.RecordAnalysis("llama-3-8b", 250*time.Millisecond)
	c.RecordEstimate("local_qlora")
	c.RecordEstimate("local_qlora")
	c.RecordEstimate("api_finetune")

	am := c.analysisMetrics
	if got := testutil.ToFloat64(am.analyses.WithLabelValues("llama-3-8b")); got != 1 {
		t.Errorf("analyses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(am.estimates.WithLabelValues("local_qlora")); got != 2 {
		t.Errorf("qlora estimates = %v, want 2", got)
	}
}

func TestRecordingNoopWhenDisabled(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false}
	c := NewCollector(cfg, prometheus.NewRegistry())

	c.RecordAnalysis("llama-3-8b", time.Second)
	c.RecordEstimate("local_qlora")

	if got := testutil.ToFloat64(c.analysisMetrics.analyses.WithLabelValues("llama-3-8b")); got != 0 {
		t.Errorf("analyses = %v, want 0 when disabled", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	c := newTestCollector(t)
	c.RecordEstimate("cloud_lora")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "atlas_core_estimates_total") {
		t.Errorf("response missing estimates metric:\n%s", body)
	}
}
