package config

import "time"

// Config is the root configuration structure for Atlas. It covers the
// pricing source, cost engine coefficients, recommendation weights,
// chunk analysis, quote history, telemetry, and plan entitlements.
type Config struct {
	// Pricing configures the rate lookup layer: providers, cache,
	// fallback region, and operator rate overrides.
	Pricing PricingConfig `yaml:"pricing"`

	// Costing configures scaling-law coefficients for the estimator.
	Costing CostingConfig `yaml:"costing"`

	// Recommend configures the ranking weights.
	Recommend RecommendConfig `yaml:"recommend"`

	// Chunks configures chunk efficiency analysis.
	Chunks ChunksConfig `yaml:"chunks"`

	// History configures quote history persistence.
	History HistoryConfig `yaml:"history"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// License configures the plan tier.
	License LicenseConfig `yaml:"license"`
}

// PricingConfig configures the pricing source.
type PricingConfig struct {
	// CacheTTL is how long live quotes stay servable.
	// Default: 1h
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// CacheMaxEntries bounds the quote cache size.
	// Default: 256
	CacheMaxEntries int `yaml:"cache_max_entries"`

	// ProviderTimeout is the per-provider lookup deadline.
	// Default: 5s
	ProviderTimeout time.Duration `yaml:"provider_timeout"`

	// Region is passed to providers that price per region.
	Region string `yaml:"region"`

	// RefreshSchedule is the cron expression for background cache
	// refresh; empty disables the refresher.
	RefreshSchedule string `yaml:"refresh_schedule"`

	// Overrides maps "provider:hardware" keys to operator-pinned
	// hourly rates. Reloaded live when the config file changes.
	Overrides map[string]float64 `yaml:"overrides"`

	// LambdaLabs configures the Lambda Labs adapter.
	LambdaLabs ProviderEndpointConfig `yaml:"lambda_labs"`

	// VastAI configures the Vast.ai adapter.
	VastAI ProviderEndpointConfig `yaml:"vast_ai"`
}

// ProviderEndpointConfig configures one HTTP pricing adapter.
type ProviderEndpointConfig struct {
	// Enabled turns the live adapter on. Disabled providers still
	// serve static-table rates.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// BaseURL overrides the provider API endpoint.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates the lookup, for providers that need one.
	APIKey string `yaml:"api_key"`

	// RequestsPerHour caps lookups below the provider's published
	// ceiling. Zero uses the adapter default.
	RequestsPerHour int64 `yaml:"requests_per_hour"`
}

// IsEnabled resolves the Enabled pointer against its default of true.
func (c ProviderEndpointConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// CostingConfig configures the cost engine.
type CostingConfig struct {
	// ElectricityRegion selects local electricity pricing
	// ("us_average", "us_california", "us_texas", "eu_average",
	// "asia_average").
	// Default: "us_average"
	ElectricityRegion string `yaml:"electricity_region"`

	// FLOPsPerParamToken is the training FLOPs per parameter per
	// token. Default: 6
	FLOPsPerParamToken float64 `yaml:"flops_per_param_token"`

	// LoRAComputeFactor and QLoRAComputeFactor scale full-tune
	// compute. Defaults: 0.5 and 0.6.
	LoRAComputeFactor  float64 `yaml:"lora_compute_factor"`
	QLoRAComputeFactor float64 `yaml:"qlora_compute_factor"`

	// GPUEfficiency is the realized fraction of peak throughput.
	// Default: 0.4
	GPUEfficiency float64 `yaml:"gpu_efficiency"`

	// MinTrainingHours floors duration estimates. Default: 0.5
	MinTrainingHours float64 `yaml:"min_training_hours"`

	// LoRAMemoryFactor and QLoRAMemoryFactor scale base model memory
	// for adapter training. Defaults: 1.5 and 0.7.
	LoRAMemoryFactor  float64 `yaml:"lora_memory_factor"`
	QLoRAMemoryFactor float64 `yaml:"qlora_memory_factor"`

	// CloudOverhead multiplies cloud costs. Default: 1.15
	CloudOverhead float64 `yaml:"cloud_overhead"`
}

// RecommendConfig configures ranking.
type RecommendConfig struct {
	// CostWeight and TimeWeight are the balanced-priority composite
	// weights; they must sum to 1.
	// Defaults: 0.7 and 0.3
	CostWeight float64 `yaml:"cost_weight"`
	TimeWeight float64 `yaml:"time_weight"`
}

// ChunksConfig configures chunk analysis.
type ChunksConfig struct {
	// BucketEdges are distribution boundaries as fractions of the
	// token limit, ascending, ending at 1.0.
	// Default: [0.1, 0.4, 0.8, 1.0]
	BucketEdges []float64 `yaml:"bucket_edges"`

	// DefaultTokenLimit is used when a request does not specify one.
	// Default: 512
	DefaultTokenLimit int `yaml:"default_token_limit"`
}

// HistoryConfig configures quote history persistence.
type HistoryConfig struct {
	// Enabled turns quote recording on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location.
	// Default: "data/quotes.db"
	DBPath string `yaml:"db_path"`

	// Retention is how long quotes are kept before pruning.
	// Default: 720h (30 days)
	Retention time.Duration `yaml:"retention"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "atlas" and "core"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where /metrics is served.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}

// LicenseConfig configures plan entitlements.
type LicenseConfig struct {
	// Tier is "free" or "premium".
	// Default: "free"
	Tier string `yaml:"tier"`
}
