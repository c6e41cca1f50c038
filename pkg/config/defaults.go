package config

import "time"

// Default values for configuration fields.
const (
	// Pricing defaults
	DefaultCacheTTL        = time.Hour
	DefaultCacheMaxEntries = 256
	DefaultProviderTimeout = 5 * time.Second

	// Costing defaults
	DefaultElectricityRegion  = "us_average"
	DefaultFLOPsPerParamToken = 6.0
	DefaultLoRAComputeFactor  = 0.5
	DefaultQLoRAComputeFactor = 0.6
	DefaultGPUEfficiency      = 0.4
	DefaultMinTrainingHours   = 0.5
	DefaultLoRAMemoryFactor   = 1.5
	DefaultQLoRAMemoryFactor  = 0.7
	DefaultCloudOverhead      = 1.15

	// Recommend defaults
	DefaultCostWeight = 0.7
	DefaultTimeWeight = 0.3

	// Chunks defaults
	DefaultTokenLimit = 512

	// History defaults
	DefaultHistoryDBPath    = "data/quotes.db"
	DefaultHistoryRetention = 720 * time.Hour

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultMetricsNamespace     = "atlas"
	DefaultMetricsSubsystem     = "core"
	DefaultMetricsListenAddress = "127.0.0.1:9090"

	// License defaults
	DefaultLicenseTier = "free"
)

// DefaultChunkBucketEdges are the distribution boundaries as fractions
// of the token limit.
var DefaultChunkBucketEdges = []float64{0.1, 0.4, 0.8, 1.0}

// ApplyDefaults fills zero-valued fields with defaults. It is called by
// LoadConfig; call it directly when building a Config in code.
func ApplyDefaults(cfg *Config) {
	if cfg.Pricing.CacheTTL == 0 {
		cfg.Pricing.CacheTTL = DefaultCacheTTL
	}
	if cfg.Pricing.CacheMaxEntries == 0 {
		cfg.Pricing.CacheMaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Pricing.ProviderTimeout == 0 {
		cfg.Pricing.ProviderTimeout = DefaultProviderTimeout
	}

	if cfg.Costing.ElectricityRegion == "" {
		cfg.Costing.ElectricityRegion = DefaultElectricityRegion
	}
	if cfg.Costing.FLOPsPerParamToken == 0 {
		cfg.Costing.FLOPsPerParamToken = DefaultFLOPsPerParamToken
	}
	if cfg.Costing.LoRAComputeFactor == 0 {
		cfg.Costing.LoRAComputeFactor = DefaultLoRAComputeFactor
	}
	if cfg.Costing.QLoRAComputeFactor == 0 {
		cfg.Costing.QLoRAComputeFactor = DefaultQLoRAComputeFactor
	}
	if cfg.Costing.GPUEfficiency == 0 {
		cfg.Costing.GPUEfficiency = DefaultGPUEfficiency
	}
	if cfg.Costing.MinTrainingHours == 0 {
		cfg.Costing.MinTrainingHours = DefaultMinTrainingHours
	}
	if cfg.Costing.LoRAMemoryFactor == 0 {
		cfg.Costing.LoRAMemoryFactor = DefaultLoRAMemoryFactor
	}
	if cfg.Costing.QLoRAMemoryFactor == 0 {
		cfg.Costing.QLoRAMemoryFactor = DefaultQLoRAMemoryFactor
	}
	if cfg.Costing.CloudOverhead == 0 {
		cfg.Costing.CloudOverhead = DefaultCloudOverhead
	}

	if cfg.Recommend.CostWeight == 0 && cfg.Recommend.TimeWeight == 0 {
		cfg.Recommend.CostWeight = DefaultCostWeight
		cfg.Recommend.TimeWeight = DefaultTimeWeight
	}

	if len(cfg.Chunks.BucketEdges) == 0 {
		cfg.Chunks.BucketEdges = append([]float64(nil), DefaultChunkBucketEdges...)
	}
	if cfg.Chunks.DefaultTokenLimit == 0 {
		cfg.Chunks.DefaultTokenLimit = DefaultTokenLimit
	}

	if cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultHistoryDBPath
	}
	if cfg.History.Retention == 0 {
		cfg.History.Retention = DefaultHistoryRetention
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}

	if cfg.License.Tier == "" {
		cfg.License.Tier = DefaultLicenseTier
	}
}

// Default returns a fully-defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
