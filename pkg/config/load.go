package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults,
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention ATLAS_SECTION_FIELD (e.g. ATLAS_PRICING_CACHE_TTL) and
// take precedence over file values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("ATLAS_PRICING_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Pricing.CacheTTL = d
		}
	}
	if val := os.Getenv("ATLAS_PRICING_PROVIDER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Pricing.ProviderTimeout = d
		}
	}
	if val := os.Getenv("ATLAS_PRICING_REGION"); val != "" {
		cfg.Pricing.Region = val
	}
	if val := os.Getenv("ATLAS_PRICING_LAMBDA_LABS_API_KEY"); val != "" {
		cfg.Pricing.LambdaLabs.APIKey = val
	}

	if val := os.Getenv("ATLAS_COSTING_ELECTRICITY_REGION"); val != "" {
		cfg.Costing.ElectricityRegion = val
	}

	if val := os.Getenv("ATLAS_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("ATLAS_HISTORY_DB_PATH"); val != "" {
		cfg.History.DBPath = val
	}

	if val := os.Getenv("ATLAS_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ATLAS_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ATLAS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("ATLAS_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}

	if val := os.Getenv("ATLAS_LICENSE_TIER"); val != "" {
		cfg.License.Tier = val
	}
}
