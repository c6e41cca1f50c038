package config

import (
	"fmt"
	"math"
	"strings"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	// Field is the dotted path to the field (e.g. "pricing.cache_ttl").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates all field errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the configuration, collecting every violation rather
// than stopping at the first.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Pricing.CacheTTL < 0 {
		errs = append(errs, FieldError{"pricing.cache_ttl", "must not be negative"})
	}
	if cfg.Pricing.CacheMaxEntries < 0 {
		errs = append(errs, FieldError{"pricing.cache_max_entries", "must not be negative"})
	}
	if cfg.Pricing.ProviderTimeout <= 0 {
		errs = append(errs, FieldError{"pricing.provider_timeout", "must be positive"})
	}
	for key, rate := range cfg.Pricing.Overrides {
		if rate <= 0 {
			errs = append(errs, FieldError{"pricing.overrides." + key, "rate must be positive"})
		}
	}

	if cfg.Costing.FLOPsPerParamToken <= 0 {
		errs = append(errs, FieldError{"costing.flops_per_param_token", "must be positive"})
	}
	if cfg.Costing.GPUEfficiency <= 0 || cfg.Costing.GPUEfficiency > 1 {
		errs = append(errs, FieldError{"costing.gpu_efficiency", "must be in (0, 1]"})
	}
	if cfg.Costing.LoRAComputeFactor <= 0 || cfg.Costing.LoRAComputeFactor > 1 {
		errs = append(errs, FieldError{"costing.lora_compute_factor", "must be in (0, 1]"})
	}
	if cfg.Costing.QLoRAComputeFactor <= 0 || cfg.Costing.QLoRAComputeFactor > 1 {
		errs = append(errs, FieldError{"costing.qlora_compute_factor", "must be in (0, 1]"})
	}
	if cfg.Costing.MinTrainingHours < 0 {
		errs = append(errs, FieldError{"costing.min_training_hours", "must not be negative"})
	}
	if cfg.Costing.CloudOverhead < 1 {
		errs = append(errs, FieldError{"costing.cloud_overhead", "must be at least 1"})
	}

	if sum := cfg.Recommend.CostWeight + cfg.Recommend.TimeWeight; math.Abs(sum-1) > 1e-9 {
		errs = append(errs, FieldError{"recommend", fmt.Sprintf("cost_weight + time_weight must sum to 1, got %v", sum)})
	}

	errs = append(errs, validateBucketEdges(cfg.Chunks.BucketEdges)...)
	if cfg.Chunks.DefaultTokenLimit <= 0 {
		errs = append(errs, FieldError{"chunks.default_token_limit", "must be positive"})
	}

	if cfg.History.Enabled && cfg.History.DBPath == "" {
		errs = append(errs, FieldError{"history.db_path", "required when history is enabled"})
	}
	if cfg.History.Retention < 0 {
		errs = append(errs, FieldError{"history.retention", "must not be negative"})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level", fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level)})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format", fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format)})
	}

	switch cfg.License.Tier {
	case "free", "premium":
	default:
		errs = append(errs, FieldError{"license.tier", fmt.Sprintf("unknown tier %q", cfg.License.Tier)})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateBucketEdges(edges []float64) []FieldError {
	var errs []FieldError
	if len(edges) == 0 {
		errs = append(errs, FieldError{"chunks.bucket_edges", "must not be empty"})
		return errs
	}
	prev := 0.0
	for i, edge := range edges {
		if edge <= prev {
			errs = append(errs, FieldError{"chunks.bucket_edges", fmt.Sprintf("edge %d (%v) must be greater than the previous edge", i, edge)})
		}
		prev = edge
	}
	if edges[len(edges)-1] != 1.0 {
		errs = append(errs, FieldError{"chunks.bucket_edges", "final edge must be 1.0"})
	}
	return errs
}
