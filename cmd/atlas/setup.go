package main

import (
	"fmt"
	"log/slog"
	"os"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/license"
	"tokenworks/atlas/pkg/pricing"
	"tokenworks/atlas/pkg/telemetry/logging"
)

// loadConfig reads the config file with ATLAS_* environment overrides.
// When the file is absent and the flag was left at its default, the
// built-in defaults apply so the tool works out of the box.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && cfgFile == "atlas.yaml" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the structured logger from config, with --verbose
// forcing debug level.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logCfg := cfg.Telemetry.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg, os.Stderr)
}

// newPricingSource assembles the pricing source from config. Providers
// disabled in config, or all of them when live pricing is not part of
// the plan, are replaced with static stand-ins so their bundled table
// rates stay in the comparison.
func newPricingSource(cfg *config.Config, lic license.Checker, logger *slog.Logger, observer pricing.Observer) *pricing.Source {
	live := lic.HasAccess(license.FeatureLivePricing)

	var lambda pricing.Provider = pricing.NewStatic(pricing.ProviderLambdaLabs)
	if live && cfg.Pricing.LambdaLabs.IsEnabled() {
		lambda = pricing.NewLambdaLabs(pricing.LambdaLabsConfig{
			BaseURL:         cfg.Pricing.LambdaLabs.BaseURL,
			APIKey:          cfg.Pricing.LambdaLabs.APIKey,
			Timeout:         cfg.Pricing.ProviderTimeout,
			RequestsPerHour: cfg.Pricing.LambdaLabs.RequestsPerHour,
		})
	}

	var vast pricing.Provider = pricing.NewStatic(pricing.ProviderVastAI)
	if live && cfg.Pricing.VastAI.IsEnabled() {
		vast = pricing.NewVastAI(pricing.VastAIConfig{
			BaseURL:         cfg.Pricing.VastAI.BaseURL,
			Timeout:         cfg.Pricing.ProviderTimeout,
			RequestsPerHour: cfg.Pricing.VastAI.RequestsPerHour,
		})
	}

	providers := []pricing.Provider{lambda, vast, pricing.NewRunPod()}

	return pricing.NewSource(pricing.SourceConfig{
		CacheTTL:        cfg.Pricing.CacheTTL,
		CacheMaxEntries: cfg.Pricing.CacheMaxEntries,
		ProviderTimeout: cfg.Pricing.ProviderTimeout,
		Region:          cfg.Pricing.Region,
		Overrides:       cfg.Pricing.Overrides,
	}, providers, logger, observer)
}

// scalingFromConfig maps the costing config section onto engine
// coefficients.
func scalingFromConfig(c config.CostingConfig) costing.ScalingParams {
	return costing.ScalingParams{
		FLOPsPerParamToken: c.FLOPsPerParamToken,
		LoRAComputeFactor:  c.LoRAComputeFactor,
		QLoRAComputeFactor: c.QLoRAComputeFactor,
		GPUEfficiency:      c.GPUEfficiency,
		MinTrainingHours:   c.MinTrainingHours,
		LoRAMemoryFactor:   c.LoRAMemoryFactor,
		QLoRAMemoryFactor:  c.QLoRAMemoryFactor,
		CloudOverhead:      c.CloudOverhead,
	}
}

// parseApproaches converts approach names from flags into kinds.
func parseApproaches(names []string) ([]costing.ApproachKind, error) {
	kinds := make([]costing.ApproachKind, 0, len(names))
	for _, name := range names {
		kind := costing.ApproachKind(name)
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown approach %q (valid: %v)", name, costing.AllApproaches)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// gateApproaches narrows the requested approaches to what the plan
// covers. The free tier gets the reduced subset; requesting outside it
// is not an error, the extras are just dropped.
func gateApproaches(requested []costing.ApproachKind, lic license.Checker) []costing.ApproachKind {
	if lic.HasAccess(license.FeatureFullMatrix) {
		return requested
	}
	if len(requested) == 0 {
		return append([]costing.ApproachKind(nil), costing.FreeTierApproaches...)
	}
	free := make(map[costing.ApproachKind]bool, len(costing.FreeTierApproaches))
	for _, kind := range costing.FreeTierApproaches {
		free[kind] = true
	}
	var gated []costing.ApproachKind
	for _, kind := range requested {
		if free[kind] {
			gated = append(gated, kind)
		}
	}
	if gated == nil {
		gated = append([]costing.ApproachKind(nil), costing.FreeTierApproaches...)
	}
	return gated
}
