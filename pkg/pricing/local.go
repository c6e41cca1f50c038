package pricing

import (
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// ProviderLocal is the pseudo-provider name for owned-hardware rates.
const ProviderLocal = "local"

const (
	// systemOverhead covers CPU, RAM, and cooling draw on top of the
	// GPUs themselves.
	systemOverhead = 1.3

	// depreciationYears is the straight-line depreciation schedule.
	depreciationYears = 3

	// residualValue is the fraction of purchase price retained at the
	// end of the depreciation schedule.
	residualValue = 0.2
)

// LocalRateConfig parameterizes owned-hardware cost math.
type LocalRateConfig struct {
	// ElectricityRegion selects the kWh price; empty means US average.
	ElectricityRegion string
}

// LocalRate computes the per-device per-hour cost of running owned
// hardware: electricity at the regional rate plus amortized
// depreciation. This path is deterministic and never fails.
func LocalRate(spec hardware.Spec, cfg LocalRateConfig) Quote {
	kwhPrice := ElectricityRate(cfg.ElectricityRegion)

	// Electricity: device draw with system overhead, converted to kW.
	electricity := spec.PowerWatts * systemOverhead / 1000 * kwhPrice

	// Depreciation: purchase price less residual, spread over the
	// schedule's total hours.
	hours := float64(depreciationYears) * 365 * 24
	depreciation := spec.MarketPriceUSD * (1 - residualValue) / hours

	return Quote{
		Provider:   ProviderLocal,
		Hardware:   spec.Class,
		HourlyUSD:  electricity + depreciation,
		Confidence: ConfidenceLive,
		FetchedAt:  time.Now(),
	}
}

// LocalRateBreakdown reports the electricity and depreciation components
// separately, for cost-breakdown reporting.
func LocalRateBreakdown(spec hardware.Spec, cfg LocalRateConfig) (electricityUSD, depreciationUSD float64) {
	kwhPrice := ElectricityRate(cfg.ElectricityRegion)
	electricityUSD = spec.PowerWatts * systemOverhead / 1000 * kwhPrice

	hours := float64(depreciationYears) * 365 * 24
	depreciationUSD = spec.MarketPriceUSD * (1 - residualValue) / hours
	return electricityUSD, depreciationUSD
}
