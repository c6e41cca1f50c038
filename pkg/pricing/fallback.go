package pricing

import "tokenworks/atlas/pkg/hardware"

// fallbackRates is the bundled static rate table, USD per device-hour.
// Used whenever a provider's live path is unavailable. Rates are
// conservative mid-range figures; confidence is always marked
// ConfidenceFallback when they are served.
var fallbackRates = map[string]map[hardware.Class]float64{
	ProviderLambdaLabs: {
		hardware.RTX4090: 0.50,
		hardware.A100:    1.10,
		hardware.H100:    2.50,
	},
	ProviderVastAI: {
		hardware.RTX3090: 0.25,
		hardware.RTX4090: 0.40,
		hardware.A100:    0.90,
		hardware.V100:    0.35,
	},
	ProviderRunPod: {
		hardware.RTX3090: 0.30,
		hardware.RTX4090: 0.45,
		hardware.A100:    1.00,
		hardware.H100:    2.20,
		hardware.V100:    0.40,
	},
}

// FallbackRate returns the static rate for a provider and hardware
// class. ok is false when the provider does not offer the class.
func FallbackRate(provider string, class hardware.Class) (float64, bool) {
	rates, ok := fallbackRates[provider]
	if !ok {
		return 0, false
	}
	rate, ok := rates[class]
	return rate, ok
}

// FallbackProviders returns the providers that offer the hardware class
// in the static table, in stable order.
func FallbackProviders(class hardware.Class) []string {
	var out []string
	for _, p := range []string{ProviderLambdaLabs, ProviderVastAI, ProviderRunPod} {
		if _, ok := fallbackRates[p][class]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ElectricityRates holds residential electricity prices in USD per kWh
// by region key. The "us_average" entry is the default for local-rate
// math when no region is configured.
var ElectricityRates = map[string]float64{
	"us_average":    0.12,
	"us_california": 0.25,
	"us_texas":      0.09,
	"eu_average":    0.20,
	"asia_average":  0.08,
}

// ElectricityRate returns the kWh price for a region, defaulting to the
// US average for unknown or empty regions.
func ElectricityRate(region string) float64 {
	if rate, ok := ElectricityRates[region]; ok {
		return rate
	}
	return ElectricityRates["us_average"]
}
