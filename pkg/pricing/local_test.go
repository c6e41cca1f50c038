package pricing

import (
	"math"
	"testing"

	"tokenworks/atlas/pkg/hardware"
)

func TestLocalRateComponents(t *testing.T) {
	spec, err := hardware.Get(hardware.RTX4090)
	if err != nil {
		t.Fatalf("hardware.Get: %v", err)
	}

	electricity, depreciation := LocalRateBreakdown(spec, LocalRateConfig{})

	// 450W with 1.3 overhead at $0.12/kWh.
	wantElectricity := 450 * 1.3 / 1000 * 0.12
	if math.Abs(electricity-wantElectricity) > 1e-9 {
		t.Errorf("electricity = %v, want %v", electricity, wantElectricity)
	}

	// $1600 less 20% residual over 3 years of hours.
	wantDepreciation := 1600 * 0.8 / (3 * 365 * 24)
	if math.Abs(depreciation-wantDepreciation) > 1e-9 {
		t.Errorf("depreciation = %v, want %v", depreciation, wantDepreciation)
	}

	q := LocalRate(spec, LocalRateConfig{})
	if math.Abs(q.HourlyUSD-(wantElectricity+wantDepreciation)) > 1e-9 {
		t.Errorf("hourly = %v, want sum of components", q.HourlyUSD)
	}
	if q.Provider != ProviderLocal {
		t.Errorf("provider = %q, want local", q.Provider)
	}
	if q.Confidence != ConfidenceLive {
		t.Errorf("confidence = %q, want live (deterministic math)", q.Confidence)
	}
}

func TestLocalRateRegionalElectricity(t *testing.T) {
	spec, err := hardware.Get(hardware.RTX3090)
	if err != nil {
		t.Fatalf("hardware.Get: %v", err)
	}

	base := LocalRate(spec, LocalRateConfig{})
	california := LocalRate(spec, LocalRateConfig{ElectricityRegion: "us_california"})
	texas := LocalRate(spec, LocalRateConfig{ElectricityRegion: "us_texas"})

	if california.HourlyUSD <= base.HourlyUSD {
		t.Errorf("california (%v) should cost more than the US average (%v)", california.HourlyUSD, base.HourlyUSD)
	}
	if texas.HourlyUSD >= base.HourlyUSD {
		t.Errorf("texas (%v) should cost less than the US average (%v)", texas.HourlyUSD, base.HourlyUSD)
	}
}

func TestElectricityRateUnknownRegionDefaults(t *testing.T) {
	if got := ElectricityRate("atlantis"); got != ElectricityRates["us_average"] {
		t.Errorf("rate = %v, want US average default", got)
	}
	if got := ElectricityRate(""); got != ElectricityRates["us_average"] {
		t.Errorf("empty region rate = %v, want US average default", got)
	}
}

func TestFallbackProvidersStableOrder(t *testing.T) {
	got := FallbackProviders(hardware.A100)
	want := []string{ProviderLambdaLabs, ProviderVastAI, ProviderRunPod}
	if len(got) != len(want) {
		t.Fatalf("providers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("providers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
