package pricing

import (
	"context"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// Confidence classifies how fresh a quote's underlying data is.
type Confidence string

const (
	// ConfidenceLive means the rate came from a provider API call that
	// completed during this lookup.
	ConfidenceLive Confidence = "live"

	// ConfidenceCached means the rate came from a previous live lookup
	// still inside its TTL.
	ConfidenceCached Confidence = "cached"

	// ConfidenceFallback means the rate came from the bundled static
	// table because no live data was available.
	ConfidenceFallback Confidence = "fallback"
)

// BandWidth returns the relative confidence-band half-width appropriate
// for the quote freshness: stale data gets a wider band.
func (c Confidence) BandWidth() float64 {
	switch c {
	case ConfidenceLive:
		return 0.10
	case ConfidenceCached:
		return 0.15
	default:
		return 0.50
	}
}

// rank orders confidence levels for comparison; higher is fresher.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceLive:
		return 2
	case ConfidenceCached:
		return 1
	default:
		return 0
	}
}

// Fresher reports whether c is strictly fresher than other.
func (c Confidence) Fresher(other Confidence) bool {
	return c.rank() > other.rank()
}

// Quote is a resolved per-hour cost rate for one hardware class at one
// provider. Quotes are values; the Source hands out copies.
type Quote struct {
	// Provider is the provider identifier (e.g. "lambda_labs"), or
	// "local" for owned-hardware rates.
	Provider string `json:"provider"`

	// Hardware is the GPU class the rate applies to.
	Hardware hardware.Class `json:"hardware"`

	// Region is the provider region, empty when not applicable.
	Region string `json:"region,omitempty"`

	// HourlyUSD is the per-device per-hour rate.
	HourlyUSD float64 `json:"hourly_usd"`

	// Confidence classifies the data source.
	Confidence Confidence `json:"confidence"`

	// FetchedAt is when the underlying data was acquired.
	FetchedAt time.Time `json:"fetched_at"`
}

// Provider fetches live rates for one cloud vendor.
//
// Implementations must respect ctx cancellation and return promptly on
// timeout; the Source treats any error as a signal to fall back, never
// as a hard failure.
type Provider interface {
	// Name returns the provider identifier used in quotes and config.
	Name() string

	// FetchRate returns the current hourly rate for the hardware class.
	// Returning an error (including *UnsupportedHardwareError) makes the
	// Source skip this provider for the lookup.
	FetchRate(ctx context.Context, class hardware.Class, region string) (float64, error)
}
