package pricing

import (
	"context"

	"tokenworks/atlas/pkg/hardware"
)

// Static is a Provider that never fetches live data: every lookup takes
// the bundled-table path and carries fallback confidence. It stands in
// for providers whose live adapter is disabled in config or not covered
// by the active plan, keeping their table rates in the comparison.
type Static struct {
	name string
}

// NewStatic creates a static stand-in for the named provider.
func NewStatic(name string) *Static {
	return &Static{name: name}
}

// Name returns the provider identifier.
func (p *Static) Name() string { return p.name }

// FetchRate always fails with an unsupported error so the Source serves
// the static table instead.
func (p *Static) FetchRate(ctx context.Context, class hardware.Class, region string) (float64, error) {
	return 0, &UnsupportedHardwareError{Provider: p.name, Class: class}
}
