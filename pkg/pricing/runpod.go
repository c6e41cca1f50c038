package pricing

import (
	"context"

	"tokenworks/atlas/pkg/hardware"
)

// ProviderRunPod is the RunPod provider identifier.
const ProviderRunPod = "runpod"

// RunPod serves rates from the bundled static table. RunPod publishes
// no public pricing API, so quotes from this provider always carry
// fallback confidence.
type RunPod struct{}

// NewRunPod creates a RunPod pricing adapter.
func NewRunPod() *RunPod { return &RunPod{} }

// Name returns the provider identifier.
func (p *RunPod) Name() string { return ProviderRunPod }

// FetchRate always fails with an unsupported error so the Source takes
// the static-table path for this provider.
func (p *RunPod) FetchRate(ctx context.Context, class hardware.Class, region string) (float64, error) {
	return 0, &UnsupportedHardwareError{Provider: ProviderRunPod, Class: class}
}
