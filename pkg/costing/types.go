package costing

import (
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
)

// ApproachKind identifies a training approach and venue.
type ApproachKind string

const (
	// LocalFull is full-parameter fine-tuning on owned hardware.
	LocalFull ApproachKind = "local_full"

	// LocalLoRA is LoRA adapter training on owned hardware.
	LocalLoRA ApproachKind = "local_lora"

	// LocalQLoRA is quantized LoRA training on owned hardware.
	LocalQLoRA ApproachKind = "local_qlora"

	// CloudFull is full-parameter fine-tuning on rented cloud GPUs.
	CloudFull ApproachKind = "cloud_full"

	// CloudLoRA is LoRA adapter training on rented cloud GPUs.
	CloudLoRA ApproachKind = "cloud_lora"

	// APIFineTune is a managed fine-tuning API priced per token.
	APIFineTune ApproachKind = "api_finetune"
)

// AllApproaches lists every approach kind in presentation order.
var AllApproaches = []ApproachKind{
	LocalFull, LocalLoRA, LocalQLoRA,
	CloudFull, CloudLoRA,
	APIFineTune,
}

// FreeTierApproaches is the reduced subset estimated without a premium
// plan: the local adapter paths and the managed API path.
var FreeTierApproaches = []ApproachKind{LocalLoRA, LocalQLoRA, APIFineTune}

// Valid reports whether k names a known approach.
func (k ApproachKind) Valid() bool {
	for _, known := range AllApproaches {
		if k == known {
			return true
		}
	}
	return false
}

// Local reports whether the approach runs on owned hardware.
func (k ApproachKind) Local() bool {
	return k == LocalFull || k == LocalLoRA || k == LocalQLoRA
}

// Cloud reports whether the approach runs on rented cloud GPUs.
func (k ApproachKind) Cloud() bool {
	return k == CloudFull || k == CloudLoRA
}

// Breakdown itemizes the components of an estimate's cost.
type Breakdown struct {
	// ElectricityUSD is the power cost (local approaches only).
	ElectricityUSD float64 `json:"electricity_usd,omitempty"`

	// DepreciationUSD is amortized hardware wear (local only).
	DepreciationUSD float64 `json:"depreciation_usd,omitempty"`

	// ComputeUSD is the rented GPU time (cloud approaches only).
	ComputeUSD float64 `json:"compute_usd,omitempty"`

	// OverheadUSD is the cloud platform overhead (cloud only).
	OverheadUSD float64 `json:"overhead_usd,omitempty"`
}

// Estimate is one costed training option.
type Estimate struct {
	// Approach identifies the training approach and venue.
	Approach ApproachKind `json:"approach"`

	// Hardware is the GPU class used; empty for API approaches.
	Hardware hardware.Class `json:"hardware,omitempty"`

	// GPUCount is how many devices the run needs; 0 for API.
	GPUCount int `json:"gpu_count,omitempty"`

	// Provider is the rate source: "local", a cloud provider name, or
	// the model family's API vendor for api_finetune.
	Provider string `json:"provider"`

	// HourlyUSD is the per-device rate used; 0 for API approaches.
	HourlyUSD float64 `json:"hourly_usd,omitempty"`

	// TrainingHours is the estimated wall-clock duration; 0 for API.
	TrainingHours float64 `json:"training_hours,omitempty"`

	// MemoryGB is the training memory requirement; 0 for API.
	MemoryGB float64 `json:"memory_gb,omitempty"`

	// CostUSD is the point estimate.
	CostUSD float64 `json:"cost_usd"`

	// CostLowUSD and CostHighUSD bound the estimate by the pricing
	// confidence band.
	CostLowUSD  float64 `json:"cost_low_usd"`
	CostHighUSD float64 `json:"cost_high_usd"`

	// Confidence is the freshness of the underlying rate data.
	Confidence pricing.Confidence `json:"confidence"`

	// Breakdown itemizes the cost components.
	Breakdown Breakdown `json:"breakdown"`

	// Borderline marks estimates whose hardware fit leaves under 10%
	// memory headroom; real runs may need the next tier up.
	Borderline bool `json:"borderline,omitempty"`
}
