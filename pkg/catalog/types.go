package catalog

// Family identifies the organization or architecture family a model
// belongs to.
type Family string

const (
	FamilyOpenAI    Family = "openai"
	FamilyAnthropic Family = "anthropic"
	FamilyMeta      Family = "meta"
	FamilyMistral   Family = "mistral"
	FamilyGoogle    Family = "google"
	FamilyBERT      Family = "bert"
	FamilyCohere    Family = "cohere"
	FamilyOther     Family = "other"
)

// Feasibility classifies where a model can realistically be fine-tuned.
type Feasibility string

const (
	// LocalFeasible models fit on consumer hardware.
	LocalFeasible Feasibility = "local_feasible"

	// CloudOnly models require datacenter-class GPUs.
	CloudOnly Feasibility = "cloud_only"

	// APIOnly models can only be fine-tuned through a hosted API.
	APIOnly Feasibility = "api_only"
)

// ModelSpec describes a single model in the catalog.
//
// Specs are immutable after registry construction. Parameter counts and
// memory figures for closed models are public estimates, not vendor
// disclosures.
type ModelSpec struct {
	// ID is the canonical lowercase identifier (e.g. "llama-2-7b").
	ID string `yaml:"id" json:"id"`

	// DisplayName is the human-readable name (e.g. "LLaMA 2 7B").
	DisplayName string `yaml:"display_name" json:"display_name"`

	// Family is the model family.
	Family Family `yaml:"family" json:"family"`

	// Params is the total parameter count.
	Params int64 `yaml:"params" json:"params"`

	// ContextWindow is the maximum context length in tokens.
	ContextWindow int `yaml:"context_window" json:"context_window"`

	// MemoryGB is the minimum GPU memory required to hold the model for
	// inference. Training memory is derived from this via the approach's
	// memory multiplier.
	MemoryGB float64 `yaml:"memory_gb" json:"memory_gb"`

	// MemoryMultiplier scales MemoryGB to full fine-tune requirements
	// (weights + gradients + optimizer state + activations). Encoder-only
	// models use a lower multiplier than decoder models.
	MemoryMultiplier float64 `yaml:"memory_multiplier" json:"memory_multiplier"`

	// Feasibility classifies where training is possible.
	Feasibility Feasibility `yaml:"feasibility" json:"feasibility"`

	// APITrainPricePer1K is the hosted fine-tuning price in USD per 1K
	// training tokens. Zero means no hosted fine-tuning is offered.
	APITrainPricePer1K float64 `yaml:"api_train_price_per_1k" json:"api_train_price_per_1k,omitempty"`

	// APIUsagePricePer1K is the hosted inference price in USD per 1K
	// tokens, used as the recurring-cost baseline in ROI analysis.
	// Zero means the model has no hosted API.
	APIUsagePricePer1K float64 `yaml:"api_usage_price_per_1k" json:"api_usage_price_per_1k,omitempty"`
}

// ParamsBillions returns the parameter count in billions.
func (s ModelSpec) ParamsBillions() float64 {
	return float64(s.Params) / 1e9
}

// HasAPI reports whether the model is reachable through a hosted API.
func (s ModelSpec) HasAPI() bool {
	return s.APIUsagePricePer1K > 0
}

// Filter narrows the result of Registry.List. Zero values match
// everything.
type Filter struct {
	// Family restricts results to one model family.
	Family Family

	// Feasibility restricts results to one feasibility class.
	Feasibility Feasibility

	// MinParams and MaxParams bound the parameter count (inclusive).
	// Zero means unbounded.
	MinParams int64
	MaxParams int64
}

func (f Filter) matches(s ModelSpec) bool {
	if f.Family != "" && s.Family != f.Family {
		return false
	}
	if f.Feasibility != "" && s.Feasibility != f.Feasibility {
		return false
	}
	if f.MinParams > 0 && s.Params < f.MinParams {
		return false
	}
	if f.MaxParams > 0 && s.Params > f.MaxParams {
		return false
	}
	return true
}
