package costing

// ScalingParams holds the scaling-law coefficients and efficiency
// factors behind compute and memory math. Defaults follow the
// Chinchilla estimate of 6 FLOPs per parameter per token; deployments
// tracking newer results can swap coefficients without a rebuild.
type ScalingParams struct {
	// FLOPsPerParamToken is the training FLOPs per parameter per
	// token for full fine-tuning.
	FLOPsPerParamToken float64 `yaml:"flops_per_param_token" json:"flops_per_param_token"`

	// LoRAComputeFactor scales full-tune compute for LoRA runs.
	LoRAComputeFactor float64 `yaml:"lora_compute_factor" json:"lora_compute_factor"`

	// QLoRAComputeFactor scales full-tune compute for QLoRA runs.
	// Higher than LoRA: quantize/dequantize work offsets some of the
	// parameter savings.
	QLoRAComputeFactor float64 `yaml:"qlora_compute_factor" json:"qlora_compute_factor"`

	// GPUEfficiency is the realized fraction of peak tensor
	// throughput during training.
	GPUEfficiency float64 `yaml:"gpu_efficiency" json:"gpu_efficiency"`

	// MinTrainingHours floors the duration estimate; setup, data
	// loading, and checkpointing dominate very short runs.
	MinTrainingHours float64 `yaml:"min_training_hours" json:"min_training_hours"`

	// LoRAMemoryFactor and QLoRAMemoryFactor scale base model memory
	// for adapter training.
	LoRAMemoryFactor  float64 `yaml:"lora_memory_factor" json:"lora_memory_factor"`
	QLoRAMemoryFactor float64 `yaml:"qlora_memory_factor" json:"qlora_memory_factor"`

	// CloudOverhead multiplies cloud costs for storage, egress, and
	// idle time around the run.
	CloudOverhead float64 `yaml:"cloud_overhead" json:"cloud_overhead"`
}

// DefaultScalingParams returns the standard coefficients.
func DefaultScalingParams() ScalingParams {
	return ScalingParams{
		FLOPsPerParamToken: 6.0,
		LoRAComputeFactor:  0.5,
		QLoRAComputeFactor: 0.6,
		GPUEfficiency:      0.4,
		MinTrainingHours:   0.5,
		LoRAMemoryFactor:   1.5,
		QLoRAMemoryFactor:  0.7,
		CloudOverhead:      1.15,
	}
}

// computeFactor returns the approach's compute multiplier relative to
// full fine-tuning.
func (p ScalingParams) computeFactor(kind ApproachKind) float64 {
	switch kind {
	case LocalLoRA, CloudLoRA:
		return p.LoRAComputeFactor
	case LocalQLoRA:
		return p.QLoRAComputeFactor
	default:
		return 1.0
	}
}

// trainingFLOPs returns the total training compute for a model of
// params parameters over tokens tokens.
func (p ScalingParams) trainingFLOPs(params, tokens int64, kind ApproachKind) float64 {
	return p.FLOPsPerParamToken * float64(params) * float64(tokens) * p.computeFactor(kind)
}

// trainingHours converts total FLOPs into wall-clock hours on count
// devices of the given peak throughput. The floor scales with the
// approach's compute factor so adapter runs keep their duration and
// cost edge over full fine-tuning even when setup time dominates.
func (p ScalingParams) trainingHours(flops float64, tensorTFLOPS float64, count int, kind ApproachKind) float64 {
	effective := tensorTFLOPS * 1e12 * p.GPUEfficiency * float64(count)
	hours := flops / effective / 3600
	if floor := p.MinTrainingHours * p.computeFactor(kind); hours < floor {
		hours = floor
	}
	return hours
}

// memoryFactor returns the approach's memory multiplier. Full
// fine-tuning uses the model's own multiplier (weights, gradients,
// optimizer state); adapter approaches use fixed factors.
func (p ScalingParams) memoryFactor(kind ApproachKind, modelMultiplier float64) float64 {
	switch kind {
	case LocalLoRA, CloudLoRA:
		return p.LoRAMemoryFactor
	case LocalQLoRA:
		return p.QLoRAMemoryFactor
	default:
		return modelMultiplier
	}
}
