package costing

import (
	"context"
	"log/slog"
	"sort"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
)

// MaxTokens bounds accepted token counts. A corpus past this size is
// almost certainly a unit error (characters fed as tokens).
const MaxTokens int64 = 1_000_000_000_000

// borderlineHeadroom is the remaining-memory fraction below which an
// estimate is flagged as a tight fit.
const borderlineHeadroom = 0.10

// Request describes one estimation run.
type Request struct {
	// Model is the catalog spec to train.
	Model catalog.ModelSpec

	// Tokens is the training corpus size in tokens.
	Tokens int64

	// Approaches restricts which approaches are estimated; empty means
	// all. Used for plan entitlements and CLI filters.
	Approaches []ApproachKind

	// ElectricityRegion selects local electricity pricing.
	ElectricityRegion string
}

// Engine prices training runs against live hardware rates.
type Engine struct {
	source  *pricing.Source
	scaling ScalingParams
	logger  *slog.Logger
}

// NewEngine creates a costing engine. A nil logger falls back to
// slog.Default.
func NewEngine(source *pricing.Source, scaling ScalingParams, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, scaling: scaling, logger: logger}
}

// Scaling returns the engine's coefficients.
func (e *Engine) Scaling() ScalingParams { return e.scaling }

// Estimate produces costed options for every feasible approach and
// hardware combination, sorted by cost ascending with a stable
// tie-break so identical inputs always yield identical output order.
//
// Infeasible combinations (model too large for a rig, no API offering)
// are omitted, never errored. An empty result is valid and means the
// model cannot be trained under the requested constraints.
func (e *Engine) Estimate(ctx context.Context, req Request) ([]Estimate, error) {
	if req.Tokens <= 0 {
		return nil, &InvalidTokenCountError{Tokens: req.Tokens, Reason: "must be positive"}
	}
	if req.Tokens > MaxTokens {
		return nil, &InvalidTokenCountError{Tokens: req.Tokens, Reason: "exceeds supported corpus size"}
	}

	allowed, err := approachSet(req.Approaches)
	if err != nil {
		return nil, err
	}

	var estimates []Estimate
	for _, kind := range AllApproaches {
		if !allowed[kind] {
			continue
		}
		if !e.feasible(req.Model, kind) {
			continue
		}
		switch {
		case kind.Local():
			estimates = append(estimates, e.localEstimates(req, kind)...)
		case kind.Cloud():
			estimates = append(estimates, e.cloudEstimates(ctx, req, kind)...)
		case kind == APIFineTune:
			if est, ok := e.apiEstimate(req); ok {
				estimates = append(estimates, est)
			}
		}
	}

	sortEstimates(estimates)

	e.logger.Debug("estimation completed",
		"model", req.Model.ID,
		"tokens", req.Tokens,
		"options", len(estimates),
	)
	return estimates, nil
}

// feasible gates approaches by the model's feasibility class.
func (e *Engine) feasible(model catalog.ModelSpec, kind ApproachKind) bool {
	switch model.Feasibility {
	case catalog.APIOnly:
		return kind == APIFineTune
	case catalog.CloudOnly:
		return kind.Cloud() || kind == APIFineTune
	default:
		return true
	}
}

// localEstimates prices the approach on each owned-hardware class that
// can hold it. Consumer cards only: nobody runs an H100 in a home rig.
func (e *Engine) localEstimates(req Request, kind ApproachKind) []Estimate {
	memory := req.Model.MemoryGB * e.scaling.memoryFactor(kind, req.Model.MemoryMultiplier)
	flops := e.scaling.trainingFLOPs(req.Model.Params, req.Tokens, kind)
	rateCfg := pricing.LocalRateConfig{ElectricityRegion: req.ElectricityRegion}

	var out []Estimate
	for _, spec := range hardware.List() {
		if !spec.Consumer {
			continue
		}
		count, ok := hardware.Fit(spec, memory)
		if !ok {
			continue
		}

		hours := e.scaling.trainingHours(flops, spec.TensorTFLOPS, count, kind)
		electricity, depreciation := pricing.LocalRateBreakdown(spec, rateCfg)
		perHour := electricity + depreciation
		cost := hours * perHour * float64(count)

		band := pricing.ConfidenceLive.BandWidth()
		out = append(out, Estimate{
			Approach:      kind,
			Hardware:      spec.Class,
			GPUCount:      count,
			Provider:      pricing.ProviderLocal,
			HourlyUSD:     perHour,
			TrainingHours: hours,
			MemoryGB:      memory,
			CostUSD:       cost,
			CostLowUSD:    cost * (1 - band),
			CostHighUSD:   cost * (1 + band),
			Confidence:    pricing.ConfidenceLive,
			Breakdown: Breakdown{
				ElectricityUSD:  hours * electricity * float64(count),
				DepreciationUSD: hours * depreciation * float64(count),
			},
			Borderline: tightFit(spec, count, memory),
		})
	}
	return out
}

// cloudEstimates prices the approach on every provider quote for each
// datacenter-capable class that can hold it.
func (e *Engine) cloudEstimates(ctx context.Context, req Request, kind ApproachKind) []Estimate {
	memory := req.Model.MemoryGB * e.scaling.memoryFactor(kind, req.Model.MemoryMultiplier)
	flops := e.scaling.trainingFLOPs(req.Model.Params, req.Tokens, kind)

	var out []Estimate
	for _, spec := range hardware.List() {
		count, ok := hardware.Fit(spec, memory)
		if !ok {
			continue
		}
		hours := e.scaling.trainingHours(flops, spec.TensorTFLOPS, count, kind)

		for _, quote := range e.source.QuoteAll(ctx, spec.Class) {
			compute := hours * quote.HourlyUSD * float64(count)
			cost := compute * e.scaling.CloudOverhead

			band := quote.Confidence.BandWidth()
			out = append(out, Estimate{
				Approach:      kind,
				Hardware:      spec.Class,
				GPUCount:      count,
				Provider:      quote.Provider,
				HourlyUSD:     quote.HourlyUSD,
				TrainingHours: hours,
				MemoryGB:      memory,
				CostUSD:       cost,
				CostLowUSD:    cost * (1 - band),
				CostHighUSD:   cost * (1 + band),
				Confidence:    quote.Confidence,
				Breakdown: Breakdown{
					ComputeUSD:  compute,
					OverheadUSD: cost - compute,
				},
				Borderline: tightFit(spec, count, memory),
			})
		}
	}
	return out
}

// apiEstimate prices managed fine-tuning per training token.
func (e *Engine) apiEstimate(req Request) (Estimate, bool) {
	if req.Model.APITrainPricePer1K <= 0 {
		return Estimate{}, false
	}
	cost := float64(req.Tokens) / 1000 * req.Model.APITrainPricePer1K

	// API price lists are published, so the band is the live one.
	band := pricing.ConfidenceLive.BandWidth()
	return Estimate{
		Approach:    APIFineTune,
		Provider:    string(req.Model.Family),
		CostUSD:     cost,
		CostLowUSD:  cost * (1 - band),
		CostHighUSD: cost * (1 + band),
		Confidence:  pricing.ConfidenceLive,
	}, true
}

// tightFit reports whether the configuration has under 10% memory
// headroom.
func tightFit(spec hardware.Spec, count int, memoryGB float64) bool {
	capacity := spec.MemoryGB * float64(count)
	return capacity-memoryGB < capacity*borderlineHeadroom
}

// sortEstimates orders by cost ascending, then approach, hardware, and
// provider for deterministic ties.
func sortEstimates(estimates []Estimate) {
	sort.Slice(estimates, func(i, j int) bool {
		a, b := estimates[i], estimates[j]
		if a.CostUSD != b.CostUSD {
			return a.CostUSD < b.CostUSD
		}
		if a.Approach != b.Approach {
			return a.Approach < b.Approach
		}
		if a.Hardware != b.Hardware {
			return a.Hardware < b.Hardware
		}
		return a.Provider < b.Provider
	})
}

func approachSet(requested []ApproachKind) (map[ApproachKind]bool, error) {
	allowed := make(map[ApproachKind]bool, len(AllApproaches))
	if len(requested) == 0 {
		for _, kind := range AllApproaches {
			allowed[kind] = true
		}
		return allowed, nil
	}
	for _, kind := range requested {
		if !kind.Valid() {
			return nil, &UnknownApproachError{Approach: kind}
		}
		allowed[kind] = true
	}
	return allowed, nil
}
