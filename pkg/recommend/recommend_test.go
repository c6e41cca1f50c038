package recommend

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
)

func testRecommender() *Recommender {
	return NewRecommender(Weights{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func option(kind costing.ApproachKind, class hardware.Class, cost, hours float64, conf pricing.Confidence) costing.Estimate {
	return costing.Estimate{
		Approach:      kind,
		Hardware:      class,
		Provider:      pricing.ProviderVastAI,
		GPUCount:      1,
		CostUSD:       cost,
		TrainingHours: hours,
		Confidence:    conf,
	}
}

func TestRecommendCostPriority(t *testing.T) {
	estimates := []costing.Estimate{
		option(costing.CloudFull, hardware.H100, 300, 1, pricing.ConfidenceLive),
		option(costing.LocalLoRA, hardware.RTX4090, 50, 8, pricing.ConfidenceLive),
		option(costing.CloudLoRA, hardware.A100, 80, 2, pricing.ConfidenceLive),
	}

	ranking, err := testRecommender().Recommend(estimates, PriorityCost)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, ok := ranking.Top()
	if !ok {
		t.Fatal("expected a top recommendation")
	}
	if top.Estimate.CostUSD != 50 {
		t.Errorf("top cost = %v, want 50", top.Estimate.CostUSD)
	}
	if top.Rank != 1 {
		t.Errorf("top rank = %d, want 1", top.Rank)
	}
	if !strings.Contains(top.Justification, "cheapest") {
		t.Errorf("justification = %q, want mention of cheapest", top.Justification)
	}
}

func TestRecommendCostPriorityEndToEnd(t *testing.T) {
	// A 7B model on owned hardware versus managed fine-tuning, priced
	// through the real engine: the local adapter run costs well under a
	// tenth of the API path and wins a cost-priority ranking.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := pricing.NewSource(pricing.SourceConfig{}, nil, logger, nil)
	engine := costing.NewEngine(source, costing.DefaultScalingParams(), logger)

	model := catalog.ModelSpec{
		ID:                 "llama-2-7b",
		Family:             catalog.FamilyMeta,
		Params:             7_000_000_000,
		MemoryGB:           14,
		MemoryMultiplier:   4.0,
		Feasibility:        catalog.LocalFeasible,
		APITrainPricePer1K: 0.008,
	}
	estimates, err := engine.Estimate(context.Background(), costing.Request{
		Model:      model,
		Tokens:     10_000_000,
		Approaches: []costing.ApproachKind{costing.LocalLoRA, costing.APIFineTune},
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	var apiCost float64
	for _, est := range estimates {
		if est.Approach == costing.APIFineTune {
			apiCost = est.CostUSD
		}
	}
	if apiCost == 0 {
		t.Fatal("expected an api_finetune estimate")
	}

	ranking, err := testRecommender().Recommend(estimates, PriorityCost)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, ok := ranking.Top()
	if !ok {
		t.Fatal("expected a top recommendation")
	}
	if top.Estimate.Approach != costing.LocalLoRA {
		t.Errorf("top approach = %q, want local_lora", top.Estimate.Approach)
	}
	if apiCost < top.Estimate.CostUSD*10 {
		t.Errorf("api cost %v not an order of magnitude above the winner %v", apiCost, top.Estimate.CostUSD)
	}
}

func TestRecommendSpeedPriority(t *testing.T) {
	estimates := []costing.Estimate{
		option(costing.LocalLoRA, hardware.RTX4090, 50, 8, pricing.ConfidenceLive),
		option(costing.CloudFull, hardware.H100, 300, 1, pricing.ConfidenceLive),
	}

	ranking, err := testRecommender().Recommend(estimates, PrioritySpeed)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, _ := ranking.Top()
	if top.Estimate.TrainingHours != 1 {
		t.Errorf("top hours = %v, want 1", top.Estimate.TrainingHours)
	}
}

func TestRecommendBalancedWeights(t *testing.T) {
	// A: cheapest but slowest; B: fastest but priciest; C: dominated.
	estimates := []costing.Estimate{
		option(costing.LocalLoRA, hardware.RTX4090, 50, 10, pricing.ConfidenceLive),
		option(costing.CloudFull, hardware.H100, 300, 1, pricing.ConfidenceLive),
		option(costing.CloudLoRA, hardware.A100, 290, 9, pricing.ConfidenceLive),
	}

	ranking, err := testRecommender().Recommend(estimates, PriorityBalanced)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// With 70% cost weight the cheap option wins: A = 0.3*1 = 0.3,
	// B = 0.7*1 = 0.7.
	top, _ := ranking.Top()
	if top.Estimate.CostUSD != 50 {
		t.Errorf("top cost = %v, want the cheap option", top.Estimate.CostUSD)
	}
	// The dominated option ranks last.
	last := ranking.Entries[len(ranking.Entries)-1]
	if last.Estimate.CostUSD != 290 {
		t.Errorf("last cost = %v, want the dominated option", last.Estimate.CostUSD)
	}
}

func TestRecommendTieBreakPrefersConfidence(t *testing.T) {
	// Same cost and time, different confidence: the live quote wins.
	fallback := option(costing.CloudLoRA, hardware.A100, 100, 5, pricing.ConfidenceFallback)
	live := option(costing.CloudLoRA, hardware.H100, 100, 5, pricing.ConfidenceLive)

	ranking, err := testRecommender().Recommend([]costing.Estimate{fallback, live}, PriorityBalanced)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, _ := ranking.Top()
	if top.Estimate.Confidence != pricing.ConfidenceLive {
		t.Errorf("top confidence = %q, want live to win the tie", top.Estimate.Confidence)
	}
}

func TestRecommendTieBreakPrefersShorterTime(t *testing.T) {
	slow := option(costing.CloudLoRA, hardware.A100, 100, 8, pricing.ConfidenceLive)
	fast := option(costing.CloudLoRA, hardware.H100, 100, 8, pricing.ConfidenceLive)
	fast.TrainingHours = 7.9 // within 2% tolerance on the composite

	ranking, err := testRecommender().Recommend([]costing.Estimate{slow, fast}, PriorityCost)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, _ := ranking.Top()
	if top.Estimate.TrainingHours != 7.9 {
		t.Errorf("top hours = %v, want the faster tied option", top.Estimate.TrainingHours)
	}
}

func TestRecommendBorderlineCaution(t *testing.T) {
	tight := option(costing.LocalFull, hardware.RTX4090, 60, 6, pricing.ConfidenceLive)
	tight.Borderline = true

	ranking, err := testRecommender().Recommend([]costing.Estimate{tight}, PriorityCost)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, _ := ranking.Top()
	if top.Caution == "" {
		t.Error("expected a caution for borderline memory fit")
	}
}

func TestRecommendFallbackCaution(t *testing.T) {
	stale := option(costing.CloudLoRA, hardware.A100, 60, 6, pricing.ConfidenceFallback)

	ranking, err := testRecommender().Recommend([]costing.Estimate{stale}, PriorityCost)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	top, _ := ranking.Top()
	if !strings.Contains(top.Caution, "fallback") {
		t.Errorf("caution = %q, want fallback pricing warning", top.Caution)
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	ranking, err := testRecommender().Recommend(nil, PriorityBalanced)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if _, ok := ranking.Top(); ok {
		t.Error("empty input should have no top recommendation")
	}
}

func TestRecommendUnknownPriority(t *testing.T) {
	_, err := testRecommender().Recommend(nil, Priority("vibes"))
	if _, ok := err.(*UnknownPriorityError); !ok {
		t.Errorf("err = %v, want *UnknownPriorityError", err)
	}
}
