package roi

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"testing"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func apiModel() catalog.ModelSpec {
	return catalog.ModelSpec{
		ID:                 "gpt-3.5-turbo",
		Family:             catalog.FamilyOpenAI,
		APIUsagePricePer1K: 0.002,
	}
}

func estimate(kind costing.ApproachKind, class hardware.Class, provider string, cost, hours float64) costing.Estimate {
	return costing.Estimate{
		Approach:      kind,
		Hardware:      class,
		Provider:      provider,
		CostUSD:       cost,
		TrainingHours: hours,
		GPUCount:      1,
		Confidence:    pricing.ConfidenceLive,
	}
}

func TestAnalyzeBreakEvenMath(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 90, 4),
	}

	// 500K tokens/month at $0.002/1K = $1/month... too small; use a
	// volume that produces a clean monthly cost: 50M tokens = $100/mo.
	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 50_000_000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if analysis.MonthlyAPICostUSD != 100 {
		t.Errorf("monthly api cost = %v, want 100", analysis.MonthlyAPICostUSD)
	}
	// Enterprise pattern: 90% savings * 1.5 multiplier = $135/month.
	if math.Abs(analysis.MonthlySavingsUSD-135) > 1e-9 {
		t.Errorf("monthly savings = %v, want 135", analysis.MonthlySavingsUSD)
	}
	want := 90.0 / 135.0
	if math.Abs(analysis.BreakEvenMonths-want) > 1e-9 {
		t.Errorf("break even = %v months, want %v", analysis.BreakEvenMonths, want)
	}
	if analysis.Category != BreakEvenExcellent {
		t.Errorf("category = %q, want excellent", analysis.Category)
	}
	if !analysis.HasBreakEven() {
		t.Error("expected break-even")
	}
}

func TestAnalyzeNoBreakEvenAtZeroUsage(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 90, 4),
	}

	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.HasBreakEven() {
		t.Errorf("break even = %v, want never", analysis.BreakEvenMonths)
	}
	if analysis.Category != BreakEvenNotViable {
		t.Errorf("category = %q, want not_viable", analysis.Category)
	}
	for _, p := range analysis.Projections {
		if p.BreakEvenAchieved {
			t.Errorf("projection at %d months claims break-even with zero savings", p.Months)
		}
	}
}

func TestAnalysisMarshalsNoBreakEvenAsNull(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 90, 4),
	}

	// Zero usage never breaks even, so break_even_months carries the
	// NoBreakEven sentinel everywhere.
	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		BreakEvenMonths *float64 `json:"break_even_months"`
		Category        string   `json:"category"`
		Scenarios       []struct {
			BreakEvenMonths *float64 `json:"break_even_months"`
		} `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.BreakEvenMonths != nil {
		t.Errorf("break_even_months = %v, want null", *decoded.BreakEvenMonths)
	}
	if decoded.Category != string(BreakEvenNotViable) {
		t.Errorf("category = %q, want not_viable", decoded.Category)
	}
	if len(decoded.Scenarios) == 0 {
		t.Fatal("expected scenarios in the document")
	}
	for i, s := range decoded.Scenarios {
		if s.BreakEvenMonths != nil {
			t.Errorf("scenario %d break_even_months = %v, want null", i, *s.BreakEvenMonths)
		}
	}
}

func TestAnalysisMarshalsFiniteBreakEven(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 90, 4),
	}

	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 50_000_000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded struct {
		BreakEvenMonths *float64 `json:"break_even_months"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.BreakEvenMonths == nil {
		t.Fatal("break_even_months = null, want the finite value")
	}
	if math.Abs(*decoded.BreakEvenMonths-analysis.BreakEvenMonths) > 1e-9 {
		t.Errorf("break_even_months = %v, want %v", *decoded.BreakEvenMonths, analysis.BreakEvenMonths)
	}
}

func TestAnalyzeNoAPIModel(t *testing.T) {
	model := catalog.ModelSpec{ID: "bert-base", Family: catalog.FamilyBERT}
	estimates := []costing.Estimate{
		estimate(costing.LocalFull, hardware.RTX3090, pricing.ProviderLocal, 10, 1),
	}

	_, err := testAnalyzer().Analyze(model, estimates, 100_000)
	if _, ok := err.(*NoSavingsError); !ok {
		t.Errorf("err = %v, want *NoSavingsError", err)
	}
}

func TestAnalyzeNoEstimates(t *testing.T) {
	_, err := testAnalyzer().Analyze(apiModel(), nil, 100_000)
	if _, ok := err.(*NoEstimatesError); !ok {
		t.Errorf("err = %v, want *NoEstimatesError", err)
	}
}

func TestAnalyzeScenarioSelection(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 50, 8),
		estimate(costing.CloudLoRA, hardware.A100, pricing.ProviderVastAI, 80, 2),
		estimate(costing.CloudFull, hardware.H100, pricing.ProviderLambdaLabs, 300, 1),
	}

	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 50_000_000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	names := make(map[string]Scenario)
	for _, s := range analysis.Scenarios {
		names[s.Name] = s
	}
	if s, ok := names["best_cost"]; !ok || s.Estimate.CostUSD != 50 {
		t.Errorf("best_cost = %+v, want the $50 local option", s.Estimate)
	}
	if s, ok := names["fastest_training"]; !ok || s.Estimate.TrainingHours != 1 {
		t.Errorf("fastest_training = %+v, want the 1h option", s.Estimate)
	}
	if s, ok := names["best_cloud"]; !ok || s.Estimate.CostUSD != 80 {
		t.Errorf("best_cloud = %+v, want the $80 cloud option", s.Estimate)
	}
	// best_local duplicates best_cost here and must be skipped.
	if _, ok := names["best_local"]; ok {
		t.Error("best_local should be skipped when it equals best_cost")
	}
	if len(analysis.Scenarios) > 4 {
		t.Errorf("scenarios = %d, want at most 4", len(analysis.Scenarios))
	}
}

func TestAnalyzeProjectionHorizons(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 270, 4),
	}

	analysis, err := testAnalyzer().Analyze(apiModel(), estimates, 50_000_000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(analysis.Projections) != 6 {
		t.Fatalf("projections = %d, want 6", len(analysis.Projections))
	}
	// $135/month savings against $270: month 1 is negative, month 3 on
	// is positive.
	first := analysis.Projections[0]
	if first.Months != 1 || first.BreakEvenAchieved {
		t.Errorf("month 1 projection = %+v, want pre-break-even", first)
	}
	third := analysis.Projections[1]
	if third.Months != 3 || !third.BreakEvenAchieved {
		t.Errorf("month 3 projection = %+v, want post-break-even", third)
	}
	if math.Abs(third.CumulativeSavingsUSD-(135*3-270)) > 1e-9 {
		t.Errorf("month 3 cumulative = %v, want 135", third.CumulativeSavingsUSD)
	}
}

func TestAnalyzeUsageLevels(t *testing.T) {
	estimates := []costing.Estimate{
		estimate(costing.LocalLoRA, hardware.RTX4090, pricing.ProviderLocal, 90, 4),
	}

	analyses, err := testAnalyzer().AnalyzeUsageLevels(apiModel(), estimates, nil)
	if err != nil {
		t.Fatalf("AnalyzeUsageLevels: %v", err)
	}
	if len(analyses) != len(DefaultUsageVolumes) {
		t.Fatalf("analyses = %d, want %d", len(analyses), len(DefaultUsageVolumes))
	}

	wantPatterns := []UsagePattern{UsageLight, UsageModerate, UsageHeavy, UsageEnterprise}
	for i, a := range analyses {
		if a.MonthlyTokens != DefaultUsageVolumes[i] {
			t.Errorf("analyses[%d].MonthlyTokens = %d, want %d", i, a.MonthlyTokens, DefaultUsageVolumes[i])
		}
		if a.Pattern != wantPatterns[i] {
			t.Errorf("analyses[%d].Pattern = %q, want %q", i, a.Pattern, wantPatterns[i])
		}
		if i > 0 && a.MonthlyAPICostUSD <= analyses[i-1].MonthlyAPICostUSD {
			t.Errorf("analyses[%d] api cost %v not increasing past %v",
				i, a.MonthlyAPICostUSD, analyses[i-1].MonthlyAPICostUSD)
		}
	}

	noAPI := catalog.ModelSpec{ID: "bert-base", Family: catalog.FamilyBERT}
	if _, err := testAnalyzer().AnalyzeUsageLevels(noAPI, estimates, nil); err == nil {
		t.Error("AnalyzeUsageLevels on a model without API pricing succeeded, want error")
	}
}

func TestPatternForTokens(t *testing.T) {
	tests := []struct {
		tokens int64
		want   UsagePattern
	}{
		{5_000, UsageLight},
		{50_000, UsageModerate},
		{500_000, UsageHeavy},
		{5_000_000, UsageEnterprise},
	}
	for _, tt := range tests {
		if got := PatternForTokens(tt.tokens); got != tt.want {
			t.Errorf("PatternForTokens(%d) = %q, want %q", tt.tokens, got, tt.want)
		}
	}
}

func TestRiskAssessment(t *testing.T) {
	multiGPU := estimate(costing.LocalQLoRA, hardware.RTX3090, pricing.ProviderLocal, 40, 10)
	multiGPU.GPUCount = 4

	analysis, err := testAnalyzer().Analyze(apiModel(), []costing.Estimate{multiGPU}, 5_000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	risk := analysis.Risk
	if risk.Factors["usage_volatility"] != RiskHigh {
		t.Errorf("usage_volatility = %q, want high for light usage", risk.Factors["usage_volatility"])
	}
	if risk.Factors["setup_complexity"] != RiskHigh {
		t.Errorf("setup_complexity = %q, want high for 4 GPUs", risk.Factors["setup_complexity"])
	}
	if risk.Factors["adapter_quality"] != RiskMedium {
		t.Errorf("adapter_quality = %q, want medium for qlora", risk.Factors["adapter_quality"])
	}
	if risk.Overall == RiskLow {
		t.Error("overall risk should not be low for light usage on a multi-GPU rig")
	}
}
