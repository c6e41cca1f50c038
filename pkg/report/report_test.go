package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
	"tokenworks/atlas/pkg/recommend"
	"tokenworks/atlas/pkg/roi"
)

func sampleReport() *Report {
	r := New("llama-2-7b", 48_500)
	r.Estimates = []costing.Estimate{
		{
			Approach:      costing.LocalLoRA,
			Hardware:      hardware.RTX4090,
			GPUCount:      2,
			Provider:      pricing.ProviderLocal,
			HourlyUSD:     0.22,
			TrainingHours: 3.5,
			CostUSD:       1.54,
			CostLowUSD:    1.39,
			CostHighUSD:   1.69,
			Confidence:    pricing.ConfidenceLive,
		},
		{
			Approach:      costing.CloudLoRA,
			Hardware:      hardware.A100,
			GPUCount:      1,
			Provider:      pricing.ProviderVastAI,
			HourlyUSD:     0.90,
			TrainingHours: 0.5,
			CostUSD:       0.52,
			CostLowUSD:    0.26,
			CostHighUSD:   0.78,
			Confidence:    pricing.ConfidenceFallback,
		},
	}
	r.Ranking = &recommend.Ranking{
		Priority: recommend.PriorityCost,
		Entries: []recommend.Entry{
			{Rank: 1, Estimate: r.Estimates[1], Caution: "pricing is from the static fallback table"},
			{Rank: 2, Estimate: r.Estimates[0]},
		},
	}
	return r
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, b := New("m", 1), New("m", 1)
	if a.AnalysisID == "" || a.AnalysisID == b.AnalysisID {
		t.Errorf("ids = %q, %q; want distinct non-empty", a.AnalysisID, b.AnalysisID)
	}
}

func TestJSONExportStableFields(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, field := range []string{"analysis_id", "generated_at", "model_id", "tokens", "estimates", "ranking"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing field %q", field)
		}
	}

	estimates, ok := decoded["estimates"].([]any)
	if !ok || len(estimates) != 2 {
		t.Fatalf("estimates = %v, want 2 entries", decoded["estimates"])
	}
	first := estimates[0].(map[string]any)
	for _, field := range []string{"approach", "cost_usd", "cost_low_usd", "cost_high_usd", "confidence"} {
		if _, ok := first[field]; !ok {
			t.Errorf("estimate missing field %q", field)
		}
	}
}

func TestJSONExportNeverBreakEvenROI(t *testing.T) {
	r := sampleReport()
	r.ROI = &roi.Analysis{
		ModelID:         r.ModelID,
		Pattern:         roi.UsageLight,
		BreakEvenMonths: roi.NoBreakEven,
		Category:        roi.BreakEvenNotViable,
		Scenarios: []roi.Scenario{
			{Name: "best_cost", Estimate: r.Estimates[0], BreakEvenMonths: roi.NoBreakEven},
		},
	}

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(r, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded struct {
		ROI struct {
			BreakEvenMonths *float64 `json:"break_even_months"`
		} `json:"roi"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.ROI.BreakEvenMonths != nil {
		t.Errorf("roi break_even_months = %v, want null", *decoded.ROI.BreakEvenMonths)
	}
}

func TestJSONExportPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(true).Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("pretty output should be indented")
	}
}

func TestCSVExportRowPerApproach(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter(true).Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 data rows", len(rows))
	}
	if rows[0][0] != "analysis_id" || rows[0][3] != "approach" {
		t.Errorf("header = %v", rows[0])
	}

	// First data row follows estimate order.
	if rows[1][3] != "local_lora" {
		t.Errorf("row 1 approach = %q, want local_lora", rows[1][3])
	}
	// Rank column comes from the ranking: the cloud option is rank 1.
	if rows[2][13] != "1" {
		t.Errorf("cloud row rank = %q, want 1", rows[2][13])
	}
	if rows[1][13] != "2" {
		t.Errorf("local row rank = %q, want 2", rows[1][13])
	}
	if !strings.Contains(rows[2][14], "fallback") {
		t.Errorf("cloud row caution = %q, want fallback note", rows[2][14])
	}
}

func TestCSVExportWithoutRanking(t *testing.T) {
	r := sampleReport()
	r.Ranking = nil

	var buf bytes.Buffer
	if err := NewCSVExporter(true).Export(r, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if rows[1][13] != "" {
		t.Errorf("rank = %q, want empty without ranking", rows[1][13])
	}
}
