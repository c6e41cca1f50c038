package chunks

import (
	"math"
	"testing"
)

func TestAnalyzeBasicStats(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	stats, err := analyzer.Analyze([]int{100, 200, 300}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if stats.TotalChunks != 3 {
		t.Errorf("total chunks = %d, want 3", stats.TotalChunks)
	}
	if stats.TotalTokens != 600 {
		t.Errorf("total tokens = %d, want 600", stats.TotalTokens)
	}
	if stats.MinTokens != 100 || stats.MaxTokens != 300 {
		t.Errorf("min/max = %d/%d, want 100/300", stats.MinTokens, stats.MaxTokens)
	}
	if stats.MeanTokens != 200 {
		t.Errorf("mean = %v, want 200", stats.MeanTokens)
	}
	if stats.OverLimit != 0 {
		t.Errorf("over limit = %d, want 0", stats.OverLimit)
	}
}

func TestAnalyzeEmptySequence(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	stats, err := analyzer.Analyze(nil, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if stats.TotalChunks != 0 || stats.TotalTokens != 0 {
		t.Errorf("stats = %+v, want neutral zeros", stats)
	}
	if stats.EfficiencyScore != 0 {
		t.Errorf("efficiency = %v, want 0", stats.EfficiencyScore)
	}
	if len(stats.Distribution) != 5 {
		t.Errorf("buckets = %d, want 5 labeled empty buckets", len(stats.Distribution))
	}
}

func TestAnalyzeInvalidLimit(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	for _, limit := range []int{0, -10} {
		if _, err := analyzer.Analyze([]int{10}, limit); err == nil {
			t.Errorf("limit %d: expected error", limit)
		}
	}
}

func TestAnalyzeEfficiencyScoring(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Limit 100, sweet spot 80-100: chunks at 85 and 95 (ideal), 120
	// (over).
	stats, err := analyzer.Analyze([]int{85, 95, 120}, 100)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := (1.0 + 1.0 + 0.3) / 3 * 100
	if math.Abs(stats.EfficiencyScore-want) > 1e-9 {
		t.Errorf("efficiency = %v, want %v", stats.EfficiencyScore, want)
	}
	if stats.OverLimit != 1 {
		t.Errorf("over limit = %d, want 1", stats.OverLimit)
	}
	if math.Abs(stats.OverLimitPercent-100.0/3) > 1e-9 {
		t.Errorf("over limit pct = %v, want 33.3", stats.OverLimitPercent)
	}
}

func TestAnalyzeUnderFilledChunksPenalized(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Chunks at 1% of the limit waste the context window and must not
	// score as ideal.
	stats, err := analyzer.Analyze([]int{5, 5, 5, 5}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if stats.EfficiencyScore != 20 {
		t.Errorf("far-under efficiency = %v, want 20", stats.EfficiencyScore)
	}
	found := false
	for _, rec := range stats.Recommendations {
		if rec != "" {
			found = true
		}
	}
	if !found {
		t.Error("far-under chunks should yield recommendations")
	}

	// The score rises with fill level up to the sweet spot.
	fills := []struct {
		count int
		want  float64
	}{
		{40, 20},   // <10% of 512
		{150, 50},  // 10-40%
		{300, 80},  // 40-80%
		{440, 100}, // 80-100%
	}
	for _, tt := range fills {
		stats, err := analyzer.Analyze([]int{tt.count}, 512)
		if err != nil {
			t.Fatalf("Analyze(%d): %v", tt.count, err)
		}
		if stats.EfficiencyScore != tt.want {
			t.Errorf("efficiency at %d tokens = %v, want %v", tt.count, stats.EfficiencyScore, tt.want)
		}
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	perfect, err := analyzer.Analyze([]int{450, 440, 460}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if perfect.EfficiencyScore != 100 {
		t.Errorf("all-ideal efficiency = %v, want 100", perfect.EfficiencyScore)
	}

	poor, err := analyzer.Analyze([]int{600, 700, 800}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if poor.EfficiencyScore != 30 {
		t.Errorf("all-over efficiency = %v, want 30", poor.EfficiencyScore)
	}
	if poor.EfficiencyScore < 0 || poor.EfficiencyScore > 100 {
		t.Errorf("efficiency %v out of [0,100]", poor.EfficiencyScore)
	}
}

func TestAnalyzeDistributionBuckets(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Limit 1000: 50 -> <10%, 250 -> 10-40%, 500 -> 40-80%,
	// 900 -> 80-100%, 1000 -> 80-100% (limit inclusive), 1100 -> over.
	stats, err := analyzer.Analyze([]int{50, 250, 500, 900, 1000, 1100}, 1000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	wantCounts := []int{1, 1, 1, 2, 1}
	if len(stats.Distribution) != len(wantCounts) {
		t.Fatalf("buckets = %d, want %d", len(stats.Distribution), len(wantCounts))
	}
	for i, want := range wantCounts {
		if stats.Distribution[i].Count != want {
			t.Errorf("bucket %d (%s) = %d, want %d", i, stats.Distribution[i].Label, stats.Distribution[i].Count, want)
		}
	}
}

func TestAnalyzeCustomBucketEdges(t *testing.T) {
	analyzer := NewAnalyzer([]float64{0.5, 1.0})

	stats, err := analyzer.Analyze([]int{20, 80}, 100)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(stats.Distribution) != 3 {
		t.Fatalf("buckets = %d, want 3 (two ranges + over)", len(stats.Distribution))
	}
	if stats.Distribution[0].Count != 1 || stats.Distribution[1].Count != 1 {
		t.Errorf("distribution = %+v, want one chunk per range", stats.Distribution)
	}
}

func TestAnalyzeRecommendations(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	tiny, err := analyzer.Analyze([]int{10, 20, 30}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(tiny.Recommendations) == 0 {
		t.Error("tiny chunks should yield a merge recommendation")
	}

	healthy, err := analyzer.Analyze([]int{440, 450, 460}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(healthy.Recommendations) != 0 {
		t.Errorf("healthy chunks got recommendations: %v", healthy.Recommendations)
	}
}

func TestAnalyzeNegativeCountsClamped(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	stats, err := analyzer.Analyze([]int{-5, 100}, 512)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if stats.TotalTokens != 100 {
		t.Errorf("total = %d, want 100 (negative clamped)", stats.TotalTokens)
	}
	if stats.MinTokens != 0 {
		t.Errorf("min = %d, want 0", stats.MinTokens)
	}
}
