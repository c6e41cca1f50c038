// Package chunks computes descriptive statistics and an efficiency
// score over per-chunk token counts.
//
// The analyzer consumes integer token counts produced by an external
// tokenizer; it never tokenizes text itself. Its total-token output is
// what feeds the cost engine.
package chunks

import (
	"fmt"
	"sort"
)

const (
	// Fill-level boundaries as fractions of the token limit, shared by
	// the score and the default distribution buckets. The sweet spot
	// is 80-100% of the limit.
	farUnderFraction  = 0.1
	underFraction     = 0.4
	sweetSpotFraction = 0.8

	// Per-chunk scores by fill level. Over-limit chunks take the
	// heaviest penalty; under-filled chunks waste context window and
	// grade down with distance from the sweet spot.
	scoreIdeal     = 1.0
	scoreGood      = 0.8
	scoreUnder     = 0.5
	scoreFarUnder  = 0.2
	scoreOverLimit = 0.3
)

// DefaultBucketEdges are the distribution boundaries as fractions of
// the token limit. A count in [0.1, 0.4) of the limit lands in the
// second bucket, and so on; over-limit counts get their own bucket.
var DefaultBucketEdges = []float64{farUnderFraction, underFraction, sweetSpotFraction, 1.0}

// Bucket is one bar of the token distribution.
type Bucket struct {
	// Label describes the range (e.g. "10-40%").
	Label string `json:"label"`

	// Count is how many chunks fell in the range.
	Count int `json:"count"`
}

// Stats summarizes a chunk sequence.
type Stats struct {
	// TotalChunks is the sequence length.
	TotalChunks int `json:"total_chunks"`

	// TotalTokens is the sum of all counts; this value feeds cost
	// estimation.
	TotalTokens int64 `json:"total_tokens"`

	// MinTokens, MaxTokens, and MeanTokens describe the distribution.
	MinTokens  int     `json:"min_tokens"`
	MaxTokens  int     `json:"max_tokens"`
	MeanTokens float64 `json:"mean_tokens"`

	// TokenLimit is the per-chunk target the analysis ran against.
	TokenLimit int `json:"token_limit"`

	// OverLimit is how many chunks exceed the limit.
	OverLimit int `json:"over_limit"`

	// OverLimitPercent is OverLimit relative to TotalChunks.
	OverLimitPercent float64 `json:"over_limit_percent"`

	// EfficiencyScore grades context-window utilization in [0,100].
	EfficiencyScore float64 `json:"efficiency_score"`

	// Distribution buckets the counts by fill level.
	Distribution []Bucket `json:"distribution"`

	// Recommendations suggest chunking adjustments; empty when the
	// sequence looks healthy.
	Recommendations []string `json:"recommendations,omitempty"`
}

// InvalidLimitError indicates a non-positive token limit.
type InvalidLimitError struct {
	Limit int
}

// Error implements the error interface.
func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid token limit %d: must be positive", e.Limit)
}

// Analyzer computes chunk statistics against configurable bucket edges.
type Analyzer struct {
	edges []float64
}

// NewAnalyzer creates an analyzer. Nil edges use DefaultBucketEdges;
// custom edges must be ascending fractions ending at 1.0.
func NewAnalyzer(edges []float64) *Analyzer {
	if len(edges) == 0 {
		edges = DefaultBucketEdges
	}
	copied := make([]float64, len(edges))
	copy(copied, edges)
	sort.Float64s(copied)
	return &Analyzer{edges: copied}
}

// Analyze computes statistics for the token counts against the
// per-chunk limit. An empty sequence yields neutral zero-valued Stats,
// not an error. Negative counts are treated as zero.
func (a *Analyzer) Analyze(tokenCounts []int, tokenLimit int) (Stats, error) {
	if tokenLimit <= 0 {
		return Stats{}, &InvalidLimitError{Limit: tokenLimit}
	}

	stats := Stats{
		TokenLimit:   tokenLimit,
		Distribution: a.emptyBuckets(),
	}
	if len(tokenCounts) == 0 {
		return stats, nil
	}

	stats.TotalChunks = len(tokenCounts)
	stats.MinTokens = clampNonNegative(tokenCounts[0])

	scoreSum := 0.0
	for _, raw := range tokenCounts {
		count := clampNonNegative(raw)
		stats.TotalTokens += int64(count)
		if count < stats.MinTokens {
			stats.MinTokens = count
		}
		if count > stats.MaxTokens {
			stats.MaxTokens = count
		}
		if count > tokenLimit {
			stats.OverLimit++
		}

		scoreSum += chunkScore(count, tokenLimit)
		stats.Distribution[a.bucketIndex(count, tokenLimit)].Count++
	}

	n := float64(stats.TotalChunks)
	stats.MeanTokens = float64(stats.TotalTokens) / n
	stats.OverLimitPercent = float64(stats.OverLimit) / n * 100
	stats.EfficiencyScore = scoreSum / n * 100
	stats.Recommendations = recommendations(stats)
	return stats, nil
}

// chunkScore grades one chunk's fill level against the limit.
func chunkScore(count, tokenLimit int) float64 {
	fill := float64(count) / float64(tokenLimit)
	switch {
	case fill > 1:
		return scoreOverLimit
	case fill >= sweetSpotFraction:
		return scoreIdeal
	case fill >= underFraction:
		return scoreGood
	case fill >= farUnderFraction:
		return scoreUnder
	default:
		return scoreFarUnder
	}
}

// emptyBuckets builds the labeled zero-count distribution.
func (a *Analyzer) emptyBuckets() []Bucket {
	buckets := make([]Bucket, 0, len(a.edges)+1)
	prev := 0.0
	for _, edge := range a.edges {
		buckets = append(buckets, Bucket{
			Label: fmt.Sprintf("%.0f-%.0f%%", prev*100, edge*100),
		})
		prev = edge
	}
	buckets = append(buckets, Bucket{Label: "over limit"})
	return buckets
}

// bucketIndex places a count. The final edge is inclusive so a chunk
// exactly at the limit is not "over limit".
func (a *Analyzer) bucketIndex(count, tokenLimit int) int {
	fill := float64(count) / float64(tokenLimit)
	for i, edge := range a.edges {
		if fill < edge || (edge == a.edges[len(a.edges)-1] && fill <= edge) {
			return i
		}
	}
	return len(a.edges)
}

// recommendations flags common chunking problems.
func recommendations(stats Stats) []string {
	var out []string
	if stats.OverLimitPercent > 10 {
		out = append(out, fmt.Sprintf("%.0f%% of chunks exceed the %d-token limit; reduce chunk size or raise the limit", stats.OverLimitPercent, stats.TokenLimit))
	}
	if stats.MeanTokens < float64(stats.TokenLimit)*0.4 {
		out = append(out, "chunks average well under the limit; merging adjacent chunks would use the context window better")
	}
	if stats.EfficiencyScore < 50 {
		out = append(out, "overall efficiency is low; re-chunk targeting 80-100% of the token limit")
	}
	return out
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
