// Package recommend ranks training options under a stated priority and
// produces a justified recommendation list.
package recommend

import (
	"fmt"
	"log/slog"
	"sort"

	"tokenworks/atlas/pkg/costing"
)

// Priority selects the ranking objective.
type Priority string

const (
	// PriorityCost ranks by total cost ascending.
	PriorityCost Priority = "cost"

	// PrioritySpeed ranks by training time ascending.
	PrioritySpeed Priority = "speed"

	// PriorityBalanced ranks by a weighted composite of normalized
	// cost and time.
	PriorityBalanced Priority = "balanced"
)

// Valid reports whether p names a known priority.
func (p Priority) Valid() bool {
	return p == PriorityCost || p == PrioritySpeed || p == PriorityBalanced
}

// Weights are the composite-score coefficients for balanced ranking.
type Weights struct {
	// Cost and Time must sum to 1.
	Cost float64 `yaml:"cost" json:"cost"`
	Time float64 `yaml:"time" json:"time"`
}

// DefaultWeights favor cost over speed.
func DefaultWeights() Weights {
	return Weights{Cost: 0.7, Time: 0.3}
}

// tieTolerance is the relative score window inside which entries are
// considered tied with the leader.
const tieTolerance = 0.02

// UnknownPriorityError indicates an unrecognized ranking priority.
type UnknownPriorityError struct {
	Priority Priority
}

// Error implements the error interface.
func (e *UnknownPriorityError) Error() string {
	return fmt.Sprintf("unknown ranking priority %q", e.Priority)
}

// Entry is one ranked training option.
type Entry struct {
	// Rank starts at 1 for the top recommendation.
	Rank int `json:"rank"`

	// Estimate is the underlying costed option.
	Estimate costing.Estimate `json:"estimate"`

	// Score is the composite score in [0,1]; lower is better. For
	// cost and speed priorities it is the normalized single metric.
	Score float64 `json:"score"`

	// Justification is a one-line reason for the placement.
	Justification string `json:"justification"`

	// Caution warns about borderline hardware fits or low-confidence
	// pricing; empty when there is nothing to flag.
	Caution string `json:"caution,omitempty"`
}

// Ranking is an ordered recommendation list.
type Ranking struct {
	// Priority is the objective the list was ranked under.
	Priority Priority `json:"priority"`

	// Entries are ordered best first.
	Entries []Entry `json:"entries"`
}

// Top returns the leading recommendation.
func (r Ranking) Top() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// Recommender ranks cost estimates.
type Recommender struct {
	weights Weights
	logger  *slog.Logger
}

// NewRecommender creates a recommender. Zero weights use the defaults;
// a nil logger falls back to slog.Default.
func NewRecommender(weights Weights, logger *slog.Logger) *Recommender {
	if weights.Cost == 0 && weights.Time == 0 {
		weights = DefaultWeights()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommender{weights: weights, logger: logger}
}

// Recommend ranks the estimates under the priority. An empty input
// yields an empty ranking. Within the tie tolerance of the leader,
// fresher pricing confidence wins, then shorter training time.
func (r *Recommender) Recommend(estimates []costing.Estimate, priority Priority) (Ranking, error) {
	if !priority.Valid() {
		return Ranking{}, &UnknownPriorityError{Priority: priority}
	}
	if len(estimates) == 0 {
		return Ranking{Priority: priority}, nil
	}

	scored := r.score(estimates, priority)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})
	r.breakTies(scored)

	for i := range scored {
		scored[i].Rank = i + 1
		scored[i].Justification = justify(scored[i], priority, i == 0)
		scored[i].Caution = caution(scored[i].Estimate)
	}

	r.logger.Debug("recommendation ranked",
		"priority", string(priority),
		"options", len(scored),
	)
	return Ranking{Priority: priority, Entries: scored}, nil
}

func (r *Recommender) score(estimates []costing.Estimate, priority Priority) []Entry {
	costLo, costHi := bounds(estimates, func(e costing.Estimate) float64 { return e.CostUSD })
	timeLo, timeHi := bounds(estimates, func(e costing.Estimate) float64 { return e.TrainingHours })

	entries := make([]Entry, len(estimates))
	for i, est := range estimates {
		normCost := normalize(est.CostUSD, costLo, costHi)
		normTime := normalize(est.TrainingHours, timeLo, timeHi)

		var score float64
		switch priority {
		case PriorityCost:
			score = normCost
		case PrioritySpeed:
			score = normTime
		default:
			score = r.weights.Cost*normCost + r.weights.Time*normTime
		}
		entries[i] = Entry{Estimate: est, Score: score}
	}
	return entries
}

// breakTies reorders the leading tie group: entries within tieTolerance
// of the best score are sorted by pricing confidence (fresher first),
// then training time.
func (r *Recommender) breakTies(entries []Entry) {
	if len(entries) < 2 {
		return
	}
	top := entries[0].Score

	end := 1
	for end < len(entries) && entries[end].Score-top <= tieTolerance {
		end++
	}
	if end < 2 {
		return
	}

	tied := entries[:end]
	sort.SliceStable(tied, func(i, j int) bool {
		a, b := tied[i].Estimate, tied[j].Estimate
		if a.Confidence != b.Confidence {
			return a.Confidence.Fresher(b.Confidence)
		}
		return a.TrainingHours < b.TrainingHours
	})
}

func justify(e Entry, priority Priority, top bool) string {
	est := e.Estimate
	label := string(est.Approach)
	if est.Hardware != "" {
		label = fmt.Sprintf("%s on %dx %s via %s", est.Approach, est.GPUCount, est.Hardware, est.Provider)
	}

	switch {
	case top && priority == PriorityCost:
		return fmt.Sprintf("cheapest option: %s at $%.2f", label, est.CostUSD)
	case top && priority == PrioritySpeed:
		if est.TrainingHours > 0 {
			return fmt.Sprintf("fastest option: %s at %.1fh", label, est.TrainingHours)
		}
		return fmt.Sprintf("fastest option: %s (managed, no local training time)", label)
	case top:
		return fmt.Sprintf("best cost/time balance: %s at $%.2f, %.1fh", label, est.CostUSD, est.TrainingHours)
	default:
		return fmt.Sprintf("%s at $%.2f", label, est.CostUSD)
	}
}

func caution(est costing.Estimate) string {
	switch {
	case est.Borderline:
		return "memory utilization is near the hardware ceiling; the run may need the next GPU tier"
	case est.Confidence.BandWidth() >= 0.5:
		return "pricing is from the static fallback table; actual rates may differ substantially"
	default:
		return ""
	}
}

func bounds(estimates []costing.Estimate, metric func(costing.Estimate) float64) (lo, hi float64) {
	lo, hi = metric(estimates[0]), metric(estimates[0])
	for _, e := range estimates[1:] {
		v := metric(e)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
