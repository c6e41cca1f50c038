package roi

import (
	"fmt"
	"log/slog"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/costing"
)

const (
	// savingsRate is the assumed API spend reduction after training.
	// A tuned model still leans on the hosted API for overflow and
	// evaluation traffic, hence the residual.
	savingsRate = 0.90

	// maxScenarios caps the comparison list.
	maxScenarios = 4
)

// projectionHorizons are the standard evaluation points in months.
var projectionHorizons = []int{1, 3, 6, 12, 18, 24}

// NoSavingsError indicates the model has no hosted API to compare
// against, so ROI is undefined.
type NoSavingsError struct {
	ModelID string
}

// Error implements the error interface.
func (e *NoSavingsError) Error() string {
	return fmt.Sprintf("model %q has no hosted API pricing; nothing to save against", e.ModelID)
}

// NoEstimatesError indicates no training options were supplied.
type NoEstimatesError struct{}

// Error implements the error interface.
func (e *NoEstimatesError) Error() string {
	return "no training estimates to analyze"
}

// Analyzer evaluates training investments against API baselines.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an ROI analyzer. A nil logger falls back to
// slog.Default.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze evaluates the training options against the model's hosted-API
// baseline at the given monthly volume. The usage pattern is derived
// from the volume.
//
// Estimates must be non-empty and the model must carry API usage
// pricing; otherwise a typed error is returned.
func (a *Analyzer) Analyze(model catalog.ModelSpec, estimates []costing.Estimate, monthlyTokens int64) (Analysis, error) {
	if len(estimates) == 0 {
		return Analysis{}, &NoEstimatesError{}
	}
	if model.APIUsagePricePer1K <= 0 {
		return Analysis{}, &NoSavingsError{ModelID: model.ID}
	}
	if monthlyTokens < 0 {
		monthlyTokens = 0
	}

	pattern := PatternForTokens(monthlyTokens)
	monthlyAPICost := float64(monthlyTokens) / 1000 * model.APIUsagePricePer1K
	monthlySavings := monthlyAPICost * savingsRate * pattern.savingsMultiplier()

	best := bestByCost(estimates)
	breakEven := breakEvenMonths(best.CostUSD, monthlySavings)

	analysis := Analysis{
		ModelID:           model.ID,
		Pattern:           pattern,
		MonthlyTokens:     monthlyTokens,
		MonthlyAPICostUSD: monthlyAPICost,
		MonthlySavingsUSD: monthlySavings,
		BreakEvenMonths:   breakEven,
		Category:          CategorizeBreakEven(breakEven),
		Projections:       projections(best.CostUSD, monthlySavings),
		Scenarios:         a.scenarios(estimates, monthlySavings),
		Risk:              assessRisk(best, pattern),
	}

	a.logger.Debug("roi analysis completed",
		"model", model.ID,
		"pattern", string(pattern),
		"break_even_months", breakEven,
		"category", string(analysis.Category),
	)
	return analysis, nil
}

// DefaultUsageVolumes are representative monthly volumes for each usage
// pattern, used by AnalyzeUsageLevels.
var DefaultUsageVolumes = []int64{5_000, 50_000, 500_000, 5_000_000}

// AnalyzeUsageLevels runs the analysis across several monthly volumes,
// reusing the same estimates. Nil volumes use DefaultUsageVolumes, one
// per usage pattern. The result answers "at what usage does training
// start paying off" in a single call.
func (a *Analyzer) AnalyzeUsageLevels(model catalog.ModelSpec, estimates []costing.Estimate, volumes []int64) ([]Analysis, error) {
	if len(volumes) == 0 {
		volumes = DefaultUsageVolumes
	}
	out := make([]Analysis, 0, len(volumes))
	for _, v := range volumes {
		analysis, err := a.Analyze(model, estimates, v)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, nil
}

// scenarios builds up to four comparison scenarios: cheapest overall,
// fastest training, cheapest local, cheapest cloud. Duplicates of the
// cheapest option are skipped.
func (a *Analyzer) scenarios(estimates []costing.Estimate, monthlySavings float64) []Scenario {
	best := bestByCost(estimates)
	out := []Scenario{makeScenario("best_cost", best, monthlySavings)}

	if fastest, ok := fastestTraining(estimates); ok && !sameOption(fastest, best) {
		out = append(out, makeScenario("fastest_training", fastest, monthlySavings))
	}
	if local, ok := bestWhere(estimates, func(e costing.Estimate) bool { return e.Approach.Local() }); ok && !sameOption(local, best) {
		out = append(out, makeScenario("best_local", local, monthlySavings))
	}
	if cloud, ok := bestWhere(estimates, func(e costing.Estimate) bool { return e.Approach.Cloud() }); ok && !sameOption(cloud, best) {
		out = append(out, makeScenario("best_cloud", cloud, monthlySavings))
	}

	if len(out) > maxScenarios {
		out = out[:maxScenarios]
	}
	return out
}

func makeScenario(name string, est costing.Estimate, monthlySavings float64) Scenario {
	return Scenario{
		Name:              name,
		Estimate:          est,
		MonthlySavingsUSD: monthlySavings,
		BreakEvenMonths:   breakEvenMonths(est.CostUSD, monthlySavings),
		Savings12MoUSD:    monthlySavings*12 - est.CostUSD,
		Savings24MoUSD:    monthlySavings*24 - est.CostUSD,
	}
}

func breakEvenMonths(trainingCost, monthlySavings float64) float64 {
	if monthlySavings <= 0 {
		return NoBreakEven
	}
	return trainingCost / monthlySavings
}

func projections(trainingCost, monthlySavings float64) []Projection {
	out := make([]Projection, 0, len(projectionHorizons))
	for _, months := range projectionHorizons {
		cumulative := monthlySavings*float64(months) - trainingCost
		roiPct := 0.0
		if trainingCost > 0 {
			roiPct = cumulative / trainingCost * 100
		}
		out = append(out, Projection{
			Months:               months,
			CumulativeSavingsUSD: cumulative,
			ROIPercent:           roiPct,
			BreakEvenAchieved:    cumulative > 0,
		})
	}
	return out
}

// assessRisk grades the best option's investment risks: usage
// volatility, hardware obsolescence, API price drift, adapter quality,
// and multi-GPU complexity.
func assessRisk(best costing.Estimate, pattern UsagePattern) RiskAssessment {
	factors := make(map[string]RiskLevel)
	var notes []string

	switch pattern {
	case UsageLight:
		factors["usage_volatility"] = RiskHigh
		notes = append(notes, "low usage may not justify the training investment")
	case UsageEnterprise:
		factors["usage_volatility"] = RiskLow
	default:
		factors["usage_volatility"] = RiskMedium
	}

	if best.Approach.Local() {
		factors["hardware_obsolescence"] = RiskMedium
		notes = append(notes, "owned hardware may become obsolete before payoff")
	} else {
		factors["hardware_obsolescence"] = RiskLow
	}

	factors["api_price_drift"] = RiskMedium
	notes = append(notes, "API prices may decrease, reducing projected savings")

	switch best.Approach {
	case costing.LocalLoRA, costing.CloudLoRA, costing.LocalQLoRA:
		factors["adapter_quality"] = RiskMedium
		notes = append(notes, "adapter training may yield lower quality than full fine-tuning")
	default:
		factors["adapter_quality"] = RiskLow
	}

	if best.GPUCount > 1 {
		factors["setup_complexity"] = RiskHigh
		notes = append(notes, "multi-GPU setup increases complexity and failure risk")
	} else {
		factors["setup_complexity"] = RiskLow
	}

	return RiskAssessment{
		Overall: overallRisk(factors),
		Factors: factors,
		Notes:   notes,
	}
}

// riskWeights weight each factor's contribution to the overall grade.
var riskWeights = map[string]float64{
	"usage_volatility":      0.3,
	"hardware_obsolescence": 0.2,
	"api_price_drift":       0.2,
	"adapter_quality":       0.2,
	"setup_complexity":      0.1,
}

func overallRisk(factors map[string]RiskLevel) RiskLevel {
	values := map[RiskLevel]float64{RiskLow: 1, RiskMedium: 2, RiskHigh: 3}

	weighted := 0.0
	for factor, level := range factors {
		weighted += riskWeights[factor] * values[level]
	}
	switch {
	case weighted < 1.5:
		return RiskLow
	case weighted < 2.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func bestByCost(estimates []costing.Estimate) costing.Estimate {
	best := estimates[0]
	for _, e := range estimates[1:] {
		if e.CostUSD < best.CostUSD {
			best = e
		}
	}
	return best
}

// fastestTraining picks the option with the shortest wall-clock time.
// API options carry no duration and are skipped.
func fastestTraining(estimates []costing.Estimate) (costing.Estimate, bool) {
	return bestBy(estimates, func(e costing.Estimate) bool { return e.TrainingHours > 0 },
		func(a, b costing.Estimate) bool { return a.TrainingHours < b.TrainingHours })
}

func bestWhere(estimates []costing.Estimate, keep func(costing.Estimate) bool) (costing.Estimate, bool) {
	return bestBy(estimates, keep,
		func(a, b costing.Estimate) bool { return a.CostUSD < b.CostUSD })
}

func bestBy(estimates []costing.Estimate, keep func(costing.Estimate) bool, less func(a, b costing.Estimate) bool) (costing.Estimate, bool) {
	var best costing.Estimate
	found := false
	for _, e := range estimates {
		if !keep(e) {
			continue
		}
		if !found || less(e, best) {
			best = e
			found = true
		}
	}
	return best, found
}

func sameOption(a, b costing.Estimate) bool {
	return a.Approach == b.Approach && a.Hardware == b.Hardware && a.Provider == b.Provider
}
