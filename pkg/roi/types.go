package roi

import (
	"encoding/json"
	"math"

	"tokenworks/atlas/pkg/costing"
)

// NoBreakEven marks analyses where monthly savings never cover the
// training investment. Compare with HasBreakEven rather than directly.
var NoBreakEven = math.Inf(1)

// UsagePattern classifies monthly token volume.
type UsagePattern string

const (
	UsageLight      UsagePattern = "light"      // <10K tokens/month
	UsageModerate   UsagePattern = "moderate"   // 10K-100K tokens/month
	UsageHeavy      UsagePattern = "heavy"      // 100K-1M tokens/month
	UsageEnterprise UsagePattern = "enterprise" // >1M tokens/month
)

// PatternForTokens classifies a monthly token volume.
func PatternForTokens(monthlyTokens int64) UsagePattern {
	switch {
	case monthlyTokens < 10_000:
		return UsageLight
	case monthlyTokens < 100_000:
		return UsageModerate
	case monthlyTokens < 1_000_000:
		return UsageHeavy
	default:
		return UsageEnterprise
	}
}

// savingsMultiplier scales baseline savings by usage pattern. Light
// users realize less of the theoretical saving; enterprise volume
// compounds it.
func (p UsagePattern) savingsMultiplier() float64 {
	switch p {
	case UsageLight:
		return 0.7
	case UsageHeavy:
		return 1.2
	case UsageEnterprise:
		return 1.5
	default:
		return 1.0
	}
}

// BreakEvenCategory grades a break-even timeline.
type BreakEvenCategory string

const (
	BreakEvenExcellent  BreakEvenCategory = "excellent"  // <=3 months
	BreakEvenGood       BreakEvenCategory = "good"       // 3-6 months
	BreakEvenAcceptable BreakEvenCategory = "acceptable" // 6-12 months
	BreakEvenPoor       BreakEvenCategory = "poor"       // 12-24 months
	BreakEvenNotViable  BreakEvenCategory = "not_viable" // >24 months or never
)

// CategorizeBreakEven grades a break-even timeline in months.
func CategorizeBreakEven(months float64) BreakEvenCategory {
	switch {
	case months <= 3:
		return BreakEvenExcellent
	case months <= 6:
		return BreakEvenGood
	case months <= 12:
		return BreakEvenAcceptable
	case months <= 24:
		return BreakEvenPoor
	default:
		return BreakEvenNotViable
	}
}

// Projection is cumulative savings at one point in time.
type Projection struct {
	// Months since training completed.
	Months int `json:"months"`

	// CumulativeSavingsUSD is savings to date minus the training cost.
	// Negative until break-even.
	CumulativeSavingsUSD float64 `json:"cumulative_savings_usd"`

	// ROIPercent is cumulative savings relative to the investment.
	ROIPercent float64 `json:"roi_percent"`

	// BreakEvenAchieved reports whether the investment has paid off.
	BreakEvenAchieved bool `json:"break_even_achieved"`
}

// Scenario compares one training option against the API baseline.
type Scenario struct {
	// Name labels the scenario ("best_cost", "fastest_training",
	// "best_local", "best_cloud").
	Name string `json:"name"`

	// Estimate is the training option being evaluated.
	Estimate costing.Estimate `json:"estimate"`

	// MonthlySavingsUSD is the pattern-adjusted monthly saving.
	MonthlySavingsUSD float64 `json:"monthly_savings_usd"`

	// BreakEvenMonths is when savings cover the training cost;
	// NoBreakEven when they never do. Serialized as null in that case.
	BreakEvenMonths float64 `json:"break_even_months"`

	// Savings12MoUSD and Savings24MoUSD are net savings at 12 and 24
	// months (savings minus training cost).
	Savings12MoUSD float64 `json:"savings_12mo_usd"`
	Savings24MoUSD float64 `json:"savings_24mo_usd"`
}

// HasBreakEven reports whether the scenario ever pays for itself.
func (s Scenario) HasBreakEven() bool {
	return !math.IsInf(s.BreakEvenMonths, 1)
}

// MarshalJSON emits break_even_months as null when the scenario never
// pays off; the NoBreakEven sentinel is not representable in JSON.
func (s Scenario) MarshalJSON() ([]byte, error) {
	type plain Scenario
	return json.Marshal(struct {
		plain
		BreakEvenMonths *float64 `json:"break_even_months"`
	}{plain(s), finiteMonths(s.BreakEvenMonths)})
}

// RiskLevel grades an individual or overall risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAssessment summarizes investment risks for the best option.
type RiskAssessment struct {
	// Overall is the weighted risk grade.
	Overall RiskLevel `json:"overall"`

	// Factors maps risk factor names to their level.
	Factors map[string]RiskLevel `json:"factors"`

	// Notes lists specific concerns in plain language.
	Notes []string `json:"notes,omitempty"`
}

// Analysis is a complete ROI evaluation for one model and usage level.
type Analysis struct {
	// ModelID is the catalog model analyzed.
	ModelID string `json:"model_id"`

	// Pattern is the usage classification the savings were scaled by.
	Pattern UsagePattern `json:"pattern"`

	// MonthlyTokens is the expected monthly inference volume.
	MonthlyTokens int64 `json:"monthly_tokens"`

	// MonthlyAPICostUSD is the current hosted-API spend.
	MonthlyAPICostUSD float64 `json:"monthly_api_cost_usd"`

	// MonthlySavingsUSD is the pattern-adjusted expected saving.
	MonthlySavingsUSD float64 `json:"monthly_savings_usd"`

	// BreakEvenMonths is for the best-cost option; NoBreakEven when
	// savings never cover it. Serialized as null in that case.
	BreakEvenMonths float64 `json:"break_even_months"`

	// Category grades the break-even timeline.
	Category BreakEvenCategory `json:"category"`

	// Projections track cumulative savings at standard horizons.
	Projections []Projection `json:"projections"`

	// Scenarios compare notable training options.
	Scenarios []Scenario `json:"scenarios"`

	// Risk assesses the best option's investment risks.
	Risk RiskAssessment `json:"risk"`
}

// HasBreakEven reports whether the best option ever pays for itself.
func (a Analysis) HasBreakEven() bool {
	return !math.IsInf(a.BreakEvenMonths, 1)
}

// MarshalJSON emits break_even_months as null when the investment
// never pays off; the NoBreakEven sentinel is not representable in
// JSON.
func (a Analysis) MarshalJSON() ([]byte, error) {
	type plain Analysis
	return json.Marshal(struct {
		plain
		BreakEvenMonths *float64 `json:"break_even_months"`
	}{plain(a), finiteMonths(a.BreakEvenMonths)})
}

func finiteMonths(v float64) *float64 {
	if math.IsInf(v, 1) {
		return nil
	}
	return &v
}
