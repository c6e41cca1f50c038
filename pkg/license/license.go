// Package license gates premium features by plan tier.
//
// The free tier always works: callers get the reduced feature set with
// no license at all, and every check degrades toward free rather than
// failing. Verification here is plan lookup, not cryptographic
// enforcement.
package license

import "sync"

// Tier is a plan level.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Feature names the gateable capabilities.
const (
	// FeatureBasicEstimates covers the free approach subset.
	FeatureBasicEstimates = "basic_estimates"

	// FeatureFullMatrix unlocks the complete approach comparison.
	FeatureFullMatrix = "full_matrix"

	// FeatureLivePricing unlocks live provider rate lookups; free
	// tier runs on the static tables.
	FeatureLivePricing = "live_pricing"

	// FeatureROIAnalysis unlocks scenario and break-even analysis.
	FeatureROIAnalysis = "roi_analysis"

	// FeatureCSVExport unlocks tabular report export.
	FeatureCSVExport = "csv_export"
)

// tierFeatures maps each tier to its enabled features. Premium
// includes everything in free.
var tierFeatures = map[Tier][]string{
	TierFree: {
		FeatureBasicEstimates,
	},
	TierPremium: {
		FeatureBasicEstimates,
		FeatureFullMatrix,
		FeatureLivePricing,
		FeatureROIAnalysis,
		FeatureCSVExport,
	},
}

// Checker answers feature entitlement questions.
type Checker interface {
	// HasAccess reports whether the named feature is enabled.
	HasAccess(feature string) bool

	// Tier returns the active plan level.
	Tier() Tier
}

// Manager is the standard Checker, holding the active tier.
type Manager struct {
	mu       sync.RWMutex
	tier     Tier
	features map[string]bool
}

// NewManager creates a checker at the given tier. Unknown tiers fall
// back to free.
func NewManager(tier Tier) *Manager {
	if _, ok := tierFeatures[tier]; !ok {
		tier = TierFree
	}
	m := &Manager{}
	m.setTier(tier)
	return m
}

// HasAccess reports whether the named feature is enabled.
func (m *Manager) HasAccess(feature string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.features[feature]
}

// Tier returns the active plan level.
func (m *Manager) Tier() Tier {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tier
}

// Upgrade switches to a higher tier at runtime (license activation).
func (m *Manager) Upgrade(tier Tier) {
	if _, ok := tierFeatures[tier]; !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setTierLocked(tier)
}

func (m *Manager) setTier(tier Tier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setTierLocked(tier)
}

func (m *Manager) setTierLocked(tier Tier) {
	m.tier = tier
	m.features = make(map[string]bool, len(tierFeatures[tier]))
	for _, f := range tierFeatures[tier] {
		m.features[f] = true
	}
}
