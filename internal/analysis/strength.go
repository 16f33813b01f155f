package analysis

import (
	"math"

	"signal-engine/internal/market"
)

// TrendStrengthClassifier grades trend strength from the separation between
// two EMAs relative to the current price. It is direction-agnostic: swapping
// the two EMA values yields the same classification.
type TrendStrengthClassifier struct {
	strongPct   float64 // separation above this is STRONG
	moderatePct float64 // separation above this is MODERATE
}

// NewTrendStrengthClassifier creates a classifier with the default cutoffs.
func NewTrendStrengthClassifier() *TrendStrengthClassifier {
	return &TrendStrengthClassifier{
		strongPct:   1.0,
		moderatePct: 0.3,
	}
}

// Classify grades the separation between the fast and slow EMA as a
// percentage of price. A non-positive price degrades to WEAK.
func (c *TrendStrengthClassifier) Classify(emaFast, emaSlow, price float64) market.TrendStrength {
	if price <= 0 {
		return market.StrengthWeak
	}

	separationPct := math.Abs(emaFast-emaSlow) / price * 100

	if separationPct > c.strongPct {
		return market.StrengthStrong
	}
	if separationPct > c.moderatePct {
		return market.StrengthModerate
	}
	return market.StrengthWeak
}
