package confluence

import (
	"signal-engine/internal/analysis"
	"signal-engine/internal/market"
)

// ConfidenceTier is the coarse quality band of a total score.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "HIGH"
	TierMedium ConfidenceTier = "MEDIUM"
	TierLow    ConfidenceTier = "LOW"
)

// Component weights. Must sum to 1.0.
const (
	weightAlignment = 0.30
	weightStrength  = 0.20
	weightVolume    = 0.15
	weightMomentum  = 0.15
	weightSR        = 0.10
	weightRegime    = 0.10
)

// Tier thresholds. MediumThresholdRelaxed is an explicit testing
// configuration, not the production contract; production defaults to
// MediumThresholdDefault.
const (
	HighThreshold          = 80
	MediumThresholdDefault = 65
	MediumThresholdRelaxed = 40
	rsiValidBonus          = 15
)

// ConfidenceScore is the scorer's verdict for one analysis call.
type ConfidenceScore struct {
	TotalScore int            `json:"total_score"`
	Components map[string]int `json:"components"`
	Tier       ConfidenceTier `json:"tier"`
	VetoReason string         `json:"veto_reason,omitempty"`
}

// ContextWeightedScorer combines the sub-analyzer outputs into a single
// 0-100 confidence score. Every component is first normalized to its own
// 0-100 sub-score so that the fixed weights stay comparable.
type ContextWeightedScorer struct {
	mediumThreshold int
}

// NewContextWeightedScorer creates a scorer with the given MEDIUM tier
// cutoff; a non-positive value falls back to the production default.
func NewContextWeightedScorer(mediumThreshold int) *ContextWeightedScorer {
	if mediumThreshold <= 0 {
		mediumThreshold = MediumThresholdDefault
	}
	return &ContextWeightedScorer{mediumThreshold: mediumThreshold}
}

// Score computes the weighted total for the assembled context. The
// alignment bonus, conflict penalty and correlation delta are applied
// after the weighted sum, and the result is clamped to [0, 100].
func (s *ContextWeightedScorer) Score(ctx *analysis.MarketContext) ConfidenceScore {
	components := map[string]int{
		"alignment":          clampSubScore(int(ctx.Alignment.Score * 100)),
		"strength":           strengthSubScore(ctx.Long.Strength),
		"volume":             clampSubScore(50 + ctx.Volume.VolumeScore),
		"momentum":           momentumSubScore(ctx.Momentum),
		"support_resistance": clampSubScore(50 + ctx.SR.SRScore),
		"regime":             regimeSubScore(ctx.Regime),
	}

	weighted := weightAlignment*float64(components["alignment"]) +
		weightStrength*float64(components["strength"]) +
		weightVolume*float64(components["volume"]) +
		weightMomentum*float64(components["momentum"]) +
		weightSR*float64(components["support_resistance"]) +
		weightRegime*float64(components["regime"])

	total := int(weighted) + ctx.Alignment.AlignmentBonus - ctx.Alignment.ConflictPenalty + ctx.CorrelationDelta
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return ConfidenceScore{
		TotalScore: total,
		Components: components,
		Tier:       s.tier(total),
	}
}

func (s *ContextWeightedScorer) tier(total int) ConfidenceTier {
	if total > HighThreshold {
		return TierHigh
	}
	if total >= s.mediumThreshold {
		return TierMedium
	}
	return TierLow
}

func strengthSubScore(strength market.TrendStrength) int {
	switch strength {
	case market.StrengthStrong:
		return 100
	case market.StrengthModerate:
		return 70
	case market.StrengthWeak:
		return 30
	default:
		return 30
	}
}

func momentumSubScore(m analysis.MomentumAnalysis) int {
	score := 50 + m.MomentumScore
	if m.RSIValid {
		score += rsiValidBonus
	}
	return clampSubScore(score)
}

func regimeSubScore(regime market.Regime) int {
	switch regime {
	case market.RegimeTrending:
		return 100
	case market.RegimeLowVolatility:
		return 80
	case market.RegimeHighVolatility:
		return 70
	case market.RegimeSideways:
		return 70
	case market.RegimeChoppy:
		return 50
	default:
		return 70
	}
}

func clampSubScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
