package confluence

import (
	"fmt"

	"signal-engine/internal/analysis"
	"signal-engine/internal/market"
)

// ValidatorConfig toggles the optional veto checks. The hierarchical
// alignment check always runs; the others can be switched off for
// relaxed/testing operation but default to enabled.
type ValidatorConfig struct {
	MinVolumeCheck bool    `json:"min_volume_check"`
	MinVolumeRatio float64 `json:"min_volume_ratio"`
	FalseMoveVeto  bool    `json:"false_move_veto"`
	WeakTrendVeto  bool    `json:"weak_trend_veto"`
	RegimeVeto     bool    `json:"regime_veto"`
}

// DefaultValidatorConfig returns the production configuration with every
// veto enabled.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinVolumeCheck: true,
		MinVolumeRatio: 0.30,
		FalseMoveVeto:  true,
		WeakTrendVeto:  true,
		RegimeVeto:     true,
	}
}

// CriticalFactorValidator runs the hard veto checks before any scoring.
// A failed check blocks signal emission regardless of how high the score
// would have been.
type CriticalFactorValidator struct {
	config    ValidatorConfig
	alignment *analysis.TrendAlignmentEngine
}

// NewCriticalFactorValidator creates a validator with the given toggles.
func NewCriticalFactorValidator(config ValidatorConfig) *CriticalFactorValidator {
	return &CriticalFactorValidator{
		config:    config,
		alignment: analysis.NewTrendAlignmentEngine(),
	}
}

// Validate runs every enabled veto check against the assembled context.
// It returns false and a human-readable reason on the first failure.
func (v *CriticalFactorValidator) Validate(ctx *analysis.MarketContext, direction market.Direction) (bool, string) {
	if ok, reason := v.checkAlignment(ctx); !ok {
		return false, reason
	}

	if !v.alignment.CanSignal(ctx.Long.Direction, ctx.Medium.Direction, ctx.Short.Direction, direction) {
		return false, fmt.Sprintf("timeframes not aligned for %s entry", direction)
	}

	if v.config.MinVolumeCheck && ctx.Short != nil && ctx.Short.VolumeRatio < v.config.MinVolumeRatio {
		return false, fmt.Sprintf("volume ratio %.2f below minimum %.2f", ctx.Short.VolumeRatio, v.config.MinVolumeRatio)
	}

	if v.config.FalseMoveVeto && ctx.Volume.IsFalseMove {
		return false, "price move not backed by volume (false move)"
	}

	if v.config.WeakTrendVeto && ctx.Long != nil && ctx.Long.Strength == market.StrengthWeak {
		return false, "long timeframe trend too weak"
	}

	if v.config.RegimeVeto && (ctx.Regime == market.RegimeSideways || ctx.Regime == market.RegimeChoppy) {
		return false, fmt.Sprintf("unfavorable regime %s", ctx.Regime)
	}

	return true, ""
}

// checkAlignment is the hierarchical alignment veto. Cases are ordered most
// specific first and the first match decides; the ordering is part of the
// contract, so keep these as eager guard clauses.
func (v *CriticalFactorValidator) checkAlignment(ctx *analysis.MarketContext) (bool, string) {
	long, medium, short := ctx.Long, ctx.Medium, ctx.Short

	// 1. Full agreement across all three timeframes.
	if long.Direction == medium.Direction && medium.Direction == short.Direction &&
		long.Direction != market.TrendSideways {
		return true, ""
	}

	// 2. Long and medium agree; the short may lag for entry timing.
	if long.Direction == medium.Direction && long.Direction != market.TrendSideways {
		return true, ""
	}

	// 3. Pullback entry: a non-weak long trend with the short back on side.
	if long.Strength != market.StrengthWeak && long.Direction != market.TrendSideways &&
		short.Direction == long.Direction {
		return true, ""
	}

	// 4. Trust a strong dominant timeframe even against the lower ones.
	if long.Strength == market.StrengthStrong && long.Direction != market.TrendSideways {
		return true, ""
	}

	// 5. Any directional long timeframe.
	if long.Direction != market.TrendSideways {
		return true, ""
	}

	// 6. Long is sideways but a lower timeframe is moving.
	if medium.Direction != market.TrendSideways || short.Direction != market.TrendSideways {
		return true, ""
	}

	// 7. Nothing is moving.
	return false, "all timeframes sideways"
}
