package risk

import (
	"signal-engine/internal/market"
)

// Reward-to-risk multiple for take-profit placement.
const RewardRiskRatio = 2.0

// AdaptiveStopCalculator derives stop-loss distance from ATR, widened by
// whichever of the regime and trend-strength multipliers demands more room.
type AdaptiveStopCalculator struct{}

// NewAdaptiveStopCalculator creates a stop calculator.
func NewAdaptiveStopCalculator() *AdaptiveStopCalculator {
	return &AdaptiveStopCalculator{}
}

// RegimeMultiplier returns the ATR multiplier for the given regime.
func (sc *AdaptiveStopCalculator) RegimeMultiplier(regime market.Regime) float64 {
	switch regime {
	case market.RegimeTrending:
		return 1.5
	case market.RegimeHighVolatility:
		return 2.5
	case market.RegimeLowVolatility:
		return 1.0
	case market.RegimeSideways:
		return 1.5
	case market.RegimeChoppy:
		return 2.0
	default:
		return 1.5
	}
}

// StrengthMultiplier returns the ATR multiplier for the given trend
// strength. Weaker trends get wider stops.
func (sc *AdaptiveStopCalculator) StrengthMultiplier(strength market.TrendStrength) float64 {
	switch strength {
	case market.StrengthStrong:
		return 1.2
	case market.StrengthModerate:
		return 1.5
	case market.StrengthWeak:
		return 2.0
	default:
		return 1.5
	}
}

// StopDistance returns the stop distance in price units.
func (sc *AdaptiveStopCalculator) StopDistance(atr float64, regime market.Regime, strength market.TrendStrength) float64 {
	regimeMult := sc.RegimeMultiplier(regime)
	strengthMult := sc.StrengthMultiplier(strength)
	mult := regimeMult
	if strengthMult > mult {
		mult = strengthMult
	}
	return atr * mult
}

// StopPrice places the stop on the losing side of the entry.
func (sc *AdaptiveStopCalculator) StopPrice(entry, distance float64, direction market.Direction) float64 {
	if direction == market.DirectionShort {
		return entry + distance
	}
	return entry - distance
}

// TakeProfitPrice places the target at RewardRiskRatio times the risked
// distance on the winning side of the entry.
func TakeProfitPrice(entry, stop float64, direction market.Direction) float64 {
	reward := entry - stop
	if reward < 0 {
		reward = -reward
	}
	reward *= RewardRiskRatio
	if direction == market.DirectionShort {
		return entry - reward
	}
	return entry + reward
}
