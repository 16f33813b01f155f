package analysis

import (
	"signal-engine/internal/market"
)

const (
	counterTrendPenalty = -20
	pauseATRRatio       = 2.0
)

// CorrelationAdjuster adjusts confidence for instruments that follow a
// reference instrument (e.g. a benchmark asset for correlated markets).
// It holds the reference's latest long-timeframe snapshot, set explicitly
// before use; one instance belongs to one monitored instrument.
type CorrelationAdjuster struct {
	reference *market.TimeframeAnalysis
}

// NewCorrelationAdjuster creates an adjuster with no reference data.
func NewCorrelationAdjuster() *CorrelationAdjuster {
	return &CorrelationAdjuster{}
}

// SetReference stores the reference instrument's long-timeframe snapshot.
func (ca *CorrelationAdjuster) SetReference(tf *market.TimeframeAnalysis) {
	ca.reference = tf
}

// ConfidenceDelta returns the confidence adjustment in points for trading
// against a strong reference trend. Non-secondary instruments and missing
// or non-strong reference data yield no adjustment.
func (ca *CorrelationAdjuster) ConfidenceDelta(direction market.Direction, isSecondaryAsset bool) int {
	if !isSecondaryAsset || ca.reference == nil {
		return 0
	}
	if ca.reference.Strength != market.StrengthStrong {
		return 0
	}

	againstDown := ca.reference.Direction == market.TrendDown && direction == market.DirectionLong
	againstUp := ca.reference.Direction == market.TrendUp && direction == market.DirectionShort
	if againstDown || againstUp {
		return counterTrendPenalty
	}
	return 0
}

// ShouldPauseSecondarySignals reports whether the reference instrument's
// volatility is expanded enough that correlated signals should be held.
func (ca *CorrelationAdjuster) ShouldPauseSecondarySignals() bool {
	if ca.reference == nil || ca.reference.ATRAverage <= 0 {
		return false
	}
	return ca.reference.ATR/ca.reference.ATRAverage > pauseATRRatio
}
