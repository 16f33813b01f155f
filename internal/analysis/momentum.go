package analysis

import (
	"signal-engine/internal/market"
)

const (
	longRSIFloor    = 40.0
	longRSICeiling  = 65.0
	shortRSIFloor   = 35.0
	shortRSICeiling = 60.0

	macdSlopeScore    = 10
	divergencePenalty = 15
)

// MomentumAnalysis is the momentum check result for one analysis call.
type MomentumAnalysis struct {
	RSIValid      bool `json:"rsi_valid"`
	MACDScore     int  `json:"macd_score"`
	HasDivergence bool `json:"has_divergence"`
	MomentumScore int  `json:"momentum_score"`
}

// MomentumAnalyzer validates RSI range and MACD histogram slope for the
// intended direction. The divergence flag is supplied by the caller.
type MomentumAnalyzer struct{}

// NewMomentumAnalyzer creates a momentum analyzer.
func NewMomentumAnalyzer() *MomentumAnalyzer {
	return &MomentumAnalyzer{}
}

// Analyze checks RSI validity and MACD histogram slope. prevHistogram is
// nil when no prior histogram value is known, which disables the MACD score.
func (ma *MomentumAnalyzer) Analyze(rsi, histogram float64, prevHistogram *float64, direction market.Direction, hasDivergence bool) MomentumAnalysis {
	result := MomentumAnalysis{
		HasDivergence: hasDivergence,
	}

	// RSI must sit in the tradable band: high enough to confirm momentum,
	// low enough to leave room before exhaustion.
	switch direction {
	case market.DirectionLong:
		result.RSIValid = rsi >= longRSIFloor && rsi <= longRSICeiling
	case market.DirectionShort:
		result.RSIValid = rsi >= shortRSIFloor && rsi <= shortRSICeiling
	}

	if prevHistogram != nil {
		longConfirm := direction == market.DirectionLong && histogram > 0 && histogram > *prevHistogram
		shortConfirm := direction == market.DirectionShort && histogram < 0 && histogram < *prevHistogram
		if longConfirm || shortConfirm {
			result.MACDScore = macdSlopeScore
		}
	}

	result.MomentumScore = result.MACDScore
	if hasDivergence {
		result.MomentumScore -= divergencePenalty
	}

	return result
}
