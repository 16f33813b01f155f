package analysis

import (
	"signal-engine/internal/market"
)

// makeTimeframeAnalysis builds a snapshot with the given direction and
// strength and neutral indicator values.
func makeTimeframeAnalysis(tf market.Timeframe, direction market.TrendDirection, strength market.TrendStrength) *market.TimeframeAnalysis {
	return &market.TimeframeAnalysis{
		Timeframe: tf,
		Direction: direction,
		Strength:  strength,
		RSI:       50,
		ATR:       1.0,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
