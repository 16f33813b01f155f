package confluence

import (
	"signal-engine/internal/analysis"
	"signal-engine/internal/market"
)

func makeTF(tf market.Timeframe, direction market.TrendDirection, strength market.TrendStrength) *market.TimeframeAnalysis {
	return &market.TimeframeAnalysis{
		Timeframe:   tf,
		Direction:   direction,
		Strength:    strength,
		RSI:         50,
		ATR:         1.0,
		VolumeRatio: 1.0,
	}
}

// makeContext builds a context that passes every default veto: fully
// aligned uptrend, trending regime, confirmed volume.
func makeContext() *analysis.MarketContext {
	return &analysis.MarketContext{
		Symbol: "BTCUSDT",
		Long:   makeTF(market.TF4h, market.TrendUp, market.StrengthStrong),
		Medium: makeTF(market.TF1h, market.TrendUp, market.StrengthModerate),
		Short:  makeTF(market.TF15m, market.TrendUp, market.StrengthModerate),
		Alignment: analysis.TrendAlignment{
			Score:             1.0,
			IsFullyAligned:    true,
			DominantDirection: market.TrendUp,
			AlignmentBonus:    25,
		},
		Regime: market.RegimeTrending,
		Volume: analysis.VolumeConfirmation{IsConfirmed: true, Threshold: 0.6},
	}
}
