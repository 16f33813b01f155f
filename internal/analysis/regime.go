package analysis

import (
	"signal-engine/internal/market"
)

const (
	regimeWindow        = 20
	highVolATRRatio     = 1.5
	lowVolATRRatio      = 0.5
	compressionRangePct = 2.0
)

// MarketRegimeClassifier sorts current conditions into one of five regimes.
// Classification is an ordered chain of guards; the first match wins and
// the ordering is part of the contract.
type MarketRegimeClassifier struct{}

// NewMarketRegimeClassifier creates a regime classifier.
func NewMarketRegimeClassifier() *MarketRegimeClassifier {
	return &MarketRegimeClassifier{}
}

// Classify determines the market regime from the long and medium timeframe
// snapshots (either may be nil), a candle window and the choppy flag.
func (rc *MarketRegimeClassifier) Classify(long, medium *market.TimeframeAnalysis, candles []market.Candle, isChoppy bool) market.Regime {
	// 1. Choppiness overrides everything else.
	if isChoppy {
		return market.RegimeChoppy
	}

	// 2. Volatility expansion or contraction on the long timeframe.
	if long != nil && long.ATRAverage > 0 {
		ratio := long.ATR / long.ATRAverage
		if ratio > highVolATRRatio {
			return market.RegimeHighVolatility
		}
		if ratio < lowVolATRRatio {
			return market.RegimeLowVolatility
		}
	}

	// 3. Price-range compression over the recent window.
	if len(candles) >= regimeWindow {
		if pct := market.RangePct(market.Window(candles, regimeWindow)); pct > 0 && pct <= compressionRangePct {
			return market.RegimeSideways
		}
	}

	// 4. Trending requires long/medium agreement, a non-weak long trend and
	// a MACD histogram confirming the direction.
	if long != nil && medium != nil &&
		long.Direction == medium.Direction &&
		long.Direction != market.TrendSideways &&
		long.Strength != market.StrengthWeak &&
		macdConfirms(long.MACDHistogram, long.Direction) {
		return market.RegimeTrending
	}

	// 5. Default.
	return market.RegimeSideways
}

func macdConfirms(histogram float64, direction market.TrendDirection) bool {
	switch direction {
	case market.TrendUp:
		return histogram > 0
	case market.TrendDown:
		return histogram < 0
	default:
		return false
	}
}
