package analysis

import (
	"testing"

	"signal-engine/internal/market"
)

// flatCandles builds n candles with a tight range around base.
func flatCandles(n int, base float64) []market.Candle {
	candles := make([]market.Candle, n)
	for i := range candles {
		candles[i] = market.Candle{
			Open:  base,
			High:  base * 1.005,
			Low:   base * 0.995,
			Close: base,
		}
	}
	return candles
}

// trendingCandles builds n candles climbing step per candle from base.
func trendingCandles(n int, base, step float64) []market.Candle {
	span := step
	if span < 0 {
		span = -span
	}
	candles := make([]market.Candle, n)
	for i := range candles {
		close := base + float64(i)*step
		candles[i] = market.Candle{
			Open:  close - step,
			High:  close + span,
			Low:   close - span,
			Close: close,
		}
	}
	return candles
}

func TestClassifyChoppyOverridesAll(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATR = 3.0
	long.ATRAverage = 1.0 // would be HIGH_VOLATILITY otherwise

	if got := rc.Classify(long, long, trendingCandles(20, 100, 2), true); got != market.RegimeChoppy {
		t.Errorf("expected CHOPPY, got %s", got)
	}
}

func TestClassifyHighVolatility(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATR = 2.0
	long.ATRAverage = 1.0

	if got := rc.Classify(long, nil, nil, false); got != market.RegimeHighVolatility {
		t.Errorf("expected HIGH_VOLATILITY, got %s", got)
	}
}

func TestClassifyLowVolatility(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATR = 0.4
	long.ATRAverage = 1.0

	if got := rc.Classify(long, nil, nil, false); got != market.RegimeLowVolatility {
		t.Errorf("expected LOW_VOLATILITY, got %s", got)
	}
}

func TestClassifyVolatilityBoundaries(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	// Ratios exactly at the cutoffs fall through to later guards.
	long := makeTimeframeAnalysis(market.TF4h, market.TrendSideways, market.StrengthWeak)
	long.ATR = 1.5
	long.ATRAverage = 1.0
	if got := rc.Classify(long, nil, nil, false); got != market.RegimeSideways {
		t.Errorf("ratio 1.5 should not be HIGH_VOLATILITY, got %s", got)
	}

	long.ATR = 0.5
	if got := rc.Classify(long, nil, nil, false); got != market.RegimeSideways {
		t.Errorf("ratio 0.5 should not be LOW_VOLATILITY, got %s", got)
	}
}

func TestClassifyCompression(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATRAverage = 1.0
	long.MACDHistogram = 0.5

	// Tight 1% range wins over the trend agreement below it.
	if got := rc.Classify(long, long, flatCandles(20, 100), false); got != market.RegimeSideways {
		t.Errorf("expected SIDEWAYS for compressed range, got %s", got)
	}
}

func TestClassifyTrending(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATRAverage = 1.0
	long.MACDHistogram = 0.5
	medium := makeTimeframeAnalysis(market.TF1h, market.TrendUp, market.StrengthModerate)

	if got := rc.Classify(long, medium, trendingCandles(20, 100, 2), false); got != market.RegimeTrending {
		t.Errorf("expected TRENDING, got %s", got)
	}
}

func TestClassifyTrendingRequiresMACDConfirm(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	long.ATRAverage = 1.0
	long.MACDHistogram = -0.2 // contradicts the uptrend
	medium := makeTimeframeAnalysis(market.TF1h, market.TrendUp, market.StrengthModerate)

	if got := rc.Classify(long, medium, trendingCandles(20, 100, 2), false); got != market.RegimeSideways {
		t.Errorf("expected SIDEWAYS without MACD confirmation, got %s", got)
	}
}

func TestClassifyTrendingRequiresNonWeakLong(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthWeak)
	long.ATRAverage = 1.0
	long.MACDHistogram = 0.5
	medium := makeTimeframeAnalysis(market.TF1h, market.TrendUp, market.StrengthModerate)

	if got := rc.Classify(long, medium, trendingCandles(20, 100, 2), false); got != market.RegimeSideways {
		t.Errorf("expected SIDEWAYS for a weak long trend, got %s", got)
	}
}

func TestClassifyDefaultSideways(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	if got := rc.Classify(nil, nil, nil, false); got != market.RegimeSideways {
		t.Errorf("expected default SIDEWAYS, got %s", got)
	}
}

func TestClassifyDowntrend(t *testing.T) {
	rc := NewMarketRegimeClassifier()

	long := makeTimeframeAnalysis(market.TF4h, market.TrendDown, market.StrengthStrong)
	long.ATRAverage = 1.0
	long.MACDHistogram = -0.5
	medium := makeTimeframeAnalysis(market.TF1h, market.TrendDown, market.StrengthStrong)

	if got := rc.Classify(long, medium, trendingCandles(20, 200, -2), false); got != market.RegimeTrending {
		t.Errorf("expected TRENDING for aligned downtrend, got %s", got)
	}
}
