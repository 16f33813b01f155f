package analysis

import (
	"testing"

	"signal-engine/internal/market"
)

func TestConfidenceDeltaCounterTrend(t *testing.T) {
	ca := NewCorrelationAdjuster()
	ca.SetReference(makeTimeframeAnalysis(market.TF4h, market.TrendDown, market.StrengthStrong))

	if got := ca.ConfidenceDelta(market.DirectionLong, true); got != -20 {
		t.Errorf("long against a strong reference downtrend: expected -20, got %d", got)
	}
	if got := ca.ConfidenceDelta(market.DirectionShort, true); got != 0 {
		t.Errorf("short with the reference downtrend: expected 0, got %d", got)
	}

	ca.SetReference(makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong))
	if got := ca.ConfidenceDelta(market.DirectionShort, true); got != -20 {
		t.Errorf("short against a strong reference uptrend: expected -20, got %d", got)
	}
}

func TestConfidenceDeltaRequiresStrongReference(t *testing.T) {
	ca := NewCorrelationAdjuster()
	ca.SetReference(makeTimeframeAnalysis(market.TF4h, market.TrendDown, market.StrengthModerate))

	if got := ca.ConfidenceDelta(market.DirectionLong, true); got != 0 {
		t.Errorf("moderate reference trend should not adjust, got %d", got)
	}
}

func TestConfidenceDeltaPrimaryInstrument(t *testing.T) {
	ca := NewCorrelationAdjuster()
	ca.SetReference(makeTimeframeAnalysis(market.TF4h, market.TrendDown, market.StrengthStrong))

	if got := ca.ConfidenceDelta(market.DirectionLong, false); got != 0 {
		t.Errorf("primary instrument should never be adjusted, got %d", got)
	}
}

func TestConfidenceDeltaNoReference(t *testing.T) {
	ca := NewCorrelationAdjuster()

	if got := ca.ConfidenceDelta(market.DirectionLong, true); got != 0 {
		t.Errorf("missing reference should not adjust, got %d", got)
	}
}

func TestShouldPauseSecondarySignals(t *testing.T) {
	ca := NewCorrelationAdjuster()

	if ca.ShouldPauseSecondarySignals() {
		t.Error("no reference data should not pause")
	}

	ref := makeTimeframeAnalysis(market.TF4h, market.TrendUp, market.StrengthStrong)
	ref.ATR = 2.5
	ref.ATRAverage = 1.0
	ca.SetReference(ref)
	if !ca.ShouldPauseSecondarySignals() {
		t.Error("ATR ratio 2.5 should pause secondary signals")
	}

	ref.ATR = 2.0
	if ca.ShouldPauseSecondarySignals() {
		t.Error("ATR ratio exactly 2.0 should not pause")
	}

	ref.ATR = 1.0
	if ca.ShouldPauseSecondarySignals() {
		t.Error("normal volatility should not pause")
	}
}
