package risk

import (
	"testing"

	"signal-engine/internal/market"
)

func TestRegimeMultiplier(t *testing.T) {
	sc := NewAdaptiveStopCalculator()

	cases := map[market.Regime]float64{
		market.RegimeTrending:       1.5,
		market.RegimeHighVolatility: 2.5,
		market.RegimeLowVolatility:  1.0,
		market.RegimeSideways:       1.5,
		market.RegimeChoppy:         2.0,
	}
	for regime, want := range cases {
		if got := sc.RegimeMultiplier(regime); got != want {
			t.Errorf("%s: got %v, want %v", regime, got, want)
		}
	}
}

func TestStrengthMultiplier(t *testing.T) {
	sc := NewAdaptiveStopCalculator()

	cases := map[market.TrendStrength]float64{
		market.StrengthStrong:   1.2,
		market.StrengthModerate: 1.5,
		market.StrengthWeak:     2.0,
	}
	for strength, want := range cases {
		if got := sc.StrengthMultiplier(strength); got != want {
			t.Errorf("%s: got %v, want %v", strength, got, want)
		}
	}
}

func TestStopDistanceTakesWiderMultiplier(t *testing.T) {
	sc := NewAdaptiveStopCalculator()

	// LOW_VOLATILITY (1.0) vs WEAK (2.0): the strength multiplier wins.
	if got := sc.StopDistance(2.0, market.RegimeLowVolatility, market.StrengthWeak); got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}

	// HIGH_VOLATILITY (2.5) vs STRONG (1.2): the regime multiplier wins.
	if got := sc.StopDistance(2.0, market.RegimeHighVolatility, market.StrengthStrong); got != 5.0 {
		t.Errorf("expected 5.0, got %v", got)
	}

	// Equal multipliers are fine either way.
	if got := sc.StopDistance(1.0, market.RegimeTrending, market.StrengthModerate); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestStopPrice(t *testing.T) {
	sc := NewAdaptiveStopCalculator()

	if got := sc.StopPrice(100, 3, market.DirectionLong); got != 97 {
		t.Errorf("long stop: expected 97, got %v", got)
	}
	if got := sc.StopPrice(100, 3, market.DirectionShort); got != 103 {
		t.Errorf("short stop: expected 103, got %v", got)
	}
}

func TestTakeProfitPrice(t *testing.T) {
	if got := TakeProfitPrice(100, 97, market.DirectionLong); got != 106 {
		t.Errorf("long target: expected 106, got %v", got)
	}
	if got := TakeProfitPrice(100, 103, market.DirectionShort); got != 94 {
		t.Errorf("short target: expected 94, got %v", got)
	}
}
