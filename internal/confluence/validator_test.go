package confluence

import (
	"strings"
	"testing"

	"signal-engine/internal/market"
)

func TestValidatePasses(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	ok, reason := v.Validate(makeContext(), market.DirectionLong)
	if !ok {
		t.Fatalf("expected pass, got veto: %s", reason)
	}
}

func TestValidateAllSideways(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	ctx := makeContext()
	ctx.Long = makeTF(market.TF4h, market.TrendSideways, market.StrengthWeak)
	ctx.Medium = makeTF(market.TF1h, market.TrendSideways, market.StrengthWeak)
	ctx.Short = makeTF(market.TF15m, market.TrendSideways, market.StrengthWeak)

	ok, reason := v.Validate(ctx, market.DirectionLong)
	if ok {
		t.Fatal("expected veto for all-sideways timeframes")
	}
	if reason != "all timeframes sideways" {
		t.Errorf("unexpected reason: %s", reason)
	}
}

func TestValidateStrongLongAgainstLowerTimeframes(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	// A strong long uptrend clears the hierarchical alignment check even
	// with both lower timeframes against it, but a SHORT entry then fails
	// the direction eligibility test.
	ctx := makeContext()
	ctx.Long = makeTF(market.TF4h, market.TrendUp, market.StrengthStrong)
	ctx.Medium = makeTF(market.TF1h, market.TrendDown, market.StrengthModerate)
	ctx.Short = makeTF(market.TF15m, market.TrendDown, market.StrengthModerate)

	ok, reason := v.Validate(ctx, market.DirectionShort)
	if ok {
		t.Fatal("expected veto for SHORT against a strong long uptrend")
	}
	if !strings.Contains(reason, "not aligned for SHORT") {
		t.Errorf("unexpected reason: %s", reason)
	}
}

func TestValidateSidewaysLongBlocksEntry(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	// A moving lower timeframe clears the alignment hierarchy, but a
	// sideways long timeframe can never satisfy the direction test.
	ctx := makeContext()
	ctx.Long = makeTF(market.TF4h, market.TrendSideways, market.StrengthWeak)
	ctx.Medium = makeTF(market.TF1h, market.TrendUp, market.StrengthModerate)
	ctx.Short = makeTF(market.TF15m, market.TrendUp, market.StrengthModerate)

	ok, reason := v.Validate(ctx, market.DirectionLong)
	if ok {
		t.Fatal("expected veto with a sideways long timeframe")
	}
	if !strings.Contains(reason, "not aligned for LONG") {
		t.Errorf("unexpected reason: %s", reason)
	}
}

func TestValidateMinVolume(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	ctx := makeContext()
	ctx.Short.VolumeRatio = 0.2

	ok, reason := v.Validate(ctx, market.DirectionLong)
	if ok {
		t.Fatal("expected min-volume veto")
	}
	if !strings.Contains(reason, "volume ratio") {
		t.Errorf("unexpected reason: %s", reason)
	}

	// Toggle off and the same context passes.
	cfg := DefaultValidatorConfig()
	cfg.MinVolumeCheck = false
	v = NewCriticalFactorValidator(cfg)
	if ok, reason := v.Validate(ctx, market.DirectionLong); !ok {
		t.Errorf("disabled min-volume check should pass, got: %s", reason)
	}
}

func TestValidateFalseMove(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	ctx := makeContext()
	ctx.Volume.IsFalseMove = true

	ok, reason := v.Validate(ctx, market.DirectionLong)
	if ok {
		t.Fatal("expected false-move veto")
	}
	if !strings.Contains(reason, "false move") {
		t.Errorf("unexpected reason: %s", reason)
	}

	cfg := DefaultValidatorConfig()
	cfg.FalseMoveVeto = false
	v = NewCriticalFactorValidator(cfg)
	if ok, reason := v.Validate(ctx, market.DirectionLong); !ok {
		t.Errorf("disabled false-move veto should pass, got: %s", reason)
	}
}

func TestValidateWeakTrend(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	// Fully aligned but weak: the alignment hierarchy passes, the weak
	// trend veto does not.
	ctx := makeContext()
	ctx.Long.Strength = market.StrengthWeak

	ok, reason := v.Validate(ctx, market.DirectionLong)
	if ok {
		t.Fatal("expected weak-trend veto")
	}
	if !strings.Contains(reason, "too weak") {
		t.Errorf("unexpected reason: %s", reason)
	}

	cfg := DefaultValidatorConfig()
	cfg.WeakTrendVeto = false
	v = NewCriticalFactorValidator(cfg)
	if ok, reason := v.Validate(ctx, market.DirectionLong); !ok {
		t.Errorf("disabled weak-trend veto should pass, got: %s", reason)
	}
}

func TestValidateRegime(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	for _, regime := range []market.Regime{market.RegimeSideways, market.RegimeChoppy} {
		ctx := makeContext()
		ctx.Regime = regime
		ok, reason := v.Validate(ctx, market.DirectionLong)
		if ok {
			t.Fatalf("expected regime veto for %s", regime)
		}
		if !strings.Contains(reason, string(regime)) {
			t.Errorf("reason should name the regime, got: %s", reason)
		}
	}

	// Volatility regimes are scored down, not vetoed.
	ctx := makeContext()
	ctx.Regime = market.RegimeHighVolatility
	if ok, reason := v.Validate(ctx, market.DirectionLong); !ok {
		t.Errorf("HIGH_VOLATILITY should not veto, got: %s", reason)
	}

	cfg := DefaultValidatorConfig()
	cfg.RegimeVeto = false
	v = NewCriticalFactorValidator(cfg)
	ctx = makeContext()
	ctx.Regime = market.RegimeChoppy
	if ok, reason := v.Validate(ctx, market.DirectionLong); !ok {
		t.Errorf("disabled regime veto should pass, got: %s", reason)
	}
}

func TestValidateShortEntry(t *testing.T) {
	v := NewCriticalFactorValidator(DefaultValidatorConfig())

	ctx := makeContext()
	ctx.Long = makeTF(market.TF4h, market.TrendDown, market.StrengthStrong)
	ctx.Medium = makeTF(market.TF1h, market.TrendDown, market.StrengthModerate)
	ctx.Short = makeTF(market.TF15m, market.TrendDown, market.StrengthModerate)
	ctx.Alignment.DominantDirection = market.TrendDown

	if ok, reason := v.Validate(ctx, market.DirectionShort); !ok {
		t.Errorf("aligned downtrend should allow SHORT, got: %s", reason)
	}
}
