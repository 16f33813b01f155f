package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"signal-engine/internal/analysis"
	"signal-engine/internal/confluence"
	"signal-engine/internal/market"
	"signal-engine/internal/risk"
)

// EMA9-vs-EMA21 dead band for deriving a timeframe's trend direction:
// separations inside it read as SIDEWAYS.
const directionDeadBandPct = 0.1

// Closes moving more than this against the chosen direction over the last
// three short-timeframe candles flip the signal.
const reversalOverridePct = 0.3

// Config tunes the orchestrator's gating.
type Config struct {
	MediumThreshold int                        `json:"medium_threshold"`
	Validator       confluence.ValidatorConfig `json:"validator"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		MediumThreshold: confluence.MediumThresholdDefault,
		Validator:       confluence.DefaultValidatorConfig(),
	}
}

// EnhancedAnalyzer runs the full decision pipeline for one instrument. The
// stateful sub-components (volume benchmark, correlation reference, choppy
// ring) live on this struct, so one instance per instrument invoked
// serially needs no locking.
type EnhancedAnalyzer struct {
	symbol string

	strength    *analysis.TrendStrengthClassifier
	choppy      *analysis.ChoppyDetector
	regime      *analysis.MarketRegimeClassifier
	alignment   *analysis.TrendAlignmentEngine
	volume      *analysis.VolumeConfirmationAnalyzer
	momentum    *analysis.MomentumAnalyzer
	sr          *analysis.SupportResistanceDetector
	correlation *analysis.CorrelationAdjuster
	validator   *confluence.CriticalFactorValidator
	scorer      *confluence.ContextWeightedScorer
	stops       *risk.AdaptiveStopCalculator

	logger zerolog.Logger
}

// NewEnhancedAnalyzer creates a full pipeline for one instrument.
func NewEnhancedAnalyzer(symbol string, cfg Config, logger zerolog.Logger) *EnhancedAnalyzer {
	return &EnhancedAnalyzer{
		symbol:      symbol,
		strength:    analysis.NewTrendStrengthClassifier(),
		choppy:      analysis.NewChoppyDetector(),
		regime:      analysis.NewMarketRegimeClassifier(),
		alignment:   analysis.NewTrendAlignmentEngine(),
		volume:      analysis.NewVolumeConfirmationAnalyzer(),
		momentum:    analysis.NewMomentumAnalyzer(),
		sr:          analysis.NewSupportResistanceDetector(),
		correlation: analysis.NewCorrelationAdjuster(),
		validator:   confluence.NewCriticalFactorValidator(cfg.Validator),
		scorer:      confluence.NewContextWeightedScorer(cfg.MediumThreshold),
		stops:       risk.NewAdaptiveStopCalculator(),
		logger:      logger.With().Str("component", "EnhancedAnalyzer").Str("symbol", symbol).Logger(),
	}
}

// Analyze runs one full decision pass. Exactly one of the three outcomes is
// returned: a signal, a rejection (vetoed or below threshold), or an error
// for requests that violate the data preconditions.
func (a *EnhancedAnalyzer) Analyze(req *AnalysisRequest) (*EnhancedSignal, *Rejection, error) {
	if err := a.checkPreconditions(req); err != nil {
		return nil, nil, err
	}

	longCandles := req.Candles[market.TF4h]
	shortCandles := req.Candles[market.TF15m]

	longTA := a.buildTimeframeAnalysis(market.TF4h, req.Indicators[market.TF4h])
	mediumTA := a.buildTimeframeAnalysis(market.TF1h, req.Indicators[market.TF1h])
	shortTA := a.buildTimeframeAnalysis(market.TF15m, req.Indicators[market.TF15m])

	shortCloses := closes(shortCandles)
	isChoppy := a.choppy.IsChoppy(shortCloses, req.ShortEMAFast)
	regime := a.regime.Classify(longTA, mediumTA, longCandles, isChoppy)
	alignment := a.alignment.Evaluate(longTA.Direction, mediumTA.Direction, shortTA.Direction)

	direction, ok := a.resolveDirection(shortTA, mediumTA, alignment, shortCloses)
	if !ok {
		return nil, a.reject(RejectionVetoed, "all timeframes sideways"), nil
	}

	if a.choppy.ShouldPause(direction) {
		return nil, a.reject(RejectionVetoed, "direction alternation cooldown active"), nil
	}

	if req.Reference != nil {
		a.volume.SetBenchmark(req.Reference.VolumeRatio)
		a.correlation.SetReference(a.buildTimeframeAnalysis(market.TF4h, *req.Reference))
	}

	shortInd := req.Indicators[market.TF15m]
	volumeResult := a.volume.Analyze(shortInd.VolumeRatio, volumes(shortCandles), recentPriceChangePct(shortCloses))
	momentumResult := a.momentum.Analyze(shortInd.RSI, shortInd.MACDHistogram, shortInd.PrevMACDHistogram, direction, req.HasDivergence)

	entryPrice := shortInd.Close
	if entryPrice <= 0 {
		entryPrice = market.LastClose(shortCandles)
	}
	srResult := a.sr.Detect(shortCandles, entryPrice, volumeResult.IsConfirmed)

	ctx := &analysis.MarketContext{
		Symbol:           req.Symbol,
		Long:             longTA,
		Medium:           mediumTA,
		Short:            shortTA,
		Alignment:        alignment,
		Regime:           regime,
		Volume:           volumeResult,
		SR:               srResult,
		Momentum:         momentumResult,
		IsChoppy:         isChoppy,
		CorrelationDelta: a.correlation.ConfidenceDelta(direction, req.IsSecondaryAsset),
	}

	if ok, reason := a.validator.Validate(ctx, direction); !ok {
		return nil, a.reject(RejectionVetoed, reason), nil
	}

	if req.IsSecondaryAsset && a.correlation.ShouldPauseSecondarySignals() {
		return nil, a.reject(RejectionVetoed, "reference instrument volatility pause"), nil
	}

	score := a.scorer.Score(ctx)
	if score.Tier == confluence.TierLow {
		return nil, a.reject(RejectionBelowThreshold, fmt.Sprintf("confidence %d below threshold", score.TotalScore)), nil
	}

	stopDistance := a.stops.StopDistance(shortInd.ATR, regime, longTA.Strength)
	stopLoss := a.stops.StopPrice(entryPrice, stopDistance, direction)
	takeProfit := risk.TakeProfitPrice(entryPrice, stopLoss, direction)

	signal := &EnhancedSignal{
		ID:          uuid.NewString(),
		Symbol:      req.Symbol,
		Direction:   direction,
		Confidence:  score.TotalScore,
		Tier:        score.Tier,
		EntryPrice:  entryPrice,
		StopLoss:    stopLoss,
		TakeProfit:  takeProfit,
		Context:     ctx,
		Components:  score.Components,
		GeneratedAt: time.Now(),
	}

	a.logger.Info().
		Str("direction", string(direction)).
		Int("confidence", score.TotalScore).
		Str("tier", string(score.Tier)).
		Float64("entry", entryPrice).
		Float64("stop_loss", stopLoss).
		Float64("take_profit", takeProfit).
		Str("regime", string(regime)).
		Msg("signal emitted")

	return signal, nil, nil
}

func (a *EnhancedAnalyzer) checkPreconditions(req *AnalysisRequest) error {
	for _, tf := range []market.Timeframe{market.TF4h, market.TF1h, market.TF15m} {
		if _, ok := req.Indicators[tf]; !ok {
			return fmt.Errorf("%w: missing %s indicators", ErrInsufficientData, tf)
		}
	}
	if len(req.Candles[market.TF4h]) < MinRegimeCandles {
		return fmt.Errorf("%w: need %d %s candles, got %d", ErrInsufficientData, MinRegimeCandles, market.TF4h, len(req.Candles[market.TF4h]))
	}
	if len(req.Candles[market.TF15m]) < MinRegimeCandles {
		return fmt.Errorf("%w: need %d %s candles, got %d", ErrInsufficientData, MinRegimeCandles, market.TF15m, len(req.Candles[market.TF15m]))
	}
	if len(req.ShortEMAFast) < MinRegimeCandles {
		return fmt.Errorf("%w: need %d fast-EMA points, got %d", ErrInsufficientData, MinRegimeCandles, len(req.ShortEMAFast))
	}
	return nil
}

// buildTimeframeAnalysis derives the per-timeframe snapshot: direction from
// the EMA9/EMA21 relationship with a dead band, strength from EMA
// separation with the ADX override applied on top.
func (a *EnhancedAnalyzer) buildTimeframeAnalysis(tf market.Timeframe, ind market.IndicatorSet) *market.TimeframeAnalysis {
	direction := market.TrendSideways
	if ind.EMA21 > 0 {
		diffPct := (ind.EMA9 - ind.EMA21) / ind.EMA21 * 100
		if diffPct > directionDeadBandPct {
			direction = market.TrendUp
		} else if diffPct < -directionDeadBandPct {
			direction = market.TrendDown
		}
	}

	strength := a.strength.Classify(ind.EMA9, ind.EMA21, ind.Close)
	strength = a.choppy.ApplyADXOverride(strength, ind.ADX)

	return &market.TimeframeAnalysis{
		Timeframe:     tf,
		EMAFast:       ind.EMA9,
		EMAMid:        ind.EMA21,
		EMASlow:       ind.EMA50,
		RSI:           ind.RSI,
		MACDLine:      ind.MACDLine,
		MACDSignal:    ind.MACDSignal,
		MACDHistogram: ind.MACDHistogram,
		ATR:           ind.ATR,
		ATRAverage:    ind.ATRAverage,
		VolumeRatio:   ind.VolumeRatio,
		Direction:     direction,
		Strength:      strength,
	}
}

// resolveDirection picks the signal side from the short timeframe first,
// favoring current momentum over the broader trend, then falls back to the
// medium and finally the dominant alignment direction. A late reversal
// override flips the side when the last three short closes moved against it.
func (a *EnhancedAnalyzer) resolveDirection(short, medium *market.TimeframeAnalysis, alignment analysis.TrendAlignment, shortCloses []float64) (market.Direction, bool) {
	trend := short.Direction
	if trend == market.TrendSideways {
		trend = medium.Direction
	}
	if trend == market.TrendSideways {
		trend = alignment.DominantDirection
	}
	if trend == market.TrendSideways {
		return "", false
	}

	direction := market.DirectionLong
	if trend == market.TrendDown {
		direction = market.DirectionShort
	}

	if n := len(shortCloses); n >= 3 && shortCloses[n-3] > 0 {
		changePct := (shortCloses[n-1] - shortCloses[n-3]) / shortCloses[n-3] * 100
		if direction == market.DirectionLong && changePct < -reversalOverridePct {
			a.logger.Debug().Float64("change_pct", changePct).Msg("reversal override: flipping to SHORT")
			direction = market.DirectionShort
		} else if direction == market.DirectionShort && changePct > reversalOverridePct {
			a.logger.Debug().Float64("change_pct", changePct).Msg("reversal override: flipping to LONG")
			direction = market.DirectionLong
		}
	}

	return direction, true
}

func (a *EnhancedAnalyzer) reject(category RejectionCategory, reason string) *Rejection {
	a.logger.Info().Str("category", string(category)).Str("reason", reason).Msg("no signal")
	return &Rejection{
		Symbol:    a.symbol,
		Category:  category,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func closes(candles []market.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

func volumes(candles []market.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// recentPriceChangePct is the move between the last two closes in percent.
func recentPriceChangePct(closes []float64) float64 {
	n := len(closes)
	if n < 2 || closes[n-2] <= 0 {
		return 0
	}
	return (closes[n-1] - closes[n-2]) / closes[n-2] * 100
}
