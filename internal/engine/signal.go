package engine

import (
	"errors"
	"time"

	"signal-engine/internal/analysis"
	"signal-engine/internal/confluence"
	"signal-engine/internal/market"
)

// ErrInsufficientData is returned when a request carries fewer candles or
// indicator points than the pipeline's minimums. This is a caller-side
// precondition violation: the engine fails fast instead of substituting
// defaults that would mask a data gap.
var ErrInsufficientData = errors.New("insufficient market data")

// Minimum input lengths.
const (
	MinRegimeCandles = 20 // regime range compression and choppiness
	MinSRCandles     = 3  // swing point extraction
)

// RejectionCategory distinguishes the no-signal outcomes for observability.
type RejectionCategory string

const (
	RejectionVetoed         RejectionCategory = "VETOED"
	RejectionBelowThreshold RejectionCategory = "BELOW_THRESHOLD"
)

// Rejection explains why no signal was emitted for an analysis call.
type Rejection struct {
	Symbol    string            `json:"symbol"`
	Category  RejectionCategory `json:"category"`
	Reason    string            `json:"reason"`
	Timestamp time.Time         `json:"timestamp"`
}

// AnalysisRequest carries everything one analysis call needs. Candle series
// are ordered oldest to newest; indicator values are pre-computed by the
// caller's indicator provider. ShortEMAFast is the fast-EMA series on the
// short timeframe, paired point-for-point with the short closes for the
// choppiness check.
type AnalysisRequest struct {
	Symbol           string                                   `json:"symbol"`
	Candles          map[market.Timeframe][]market.Candle     `json:"candles"`
	Indicators       map[market.Timeframe]market.IndicatorSet `json:"indicators"`
	Reference        *market.IndicatorSet                     `json:"reference,omitempty"`
	ShortEMAFast     []float64                                `json:"short_ema_fast"`
	IsSecondaryAsset bool                                     `json:"is_secondary_asset"`
	HasDivergence    bool                                     `json:"has_divergence"`
}

// EnhancedSignal is the engine's sole output artifact, produced fresh per
// call and owned by the downstream position-management subsystem.
type EnhancedSignal struct {
	ID          string                    `json:"id"`
	Symbol      string                    `json:"symbol"`
	Direction   market.Direction          `json:"direction"`
	Confidence  int                       `json:"confidence"`
	Tier        confluence.ConfidenceTier `json:"tier"`
	EntryPrice  float64                   `json:"entry_price"`
	StopLoss    float64                   `json:"stop_loss"`
	TakeProfit  float64                   `json:"take_profit"`
	Context     *analysis.MarketContext   `json:"context"`
	Components  map[string]int            `json:"components"`
	GeneratedAt time.Time                 `json:"generated_at"`
}
