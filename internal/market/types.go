package market

// Timeframe represents different chart timeframes
type Timeframe string

const (
	TF15m Timeframe = "15m"
	TF1h  Timeframe = "1h"
	TF4h  Timeframe = "4h"
)

// TrendDirection represents the direction of a trend on one timeframe
type TrendDirection string

const (
	TrendUp       TrendDirection = "UP"
	TrendDown     TrendDirection = "DOWN"
	TrendSideways TrendDirection = "SIDEWAYS"
)

// TrendStrength grades how pronounced a trend is
type TrendStrength string

const (
	StrengthStrong   TrendStrength = "STRONG"
	StrengthModerate TrendStrength = "MODERATE"
	StrengthWeak     TrendStrength = "WEAK"
)

// Regime classifies the overall market condition
type Regime string

const (
	RegimeTrending       Regime = "TRENDING"
	RegimeSideways       Regime = "SIDEWAYS"
	RegimeHighVolatility Regime = "HIGH_VOLATILITY"
	RegimeLowVolatility  Regime = "LOW_VOLATILITY"
	RegimeChoppy         Regime = "CHOPPY"
)

// Direction is the side of an emitted trading signal
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// IndicatorSet holds the pre-computed indicator values for one timeframe.
// Values are supplied by the indicator provider; this package does no
// indicator arithmetic. NaN and negative-zero inputs must be sanitized
// by the caller.
type IndicatorSet struct {
	EMA9              float64  `json:"ema9"`
	EMA21             float64  `json:"ema21"`
	EMA50             float64  `json:"ema50"`
	RSI               float64  `json:"rsi"`
	MACDLine          float64  `json:"macd_line"`
	MACDSignal        float64  `json:"macd_signal"`
	MACDHistogram     float64  `json:"macd_histogram"`
	PrevMACDHistogram *float64 `json:"prev_macd_histogram,omitempty"`
	ATR               float64  `json:"atr"`
	ATRAverage        float64  `json:"atr_average"`
	ADX               float64  `json:"adx"`
	VolumeRatio       float64  `json:"volume_ratio"`
	Close             float64  `json:"close"`
}

// TimeframeAnalysis is the per-timeframe snapshot built once per analysis
// call. It is never mutated after construction.
type TimeframeAnalysis struct {
	Timeframe     Timeframe      `json:"timeframe"`
	EMAFast       float64        `json:"ema_fast"`
	EMAMid        float64        `json:"ema_mid"`
	EMASlow       float64        `json:"ema_slow"`
	RSI           float64        `json:"rsi"`
	MACDLine      float64        `json:"macd_line"`
	MACDSignal    float64        `json:"macd_signal"`
	MACDHistogram float64        `json:"macd_histogram"`
	ATR           float64        `json:"atr"`
	ATRAverage    float64        `json:"atr_average"`
	VolumeRatio   float64        `json:"volume_ratio"`
	Direction     TrendDirection `json:"trend_direction"`
	Strength      TrendStrength  `json:"trend_strength"`
}
