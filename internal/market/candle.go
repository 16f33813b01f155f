package market

// Candle represents one OHLCV period. Series are ordered oldest to newest,
// owned by the caller and borrowed read-only by the analyzers.
type Candle struct {
	OpenTime  int64   `json:"open_time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	CloseTime int64   `json:"close_time"`
}

// LastClose returns the most recent close in the series, or 0 for an
// empty series.
func LastClose(candles []Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	return candles[len(candles)-1].Close
}

// Window returns the most recent n candles, or the whole series when it
// holds fewer than n.
func Window(candles []Candle, n int) []Candle {
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}

// RangePct returns the high-to-low range of the series as a percentage of
// the lowest low. Returns 0 for an empty series or a non-positive low.
func RangePct(candles []Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	maxHigh := candles[0].High
	minLow := candles[0].Low
	for _, c := range candles[1:] {
		if c.High > maxHigh {
			maxHigh = c.High
		}
		if c.Low < minLow {
			minLow = c.Low
		}
	}
	if minLow <= 0 {
		return 0
	}
	return (maxHigh - minLow) / minLow * 100
}
