package analysis

import (
	"math"

	"signal-engine/internal/market"
)

const (
	srProximityPct      = 0.005 // within 0.5% of a level counts as "at" it
	resistanceFallback  = 1.05  // no swing high above price: assume 5% away
	supportFallback     = 0.95  // no swing low below price: assume 5% away
	atSupportScore      = 10
	breakoutScore       = 10
	atResistancePenalty = -15
)

// SupportResistance describes the nearest levels around the current price.
type SupportResistance struct {
	NearestSupport    float64 `json:"nearest_support"`
	NearestResistance float64 `json:"nearest_resistance"`
	AtSupport         bool    `json:"at_support"`
	AtResistance      bool    `json:"at_resistance"`
	IsBreakout        bool    `json:"is_breakout"`
	SRScore           int     `json:"sr_score"`
}

// SupportResistanceDetector extracts swing points from a candle window and
// relates the current price to the nearest levels. Stateless; derived fresh
// per call.
type SupportResistanceDetector struct{}

// NewSupportResistanceDetector creates a support/resistance detector.
func NewSupportResistanceDetector() *SupportResistanceDetector {
	return &SupportResistanceDetector{}
}

// Detect finds the nearest support and resistance around price. The window
// needs at least 3 candles so every swing candidate has two neighbors;
// volumeConfirmed is the volume analyzer's confirmation flag, required for
// a breakout to count.
func (sd *SupportResistanceDetector) Detect(candles []market.Candle, price float64, volumeConfirmed bool) SupportResistance {
	highs, lows := swingPoints(candles)

	sr := SupportResistance{
		NearestResistance: nearestAbove(highs, price),
		NearestSupport:    nearestBelow(lows, price),
	}
	if sr.NearestResistance == 0 {
		sr.NearestResistance = price * resistanceFallback
	}
	if sr.NearestSupport == 0 {
		sr.NearestSupport = price * supportFallback
	}

	sr.AtSupport = withinProximity(price, sr.NearestSupport)
	sr.AtResistance = withinProximity(price, sr.NearestResistance)
	sr.IsBreakout = price > sr.NearestResistance && volumeConfirmed

	if sr.AtSupport {
		sr.SRScore += atSupportScore
	}
	if sr.IsBreakout {
		sr.SRScore += breakoutScore
	}
	if sr.AtResistance && !sr.IsBreakout {
		sr.SRScore += atResistancePenalty
	}

	return sr
}

// swingPoints extracts swing highs and lows: candles whose high (low)
// exceeds (undercuts) both immediate neighbors. When a side has no swing
// point the window's global extreme stands in for it.
func swingPoints(candles []market.Candle) (highs, lows []float64) {
	for i := 1; i < len(candles)-1; i++ {
		if candles[i].High > candles[i-1].High && candles[i].High > candles[i+1].High {
			highs = append(highs, candles[i].High)
		}
		if candles[i].Low < candles[i-1].Low && candles[i].Low < candles[i+1].Low {
			lows = append(lows, candles[i].Low)
		}
	}

	if len(candles) > 0 {
		if len(highs) == 0 {
			maxHigh := candles[0].High
			for _, c := range candles[1:] {
				if c.High > maxHigh {
					maxHigh = c.High
				}
			}
			highs = append(highs, maxHigh)
		}
		if len(lows) == 0 {
			minLow := candles[0].Low
			for _, c := range candles[1:] {
				if c.Low < minLow {
					minLow = c.Low
				}
			}
			lows = append(lows, minLow)
		}
	}

	return highs, lows
}

// nearestAbove returns the lowest level strictly above price, or 0.
func nearestAbove(levels []float64, price float64) float64 {
	best := 0.0
	for _, level := range levels {
		if level > price && (best == 0 || level < best) {
			best = level
		}
	}
	return best
}

// nearestBelow returns the highest level strictly below price, or 0.
func nearestBelow(levels []float64, price float64) float64 {
	best := 0.0
	for _, level := range levels {
		if level < price && level > best {
			best = level
		}
	}
	return best
}

func withinProximity(price, level float64) bool {
	if level <= 0 {
		return false
	}
	return math.Abs(price-level)/level <= srProximityPct
}
