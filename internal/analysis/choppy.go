package analysis

import (
	"signal-engine/internal/market"
)

const (
	choppyLookback     = 20 // paired price/EMA points inspected
	choppyMaxCrossings = 4  // more crossings than this is choppy
	adxWeakThreshold   = 20.0
	directionRingSize  = 5
	alternationLimit   = 2  // ring alternations that trigger a cooldown
	pauseCalls         = 10 // analysis calls to sit out after alternation
)

// ChoppyDetector identifies whipsaw conditions. It keeps a small ring of
// recent signal directions and a cooldown counter, so one instance belongs
// to one monitored instrument.
type ChoppyDetector struct {
	recentDirections []market.Direction
	pauseCounter     int
}

// NewChoppyDetector creates a detector with empty history.
func NewChoppyDetector() *ChoppyDetector {
	return &ChoppyDetector{
		recentDirections: make([]market.Direction, 0, directionRingSize),
	}
}

// IsChoppy counts price/EMA crossings over the last 20 paired points.
// More than 4 sign changes of (price - ema) marks the market as choppy.
func (cd *ChoppyDetector) IsChoppy(prices, emaFast []float64) bool {
	n := len(prices)
	if len(emaFast) < n {
		n = len(emaFast)
	}
	if n < 2 {
		return false
	}

	start := 0
	if n > choppyLookback {
		start = n - choppyLookback
	}

	crossings := 0
	prevSign := 0
	for i := start; i < n; i++ {
		diff := prices[i] - emaFast[i]
		sign := 0
		if diff > 0 {
			sign = 1
		} else if diff < 0 {
			sign = -1
		}
		if sign != 0 && prevSign != 0 && sign != prevSign {
			crossings++
		}
		if sign != 0 {
			prevSign = sign
		}
	}

	return crossings > choppyMaxCrossings
}

// ApplyADXOverride forces WEAK strength when ADX shows no directional
// movement, regardless of what EMA separation suggested.
func (cd *ChoppyDetector) ApplyADXOverride(strength market.TrendStrength, adx float64) market.TrendStrength {
	if adx < adxWeakThreshold {
		return market.StrengthWeak
	}
	return strength
}

// ShouldPause records the new direction and reports whether the instrument
// is in an alternation cooldown. Two or more direction flips within the
// last five signals start a 10-call pause; while paused the counter is
// decremented without inspecting the new direction.
func (cd *ChoppyDetector) ShouldPause(direction market.Direction) bool {
	if cd.pauseCounter > 0 {
		cd.pauseCounter--
		return true
	}

	cd.recentDirections = append(cd.recentDirections, direction)
	if len(cd.recentDirections) > directionRingSize {
		cd.recentDirections = cd.recentDirections[1:]
	}

	alternations := 0
	for i := 1; i < len(cd.recentDirections); i++ {
		if cd.recentDirections[i] != cd.recentDirections[i-1] {
			alternations++
		}
	}

	if alternations >= alternationLimit {
		cd.pauseCounter = pauseCalls
		cd.recentDirections = cd.recentDirections[:0]
		return true
	}

	return false
}
