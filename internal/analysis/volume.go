package analysis

import (
	"math"
)

const (
	benchmarkFloor      = 0.3
	benchmarkCeiling    = 2.0
	baseVolumeThreshold = 0.60
	minVolumeThreshold  = 0.30
	falseMovePricePct   = 1.0
	falseMoveVolumeCap  = 0.40
	strongVolumeRatio   = 1.50
	decliningWindow     = 5

	falseMoveScore    = -30
	unconfirmedScore  = -20
	strongVolumeBonus = 15
	decliningPenalty  = -10
)

// VolumeConfirmation is the result of the volume check for one analysis call.
type VolumeConfirmation struct {
	IsConfirmed bool    `json:"is_confirmed"`
	VolumeScore int     `json:"volume_score"`
	IsDeclining bool    `json:"is_declining"`
	IsFalseMove bool    `json:"is_false_move"`
	Threshold   float64 `json:"threshold"`
}

// VolumeConfirmationAnalyzer checks whether volume backs a price move.
// The confirmation threshold adapts to a benchmark ratio taken from the
// reference instrument; that ratio is the only state carried between calls,
// so one instance belongs to one monitored instrument.
type VolumeConfirmationAnalyzer struct {
	benchmarkRatio float64
}

// NewVolumeConfirmationAnalyzer creates an analyzer with a neutral benchmark.
func NewVolumeConfirmationAnalyzer() *VolumeConfirmationAnalyzer {
	return &VolumeConfirmationAnalyzer{benchmarkRatio: 1.0}
}

// SetBenchmark updates the reference-instrument volume ratio, clamped to
// [0.3, 2.0] so a distorted reference feed cannot disable confirmation.
func (va *VolumeConfirmationAnalyzer) SetBenchmark(ratio float64) {
	if ratio < benchmarkFloor {
		ratio = benchmarkFloor
	}
	if ratio > benchmarkCeiling {
		ratio = benchmarkCeiling
	}
	va.benchmarkRatio = ratio
}

// Benchmark returns the current benchmark ratio.
func (va *VolumeConfirmationAnalyzer) Benchmark() float64 {
	return va.benchmarkRatio
}

// Analyze evaluates the current volume ratio against the adjusted threshold.
// history holds recent raw volumes (oldest first) used for the declining
// check; priceChangePct is the recent price move in percent.
func (va *VolumeConfirmationAnalyzer) Analyze(volumeRatio float64, history []float64, priceChangePct float64) VolumeConfirmation {
	threshold := math.Max(minVolumeThreshold, baseVolumeThreshold*va.benchmarkRatio)

	vc := VolumeConfirmation{
		IsConfirmed: volumeRatio >= threshold,
		IsFalseMove: math.Abs(priceChangePct) > falseMovePricePct && volumeRatio < falseMoveVolumeCap,
		IsDeclining: isStrictlyDeclining(history),
		Threshold:   threshold,
	}

	switch {
	case vc.IsFalseMove:
		// A sharp move on thin volume overrides everything else.
		vc.VolumeScore = falseMoveScore
	case !vc.IsConfirmed:
		vc.VolumeScore = unconfirmedScore
	default:
		if volumeRatio >= strongVolumeRatio {
			vc.VolumeScore += strongVolumeBonus
		}
		if vc.IsDeclining {
			vc.VolumeScore += decliningPenalty
		}
	}

	return vc
}

// isStrictlyDeclining reports whether the last five points fall strictly.
// Fewer than five points is not enough evidence of a decline.
func isStrictlyDeclining(history []float64) bool {
	if len(history) < decliningWindow {
		return false
	}
	recent := history[len(history)-decliningWindow:]
	for i := 1; i < len(recent); i++ {
		if recent[i] >= recent[i-1] {
			return false
		}
	}
	return true
}
