package analysis

import (
	"signal-engine/internal/market"
)

// Timeframe weights for the alignment score. Must sum to 1.0.
const (
	weightLong   = 0.50
	weightMedium = 0.30
	weightShort  = 0.20

	fullAlignmentBonus = 25
	conflictPenalty    = 30
)

// TrendAlignment captures how well the three timeframes agree.
type TrendAlignment struct {
	Score             float64               `json:"alignment_score"`
	IsFullyAligned    bool                  `json:"is_fully_aligned"`
	DominantDirection market.TrendDirection `json:"dominant_direction"`
	ConflictPenalty   int                   `json:"conflict_penalty"`
	AlignmentBonus    int                   `json:"alignment_bonus"`
}

// TrendAlignmentEngine computes cross-timeframe trend agreement. The long
// timeframe dominates; the medium and short contribute their weight only
// when they agree with it.
type TrendAlignmentEngine struct{}

// NewTrendAlignmentEngine creates an alignment engine.
func NewTrendAlignmentEngine() *TrendAlignmentEngine {
	return &TrendAlignmentEngine{}
}

// Evaluate computes the weighted alignment of the three directions.
func (e *TrendAlignmentEngine) Evaluate(long, medium, short market.TrendDirection) TrendAlignment {
	alignment := TrendAlignment{
		DominantDirection: long,
		Score:             weightLong,
	}

	if medium == long {
		alignment.Score += weightMedium
	}
	if short == long {
		alignment.Score += weightShort
	}

	if long == medium && medium == short && long != market.TrendSideways {
		alignment.IsFullyAligned = true
		alignment.AlignmentBonus = fullAlignmentBonus
	}

	if long != medium && long != market.TrendSideways && medium != market.TrendSideways {
		alignment.ConflictPenalty = conflictPenalty
	}

	return alignment
}

// CanSignal is the eligibility predicate used during validation. The long
// timeframe must already point in the intended direction; when the medium
// disagrees with it, the short must side with the long.
func (e *TrendAlignmentEngine) CanSignal(long, medium, short market.TrendDirection, intended market.Direction) bool {
	required := market.TrendUp
	if intended == market.DirectionShort {
		required = market.TrendDown
	}

	if long != required {
		return false
	}
	if long != medium && short != long {
		return false
	}
	return true
}
