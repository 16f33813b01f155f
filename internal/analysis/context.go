package analysis

import (
	"signal-engine/internal/market"
)

// MarketContext aggregates the outputs of all sub-analyzers for one
// analysis call. It is assembled once, then read-only: the validator and
// scorer consume it without touching the analyzers again. The raw
// per-timeframe snapshots stay on it because validation needs the
// individual directions and strengths, not just the combined score.
type MarketContext struct {
	Symbol string `json:"symbol"`

	Long   *market.TimeframeAnalysis `json:"long"`
	Medium *market.TimeframeAnalysis `json:"medium"`
	Short  *market.TimeframeAnalysis `json:"short"`

	Alignment TrendAlignment     `json:"alignment"`
	Regime    market.Regime      `json:"regime"`
	Volume    VolumeConfirmation `json:"volume"`
	SR        SupportResistance  `json:"support_resistance"`
	Momentum  MomentumAnalysis   `json:"momentum"`

	IsChoppy         bool `json:"is_choppy"`
	CorrelationDelta int  `json:"correlation_delta"`
}
