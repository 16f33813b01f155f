package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"signal-engine/internal/events"
)

// SignalStore persists decision outcomes for later review.
type SignalStore interface {
	SaveSignal(ctx context.Context, signal *EnhancedSignal) error
	SaveRejection(ctx context.Context, rejection *Rejection) error
}

// SignalCache keeps the latest emitted signal per symbol hot.
type SignalCache interface {
	SetLatest(ctx context.Context, signal *EnhancedSignal) error
}

// Runner owns one EnhancedAnalyzer per monitored symbol and serializes
// calls per symbol, so the analyzers' cross-call state never needs locks
// of its own. Different symbols analyze concurrently.
type Runner struct {
	cfg    Config
	logger zerolog.Logger
	bus    *events.EventBus
	store  SignalStore // optional
	cache  SignalCache // optional

	mu        sync.Mutex
	analyzers map[string]*analyzerSlot
}

type analyzerSlot struct {
	mu       sync.Mutex
	analyzer *EnhancedAnalyzer
}

// NewRunner creates a runner. store and cache may be nil; outcomes are then
// only published on the event bus.
func NewRunner(cfg Config, bus *events.EventBus, store SignalStore, cache SignalCache, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		logger:    logger.With().Str("component", "Runner").Logger(),
		bus:       bus,
		store:     store,
		cache:     cache,
		analyzers: make(map[string]*analyzerSlot),
	}
}

// Analyze routes the request to the symbol's analyzer, publishes the
// outcome and persists it. Persistence and caching are best effort: a
// storage failure is logged but never suppresses the decision.
func (r *Runner) Analyze(ctx context.Context, req *AnalysisRequest) (*EnhancedSignal, *Rejection, error) {
	slot := r.slotFor(req.Symbol)

	slot.mu.Lock()
	signal, rejection, err := slot.analyzer.Analyze(req)
	slot.mu.Unlock()

	if err != nil {
		return nil, nil, err
	}

	if rejection != nil {
		r.bus.PublishSignalRejected(rejection.Symbol, string(rejection.Category), rejection.Reason)
		if r.store != nil {
			if storeErr := r.store.SaveRejection(ctx, rejection); storeErr != nil {
				r.logger.Error().Err(storeErr).Str("symbol", rejection.Symbol).Msg("failed to persist rejection")
			}
		}
		return nil, rejection, nil
	}

	r.bus.PublishSignalGenerated(signal)
	if r.store != nil {
		if storeErr := r.store.SaveSignal(ctx, signal); storeErr != nil {
			r.logger.Error().Err(storeErr).Str("symbol", signal.Symbol).Msg("failed to persist signal")
		}
	}
	if r.cache != nil {
		if cacheErr := r.cache.SetLatest(ctx, signal); cacheErr != nil {
			r.logger.Warn().Err(cacheErr).Str("symbol", signal.Symbol).Msg("failed to cache signal")
		}
	}

	return signal, nil, nil
}

func (r *Runner) slotFor(symbol string) *analyzerSlot {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.analyzers[symbol]
	if !ok {
		slot = &analyzerSlot{
			analyzer: NewEnhancedAnalyzer(symbol, r.cfg, r.logger),
		}
		r.analyzers[symbol] = slot
	}
	return slot
}

// Symbols returns the symbols that have analyzers allocated.
func (r *Runner) Symbols() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.analyzers))
	for symbol := range r.analyzers {
		out = append(out, symbol)
	}
	return out
}
