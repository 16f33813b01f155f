package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"signal-engine/internal/engine"
)

// SignalRepository persists emitted signals and rejection outcomes.
type SignalRepository struct {
	db *DB
}

// NewSignalRepository creates a repository backed by the given database.
func NewSignalRepository(db *DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// SignalRecord is the stored form of an emitted signal.
type SignalRecord struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Direction   string    `json:"direction"`
	Confidence  int       `json:"confidence"`
	Tier        string    `json:"tier"`
	EntryPrice  float64   `json:"entry_price"`
	StopLoss    float64   `json:"stop_loss"`
	TakeProfit  float64   `json:"take_profit"`
	Regime      string    `json:"regime"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RejectionRecord is the stored form of a no-signal outcome.
type RejectionRecord struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	Category   string    `json:"category"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// SaveSignal stores an emitted signal with its full context snapshot.
func (r *SignalRepository) SaveSignal(ctx context.Context, signal *engine.EnhancedSignal) error {
	components, err := json.Marshal(signal.Components)
	if err != nil {
		return fmt.Errorf("failed to marshal components: %w", err)
	}
	contextJSON, err := json.Marshal(signal.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	query := `
		INSERT INTO signals (id, symbol, direction, confidence, tier, entry_price, stop_loss, take_profit, regime, components, context, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Pool.Exec(ctx, query,
		signal.ID, signal.Symbol, string(signal.Direction), signal.Confidence, string(signal.Tier),
		signal.EntryPrice, signal.StopLoss, signal.TakeProfit, string(signal.Context.Regime),
		components, contextJSON, signal.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert signal: %w", err)
	}
	return nil
}

// SaveRejection stores a no-signal outcome with its category and reason.
func (r *SignalRepository) SaveRejection(ctx context.Context, rejection *engine.Rejection) error {
	query := `
		INSERT INTO signal_rejections (symbol, category, reason, rejected_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Pool.Exec(ctx, query,
		rejection.Symbol, string(rejection.Category), rejection.Reason, rejection.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rejection: %w", err)
	}
	return nil
}

// GetRecentSignals returns the most recent signals for a symbol, newest first.
func (r *SignalRepository) GetRecentSignals(ctx context.Context, symbol string, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, symbol, direction, confidence, tier, entry_price, stop_loss, take_profit, regime, generated_at
		FROM signals
		WHERE symbol = $1
		ORDER BY generated_at DESC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	var records []SignalRecord
	for rows.Next() {
		var rec SignalRecord
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.Direction, &rec.Confidence, &rec.Tier,
			&rec.EntryPrice, &rec.StopLoss, &rec.TakeProfit, &rec.Regime, &rec.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signal row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRecentRejections returns the most recent rejections for a symbol,
// newest first.
func (r *SignalRepository) GetRecentRejections(ctx context.Context, symbol string, limit int) ([]RejectionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, symbol, category, reason, rejected_at
		FROM signal_rejections
		WHERE symbol = $1
		ORDER BY rejected_at DESC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rejections: %w", err)
	}
	defer rows.Close()

	var records []RejectionRecord
	for rows.Next() {
		var rec RejectionRecord
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.Category, &rec.Reason, &rec.RejectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rejection row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
