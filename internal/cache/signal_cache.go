// Package cache provides Redis-based caching for the latest decision per
// symbol, with graceful degradation: when Redis is unavailable, operations
// return errors that callers handle by falling back to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"signal-engine/internal/engine"
)

// ErrCacheMiss is returned when no cached signal exists for a symbol.
var ErrCacheMiss = errors.New("cache miss")

const (
	latestSignalKey  = "signal:%s:latest"
	defaultSignalTTL = 15 * time.Minute
)

// Config holds Redis configuration
type Config struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size"`
}

// SignalCache keeps the most recent emitted signal per symbol in Redis.
type SignalCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSignalCache connects to Redis and verifies connectivity. A failed
// initial ping is logged but not fatal; the cache then runs degraded and
// surfaces errors per operation.
func NewSignalCache(cfg Config, logger zerolog.Logger) (*SignalCache, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("redis is not enabled in configuration")
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 5
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	sc := &SignalCache{
		client: client,
		ttl:    defaultSignalTTL,
		logger: logger.With().Str("component", "SignalCache").Logger(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		sc.logger.Warn().Err(err).Msg("initial Redis connection failed, running degraded")
		return sc, nil
	}

	sc.logger.Info().Str("address", cfg.Address).Msg("connected to Redis")
	return sc, nil
}

// SetLatest stores the signal as the symbol's most recent decision.
func (sc *SignalCache) SetLatest(ctx context.Context, signal *engine.EnhancedSignal) error {
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}

	key := fmt.Sprintf(latestSignalKey, signal.Symbol)
	if err := sc.client.Set(ctx, key, data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache signal: %w", err)
	}
	return nil
}

// GetLatest returns the most recent cached signal for the symbol, or
// ErrCacheMiss when none is stored.
func (sc *SignalCache) GetLatest(ctx context.Context, symbol string) (*engine.EnhancedSignal, error) {
	key := fmt.Sprintf(latestSignalKey, symbol)
	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached signal: %w", err)
	}

	var signal engine.EnhancedSignal
	if err := json.Unmarshal(data, &signal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached signal: %w", err)
	}
	return &signal, nil
}

// Close releases the Redis client.
func (sc *SignalCache) Close() error {
	return sc.client.Close()
}
