package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"signal-engine/config"
	"signal-engine/internal/api"
	"signal-engine/internal/cache"
	"signal-engine/internal/database"
	"signal-engine/internal/engine"
	"signal-engine/internal/events"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	relaxed := flag.Bool("relaxed", false, "use relaxed testing thresholds (not for production)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	if *relaxed {
		relaxedCfg := config.Relaxed()
		cfg.Engine = relaxedCfg.Engine
	}

	logger := newLogger(cfg.Logging)
	if *relaxed {
		logger.Warn().Msg("running with relaxed thresholds and disabled vetoes")
	}

	bus := events.NewEventBus()

	var store engine.SignalStore
	var repo *database.SignalRepository
	if cfg.Database.Enabled {
		db, err := database.NewDB(cfg.Database.Config, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.RunMigrations(ctx); err != nil {
			cancel()
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
		cancel()

		repo = database.NewSignalRepository(db)
		store = repo
	}

	var signalCache *cache.SignalCache
	var cacheIface engine.SignalCache
	if cfg.Redis.Enabled {
		signalCache, err = cache.NewSignalCache(cfg.Redis, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Redis cache")
		}
		defer signalCache.Close()
		cacheIface = signalCache
	}

	runner := engine.NewRunner(cfg.Engine, bus, store, cacheIface, logger)
	server := api.NewServer(cfg.Server, runner, repo, signalCache, bus, logger)

	bus.Publish(events.Event{Type: events.EventEngineStarted, Data: map[string]interface{}{
		"medium_threshold": cfg.Engine.MediumThreshold,
	}})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server stopped with error")
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	bus.Publish(events.Event{Type: events.EventEngineStopped, Data: nil})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
