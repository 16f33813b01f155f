package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"signal-engine/internal/api"
	"signal-engine/internal/cache"
	"signal-engine/internal/confluence"
	"signal-engine/internal/database"
	"signal-engine/internal/engine"
)

// Config is the root configuration, loaded from a JSON file with
// environment-variable overrides on top.
type Config struct {
	Engine   engine.Config    `json:"engine"`
	Server   api.ServerConfig `json:"server"`
	Database DatabaseConfig   `json:"database"`
	Redis    cache.Config     `json:"redis"`
	Logging  LoggingConfig    `json:"logging"`
}

// DatabaseConfig wraps the database connection settings with an enable flag.
type DatabaseConfig struct {
	Enabled bool `json:"enabled"`
	database.Config
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Pretty bool   `json:"pretty"` // console writer instead of JSON
}

// Default returns the production configuration.
func Default() *Config {
	return &Config{
		Engine: engine.DefaultConfig(),
		Server: api.ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			AuthEnabled: false,
		},
		Database: DatabaseConfig{
			Enabled: false,
			Config: database.Config{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: "signal_engine",
				SSLMode:  "disable",
			},
		},
		Redis: cache.Config{
			Enabled: false,
			Address: "localhost:6379",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Relaxed returns a testing configuration with the relaxed MEDIUM cutoff
// and the optional vetoes switched off. Not for production use.
func Relaxed() *Config {
	cfg := Default()
	cfg.Engine.MediumThreshold = confluence.MediumThresholdRelaxed
	cfg.Engine.Validator = confluence.ValidatorConfig{
		MinVolumeCheck: false,
		FalseMoveVeto:  false,
		WeakTrendVeto:  false,
		RegimeVeto:     false,
	}
	return cfg
}

// Load reads configuration from the given JSON file (optional; an empty
// path keeps the defaults) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvIntOrDefault("SERVER_PORT", c.Server.Port)
	c.Server.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Server.JWTSecret)

	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvIntOrDefault("DB_PORT", c.Database.Port)
	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = getEnvOrDefault("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnvOrDefault("DB_NAME", c.Database.Database)

	c.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Redis.Address)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)

	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)

	c.Engine.MediumThreshold = getEnvIntOrDefault("ENGINE_MEDIUM_THRESHOLD", c.Engine.MediumThreshold)
}

func (c *Config) validate() error {
	if c.Server.AuthEnabled && c.Server.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but no JWT secret is configured")
	}
	if c.Engine.MediumThreshold < 0 || c.Engine.MediumThreshold > 100 {
		return fmt.Errorf("medium threshold %d out of range [0,100]", c.Engine.MediumThreshold)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
