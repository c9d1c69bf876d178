// Package config loads driver configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all voyagesim settings.
type Config struct {
	Seed             int64
	DatabasePath     string
	APIPort          int
	VoyagesPerSeason int
	SeasonInterval   time.Duration

	// ReverseFactorScale scales reverse-direction route factors.
	// 1.0 keeps favorability direction-agnostic.
	ReverseFactorScale float64

	// RandomOrgKey enables true-randomness draws when set. Runs stop being
	// reproducible; leave empty to use the seeded source.
	RandomOrgKey string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	return &Config{
		Seed:               getEnvInt64("VOYAGESIM_SEED", 42),
		DatabasePath:       getEnv("VOYAGESIM_DB_PATH", "data/archipelago.db"),
		APIPort:            getEnvInt("VOYAGESIM_API_PORT", 8080),
		VoyagesPerSeason:   getEnvInt("VOYAGESIM_VOYAGES_PER_SEASON", 12),
		SeasonInterval:     getEnvDuration("VOYAGESIM_SEASON_INTERVAL", 30*time.Second),
		ReverseFactorScale: getEnvFloat("VOYAGESIM_REVERSE_FACTOR_SCALE", 1.0),
		RandomOrgKey:       getEnv("RANDOM_ORG_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("invalid float in environment, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
	}
	return fallback
}
