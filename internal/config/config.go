package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/constants"
)

type Config struct {
	FaceitAPIKey      string
	ServerPort        string
	LogLevel          string
	CacheDir          string
	DataAPIBaseURL    string
	StatsAPIBaseURL   string
	EloSeriesTTL      time.Duration
	PeakEloTTL        time.Duration
	IdentityCacheSize int
	IdentityCacheTTL  time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		FaceitAPIKey:      getEnv("FACEIT_API_KEY", ""),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CacheDir:          getEnv("CACHE_DIR", ".cache"),
		DataAPIBaseURL:    getEnv("FACEIT_DATA_API_URL", constants.DefaultDataAPIBaseURL),
		StatsAPIBaseURL:   getEnv("FACEIT_STATS_API_URL", constants.DefaultStatsAPIBaseURL),
		EloSeriesTTL:      getEnvSeconds("ELO_CACHE_TTL_SECONDS", constants.EloSeriesCacheTTL),
		PeakEloTTL:        getEnvSeconds("PEAK_CACHE_TTL_SECONDS", constants.PeakEloCacheTTL),
		IdentityCacheSize: getEnvInt("IDENTITY_CACHE_SIZE", constants.IdentityCacheSize),
		IdentityCacheTTL:  constants.IdentityCacheTTL,
	}

	if cfg.FaceitAPIKey == "" {
		return nil, fmt.Errorf("FACEIT_API_KEY is required")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("cache_dir", cfg.CacheDir).
		Dur("elo_series_ttl", cfg.EloSeriesTTL).
		Dur("peak_elo_ttl", cfg.PeakEloTTL).
		Int("identity_cache_size", cfg.IdentityCacheSize).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
