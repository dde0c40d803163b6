package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"brawl-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	APIToken   string
	APIURL     string
	DBPath     string
	ServerPort string
	LogLevel   string
	// RedisAddr is optional; the battle-log cache is disabled without it.
	RedisAddr        string
	CacheTTL         time.Duration
	MaxMatchDuration time.Duration
	TrophyDeltaFirst bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cacheTTL, err := getDuration("BATTLE_LOG_CACHE_TTL", constants.BattleLogCacheTTL)
	if err != nil {
		return nil, err
	}
	maxMatch, err := getDuration("MAX_MATCH_DURATION", constants.DefaultMaxMatchDuration)
	if err != nil {
		return nil, err
	}
	deltaFirst, err := getBool("TROPHY_DELTA_FIRST", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIToken:         getEnv("BRAWLSTARS_API_TOKEN", ""),
		APIURL:           getEnv("BRAWLSTARS_API_URL", "https://api.brawlstars.com/v1"),
		DBPath:           getEnv("DB_PATH", "brawl.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		CacheTTL:         cacheTTL,
		MaxMatchDuration: maxMatch,
		TrophyDeltaFirst: deltaFirst,
	}

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("BRAWLSTARS_API_TOKEN is required")
	}

	logger.Info().
		Str("api_url", cfg.APIURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("redis", cfg.RedisAddr != "").
		Dur("cache_ttl", cfg.CacheTTL).
		Dur("max_match_duration", cfg.MaxMatchDuration).
		Bool("trophy_delta_first", cfg.TrophyDeltaFirst).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

var Module = fx.Provide(Load)
