package constants

import "time"

const (
	BattleLogCacheTTL       = 2 * time.Minute
	PlayerCacheTTL          = 5 * time.Minute
	DefaultMaxMatchDuration = 25 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	RedisDialTimeout   = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RecentBattlesLimit    = 25
	MaxRecentBattlesLimit = 200
	// MaxSummaryTags caps the tags accepted by one multi-player summary.
	MaxSummaryTags = 10
	// SummaryConcurrency bounds the upstream calls of one multi-player summary.
	SummaryConcurrency = 4
)
