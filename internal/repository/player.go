package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const selectPlayer = `
SELECT tag, name, name_color, trophies, highest_trophies, exp_level, club_tag, club_name,
       brawler_count, last_fetch_at, created_at, updated_at
FROM players
WHERE tag = ?`

// Get returns sql.ErrNoRows when tag was never stored.
func (r *PlayerRepository) Get(ctx context.Context, tag string) (*domain.Player, error) {
	var (
		p                                 domain.Player
		lastFetchAt, createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, selectPlayer, tag).Scan(
		&p.Tag, &p.Name, &p.NameColor, &p.Trophies, &p.HighestTrophies, &p.ExpLevel,
		&p.ClubTag, &p.ClubName, &p.BrawlerCount, &lastFetchAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.LastFetchAt = time.Unix(lastFetchAt, 0).UTC()
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}

const upsertPlayer = `
INSERT INTO players (
    tag, name, name_color, trophies, highest_trophies, exp_level, club_tag, club_name,
    brawler_count, last_fetch_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (tag) DO UPDATE SET
    name = excluded.name,
    name_color = excluded.name_color,
    trophies = excluded.trophies,
    highest_trophies = excluded.highest_trophies,
    exp_level = excluded.exp_level,
    club_tag = excluded.club_tag,
    club_name = excluded.club_name,
    brawler_count = excluded.brawler_count,
    last_fetch_at = excluded.last_fetch_at,
    updated_at = excluded.updated_at`

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := time.Now()
	lastFetchAt := player.LastFetchAt
	if lastFetchAt.IsZero() {
		lastFetchAt = now
	}

	_, err := r.db.ExecContext(ctx, upsertPlayer,
		player.Tag, player.Name, player.NameColor, player.Trophies, player.HighestTrophies, player.ExpLevel,
		player.ClubTag, player.ClubName, player.BrawlerCount, lastFetchAt.Unix(), now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) ShouldRefresh(ctx context.Context, tag string, ttl time.Duration) (bool, error) {
	var lastFetchAt int64
	err := r.db.QueryRowContext(ctx, `SELECT last_fetch_at FROM players WHERE tag = ?`, tag).Scan(&lastFetchAt)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Str("tag", tag).Msg("player not found, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("tag", tag).Msg("failed to get player")
		return false, err
	}

	timeSince := time.Since(time.Unix(lastFetchAt, 0))
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("tag", tag).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if player should refresh")

	return shouldRefresh, nil
}
