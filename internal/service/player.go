package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/cache"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/domain/value"
	"brawl-tracker/internal/metrics"
	"brawl-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	upstream Upstream
	repo     *repository.PlayerRepository
	cache    *cache.Cache
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewPlayerService(upstream Upstream, repo *repository.PlayerRepository, c *cache.Cache, m *metrics.Metrics, logger zerolog.Logger) *PlayerService {
	return &PlayerService{upstream: upstream, repo: repo, cache: c, metrics: m, logger: logger}
}

// cacheTTL keeps cached profiles no longer than stored ones stay fresh.
func (s *PlayerService) cacheTTL() time.Duration {
	return min(s.cache.TTL(), constants.PlayerCacheTTL)
}

// Profile returns the cached or stored profile of tag while it is fresh, and
// fetches it from the game API otherwise.
func (s *PlayerService) Profile(ctx context.Context, tag value.PlayerTag, refresh bool) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("tag", tag.String()).Bool("refresh", refresh).Msg("getting player")

	key := cache.PlayerKey(tag)
	if refresh {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to drop cached player")
		}
	} else {
		var cached domain.Player
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("player cache lookup failed")
		}
		if hit {
			s.logger.Debug().Str("tag", tag.String()).Msg("returning cached player")
			return &cached, nil
		}

		shouldRefresh, err := s.repo.ShouldRefresh(ctx, tag.String(), constants.PlayerCacheTTL)
		if err != nil {
			return nil, err
		}
		if !shouldRefresh {
			player, err := s.repo.Get(ctx, tag.String())
			if err == nil {
				s.logger.Info().Str("tag", tag.String()).Msg("returning stored player")
				s.remember(ctx, tag, player)
				return player, nil
			}
			if !errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to read stored player")
			}
		}
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	resp, err := s.upstream.GetPlayer(apiCtx, tag)
	observeUpstream(s.metrics, s.logger, s.upstream, "player", err)
	if err != nil {
		s.logger.Error().Err(err).Str("tag", tag.String()).Msg("failed to fetch player")
		return nil, fmt.Errorf("failed to fetch player: %w", err)
	}

	player := &domain.Player{
		Tag:             tag.String(),
		Name:            resp.Name,
		NameColor:       resp.NameColor,
		Trophies:        resp.Trophies,
		HighestTrophies: resp.HighestTrophies,
		ExpLevel:        resp.ExpLevel,
		ClubTag:         resp.Club.Tag,
		ClubName:        resp.Club.Name,
		BrawlerCount:    len(resp.Brawlers),
		LastFetchAt:     time.Now(),
	}

	if err := s.repo.Upsert(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("tag", tag.String()).Msg("failed to upsert player")
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	s.remember(ctx, tag, player)
	s.logger.Info().Str("tag", tag.String()).Msg("player fetched successfully")
	return player, nil
}

func (s *PlayerService) remember(ctx context.Context, tag value.PlayerTag, player *domain.Player) {
	ttl := s.cacheTTL() - time.Since(player.LastFetchAt)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, cache.PlayerKey(tag), player, ttl); err != nil {
		s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to cache player")
	}
}
