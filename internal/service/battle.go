package service

import (
	"context"
	"errors"
	"fmt"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/cache"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/domain/battle"
	"brawl-tracker/internal/domain/value"
	"brawl-tracker/internal/metrics"
	"brawl-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrTooManyTags = errors.New("too many tags")

type BattleService struct {
	upstream Upstream
	repo     *repository.BattleRepository
	cache    *cache.Cache
	metrics  *metrics.Metrics
	opts     battlelog.Options
	logger   zerolog.Logger
}

func NewBattleService(upstream Upstream, repo *repository.BattleRepository, c *cache.Cache, m *metrics.Metrics, cfg *config.Config, logger zerolog.Logger) *BattleService {
	opts := battlelog.DefaultOptions()
	opts.MaxMatchDuration = cfg.MaxMatchDuration
	opts.Policy.TrophyDeltaFirst = cfg.TrophyDeltaFirst

	return &BattleService{upstream: upstream, repo: repo, cache: c, metrics: m, opts: opts, logger: logger}
}

func (s *BattleService) Policy() battle.Policy { return s.opts.Policy }

// BattleLog is a player's processed battle-log page.
type BattleLog struct {
	Tag    value.PlayerTag
	Page   battlelog.Page
	Cached bool
}

type Summary struct {
	Tag     value.PlayerTag
	Page    battle.Summary
	AllTime domain.OutcomeCounts
}

// BattleLog returns tag's latest battles, classified and with ranked rounds
// merged. Freshly fetched pages are stored so the all-time tally keeps
// battles that have dropped off the upstream page.
func (s *BattleService) BattleLog(ctx context.Context, tag value.PlayerTag, refresh bool) (*BattleLog, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("tag", tag.String()).Bool("refresh", refresh).Msg("getting battle log")

	entries, cached, err := s.entries(ctx, tag, refresh)
	if err != nil {
		return nil, err
	}

	page := battlelog.Process(entries, s.opts)
	for _, rejected := range page.Rejected {
		s.logger.Warn().
			Err(rejected.Err).
			Str("tag", tag.String()).
			Str("mode", rejected.Mode).
			Time("battle_time", rejected.Time).
			Msg("skipping battle log entry")
	}

	if !cached {
		s.metrics.ObservePage(page, s.opts.Policy)
		if err := s.persist(ctx, tag, page); err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to store battles")
		}
	}

	s.logger.Info().
		Str("tag", tag.String()).
		Int("battles", len(page.Battles)).
		Int("rejected", len(page.Rejected)).
		Bool("cached", cached).
		Msg("battle log processed")

	return &BattleLog{Tag: tag, Page: page, Cached: cached}, nil
}

func (s *BattleService) entries(ctx context.Context, tag value.PlayerTag, refresh bool) ([]battlelog.Entry, bool, error) {
	key := cache.BattleLogKey(tag)

	if refresh {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to drop cached battle log")
		}
	} else if s.cache.Enabled() {
		var entries []battlelog.Entry
		hit, err := s.cache.Get(ctx, key, &entries)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("battle log cache lookup failed")
		}
		s.metrics.ObserveCache(hit)
		if hit {
			s.logger.Debug().Str("tag", tag.String()).Msg("returning cached battle log")
			return entries, true, nil
		}
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	entries, err := s.upstream.GetBattleLog(apiCtx, tag)
	observeUpstream(s.metrics, s.logger, s.upstream, "battlelog", err)
	if err != nil {
		s.logger.Error().Err(err).Str("tag", tag.String()).Msg("failed to fetch battle log")
		return nil, false, fmt.Errorf("failed to fetch battle log: %w", err)
	}

	if err := s.cache.Set(ctx, key, entries, 0); err != nil {
		s.logger.Warn().Err(err).Str("tag", tag.String()).Msg("failed to cache battle log")
	}
	return entries, false, nil
}

func (s *BattleService) persist(ctx context.Context, tag value.PlayerTag, page battlelog.Page) error {
	stored := make([]domain.StoredBattle, 0, len(page.Battles))
	for _, b := range page.Battles {
		stored = append(stored, storedBattle(tag, s.opts.Policy.Describe(b)))
	}
	return s.repo.UpsertBatch(ctx, stored)
}

func storedBattle(tag value.PlayerTag, d battle.Description) domain.StoredBattle {
	sb := domain.StoredBattle{
		PlayerTag:    tag.String(),
		BattleTime:   d.Time,
		Kind:         d.Kind,
		Mode:         d.Mode,
		Map:          d.Map,
		Outcome:      d.Outcome,
		Result:       d.Result,
		TrophyChange: d.TrophyChange,
		Rounds:       len(d.Rounds),
		StarPlayer:   d.StarPlayer,
	}
	if d.FirstRoundAt != nil {
		sb.FirstRoundAt = *d.FirstRoundAt
	}
	if d.EventID != 0 {
		id := d.EventID
		sb.EventID = &id
	}
	if d.Rank != 0 {
		rank := d.Rank
		sb.Rank = &rank
	}
	return sb
}

// Summary tallies tag's current page and everything stored for tag.
func (s *BattleService) Summary(ctx context.Context, tag value.PlayerTag) (*Summary, error) {
	log, err := s.BattleLog(ctx, tag, false)
	if err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	allTime, err := s.repo.Summary(dbCtx, tag.String())
	if err != nil {
		s.logger.Error().Err(err).Str("tag", tag.String()).Msg("failed to read stored summary")
		return nil, fmt.Errorf("failed to read stored summary: %w", err)
	}

	return &Summary{Tag: tag, Page: log.Page.Summary, AllTime: allTime}, nil
}

// SummaryForMany summarises several players at once. Results keep the order
// of tags; the first failure cancels the rest.
func (s *BattleService) SummaryForMany(ctx context.Context, tags []value.PlayerTag) ([]Summary, error) {
	if len(tags) > constants.MaxSummaryTags {
		return nil, fmt.Errorf("%w: at most %d tags", ErrTooManyTags, constants.MaxSummaryTags)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SummaryConcurrency)

	summaries := make([]Summary, len(tags))
	for i, tag := range tags {
		g.Go(func() error {
			sum, err := s.Summary(gCtx, tag)
			if err != nil {
				return fmt.Errorf("%s: %w", tag, err)
			}
			summaries[i] = *sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("tags", len(tags)).Msg("failed to summarise players")
		return nil, err
	}
	return summaries, nil
}

// Recent returns up to limit stored battles of tag, newest first.
func (s *BattleService) Recent(ctx context.Context, tag value.PlayerTag, limit int) ([]domain.StoredBattle, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = constants.RecentBattlesLimit
	}
	limit = min(limit, constants.MaxRecentBattlesLimit)

	return s.repo.Recent(ctx, tag.String(), limit)
}
