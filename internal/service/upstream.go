package service

import (
	"context"
	"errors"
	"strconv"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/domain/value"
	"brawl-tracker/internal/metrics"

	"github.com/rs/zerolog"
)

// Upstream is the part of the game API the services call.
type Upstream interface {
	GetBattleLog(ctx context.Context, tag value.PlayerTag) ([]battlelog.Entry, error)
	GetPlayer(ctx context.Context, tag value.PlayerTag) (*api.PlayerResponse, error)
	GetRateLimitInfo() api.RateLimitInfo
}

// observeUpstream records the outcome of a call to endpoint and the rate-limit
// headroom upstream reported with it.
func observeUpstream(m *metrics.Metrics, logger zerolog.Logger, upstream Upstream, endpoint string, err error) {
	m.ObserveUpstream(endpoint, upstreamStatus(err))

	rl := upstream.GetRateLimitInfo()
	m.ObserveRateLimit(rl.Remaining)
	if rl.Limit > 0 && rl.Remaining <= rl.Limit/10 {
		logger.Warn().
			Int("limit", rl.Limit).
			Int("remaining", rl.Remaining).
			Int("reset_seconds", rl.Reset).
			Msg("game API rate limit nearly exhausted")
	}
}

// upstreamStatus labels the outcome of an upstream call for metrics.
func upstreamStatus(err error) string {
	if err == nil {
		return "200"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.StatusCode)
	}
	return "error"
}
