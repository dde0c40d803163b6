// Package cache keeps recently fetched upstream answers in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain/value"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Cache is a JSON store over redis. Without a redis address every lookup
// misses and every write is dropped.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Cache, error) {
	c := &Cache{ttl: cfg.CacheTTL, logger: logger}
	if cfg.RedisAddr == "" {
		logger.Info().Msg("redis not configured, battle log cache disabled")
		return c, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: constants.RedisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	c.client = client
	return c, nil
}

func (c *Cache) Enabled() bool { return c.client != nil }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get decodes the value stored at key into dst. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A stale layout is treated as a miss and overwritten later.
		c.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		return false, nil
	}
	return true, nil
}

// Set stores v at key. A non-positive ttl uses the configured one.
func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func BattleLogKey(tag value.PlayerTag) string { return "battlelog:" + tag.String() }

func PlayerKey(tag value.PlayerTag) string { return "player:" + tag.String() }

var Module = fx.Provide(New)
