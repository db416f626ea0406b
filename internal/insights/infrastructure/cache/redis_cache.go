package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hiteshchouriya/rik/internal/insights/application/queries"
)

// RedisCache caches computed stats and insights in Redis with a short TTL.
// Cache failures are logged and treated as misses; the database remains the
// source of truth.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a Redis-backed stats cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func statsKey(userID uuid.UUID) string {
	return fmt.Sprintf("rik:stats:%s", userID)
}

func insightsKey(userID uuid.UUID) string {
	return fmt.Sprintf("rik:insights:%s", userID)
}

// GetStats looks up cached stats for a user.
func (c *RedisCache) GetStats(ctx context.Context, userID uuid.UUID) (*queries.StatsDTO, bool) {
	var dto queries.StatsDTO
	if !c.get(ctx, statsKey(userID), &dto) {
		return nil, false
	}
	return &dto, true
}

// SetStats caches stats for a user.
func (c *RedisCache) SetStats(ctx context.Context, userID uuid.UUID, dto *queries.StatsDTO) {
	c.set(ctx, statsKey(userID), dto)
}

// GetInsights looks up cached weekly insights for a user.
func (c *RedisCache) GetInsights(ctx context.Context, userID uuid.UUID) (*queries.WeeklyInsightsDTO, bool) {
	var dto queries.WeeklyInsightsDTO
	if !c.get(ctx, insightsKey(userID), &dto) {
		return nil, false
	}
	return &dto, true
}

// SetInsights caches weekly insights for a user.
func (c *RedisCache) SetInsights(ctx context.Context, userID uuid.UUID, dto *queries.WeeklyInsightsDTO) {
	c.set(ctx, insightsKey(userID), dto)
}

// Invalidate drops a user's cached stats and insights. Called after writes
// that change the underlying counts.
func (c *RedisCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, statsKey(userID), insightsKey(userID)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", "error", err)
	}
}

func (c *RedisCache) get(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
