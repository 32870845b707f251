package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repleniq/backend-go/internal/config"
	"github.com/repleniq/backend-go/internal/domain"
)

const (
	metricsKey        = "replen:metrics"
	forecastKeyPrefix = "replen:forecast"
	scanBatchSize     = 100
)

// ResultCache caches the derived views of the current snapshot. A new upload
// invalidates everything wholesale; entries otherwise expire on TTL.
type ResultCache interface {
	GetMetrics(ctx context.Context) (domain.InventoryMetrics, bool, error)
	SetMetrics(ctx context.Context, metrics domain.InventoryMetrics) error
	GetForecast(ctx context.Context, days int) ([]domain.ForecastPoint, bool, error)
	SetForecast(ctx context.Context, days int, points []domain.ForecastPoint) error
	InvalidateAll(ctx context.Context) error
}

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopResultCache struct{}

// NewResultCache returns a redis-backed cache when caching is enabled, a noop
// cache otherwise.
func NewResultCache(cfg config.CacheConfig) (ResultCache, error) {
	if !cfg.Enabled {
		return &noopResultCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisResultCache{client: client, ttl: ttl}, nil
}

// NewNoopResultCache returns a cache that stores nothing.
func NewNoopResultCache() ResultCache {
	return &noopResultCache{}
}

func (c *redisResultCache) GetMetrics(ctx context.Context) (domain.InventoryMetrics, bool, error) {
	var metrics domain.InventoryMetrics

	payload, err := c.client.Get(ctx, metricsKey).Bytes()
	if err == redis.Nil {
		return metrics, false, nil
	}
	if err != nil {
		return metrics, false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, &metrics); err != nil {
		return metrics, false, fmt.Errorf("decode metrics cache: %w", err)
	}

	return metrics, true, nil
}

func (c *redisResultCache) SetMetrics(ctx context.Context, metrics domain.InventoryMetrics) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encode metrics cache: %w", err)
	}

	if err := c.client.Set(ctx, metricsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisResultCache) GetForecast(ctx context.Context, days int) ([]domain.ForecastPoint, bool, error) {
	payload, err := c.client.Get(ctx, forecastKey(days)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var points []domain.ForecastPoint
	if err := json.Unmarshal(payload, &points); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return points, true, nil
}

func (c *redisResultCache) SetForecast(ctx context.Context, days int, points []domain.ForecastPoint) error {
	payload, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, forecastKey(days), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisResultCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Del(ctx, metricsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, scanBatchSize)
}

func (n *noopResultCache) GetMetrics(ctx context.Context) (domain.InventoryMetrics, bool, error) {
	return domain.InventoryMetrics{}, false, nil
}

func (n *noopResultCache) SetMetrics(ctx context.Context, metrics domain.InventoryMetrics) error {
	return nil
}

func (n *noopResultCache) GetForecast(ctx context.Context, days int) ([]domain.ForecastPoint, bool, error) {
	return nil, false, nil
}

func (n *noopResultCache) SetForecast(ctx context.Context, days int, points []domain.ForecastPoint) error {
	return nil
}

func (n *noopResultCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func forecastKey(days int) string {
	return fmt.Sprintf("%s:%d", forecastKeyPrefix, days)
}
