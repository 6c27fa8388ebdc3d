package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

const courierDirectoryKey = keyPrefix + "couriers:directory"

// CourierCache stores the courier directory as a single JSON document.
type CourierCache struct {
	client redis.Cmdable
}

var _ ports.CourierCache = (*CourierCache)(nil)

func NewCourierCache(client redis.Cmdable) *CourierCache {
	return &CourierCache{client: client}
}

func (c *CourierCache) Get(ctx context.Context) (*domain.CourierDirectory, bool, error) {
	raw, err := c.client.Get(ctx, courierDirectoryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("courier cache get: %w", err)
	}

	var dir domain.CourierDirectory
	if err := json.Unmarshal(raw, &dir); err != nil {
		return nil, false, fmt.Errorf("courier cache decode: %w", err)
	}
	return &dir, true, nil
}

func (c *CourierCache) Set(ctx context.Context, dir *domain.CourierDirectory, ttl time.Duration) error {
	raw, err := json.Marshal(dir)
	if err != nil {
		return fmt.Errorf("courier cache encode: %w", err)
	}
	return c.client.Set(ctx, courierDirectoryKey, raw, ttl).Err()
}

func (c *CourierCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, courierDirectoryKey).Err()
}
