package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "availability:"

// AvailabilityCache keeps computed day availability in Redis for a short TTL.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, date time.Time) ([]reservation.SlotAvailability, bool, error) {
	val, err := c.client.Get(ctx, Key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var slots []reservation.SlotAvailability
	if err := json.Unmarshal(val, &slots); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return slots, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, date time.Time, slots []reservation.SlotAvailability) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, Key(date), data, c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, date time.Time) error {
	return c.client.Del(ctx, Key(date)).Err()
}

func Key(date time.Time) string {
	return keyPrefix + date.Format(time.DateOnly)
}
