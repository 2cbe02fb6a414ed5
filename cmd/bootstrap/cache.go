package bootstrap

import (
	"context"
	"log/slog"

	"fitclub-core/internal/infra/cache"
	"fitclub-core/internal/pkg/config"
	"fitclub-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache falls back to a cache that always misses when REDIS_ADDR is unset.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config) (shared.AvailabilityCache, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("availability cache disabled")
		return cache.Noop{}, nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("availability cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	return cache.NewAvailabilityCache(client, cfg.Redis.CacheTTL), nil
}
