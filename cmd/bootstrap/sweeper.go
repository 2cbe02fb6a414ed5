package bootstrap

import (
	"context"
	"log/slog"

	"fitclub-core/internal/pkg/config"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/worker"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		NewExpirySweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewExpirySweeper(cfg config.Config, expiry commands.ExpiryCommands) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(expiry, cfg.Sweeper.Interval)
}

// The sweep loop outlives OnStart's context, so it gets its own and is
// cancelled and awaited on stop.
func registerSweeper(lc fx.Lifecycle, cfg config.Config, sweeper *worker.ExpirySweeper) {
	if !cfg.Sweeper.Enabled {
		slog.Info("expiry sweeper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
