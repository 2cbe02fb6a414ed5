package components

import (
	"fitclub-core/internal/handler"
	"fitclub-core/internal/handler/api"
	"fitclub-core/internal/handler/middleware"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewMembershipHandler,
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config, clk clock.Clock) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.Limit, clk)
		},
	),
	fx.Invoke(handler.NewRouter),
)
