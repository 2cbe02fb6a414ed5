package bootstrap

import (
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewClubLocation,
		NewBookingPolicy,
	),
)

// NewClubLocation is the zone every calendar date and session time is read in.
func NewClubLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Club.Location()
}

func NewBookingPolicy(cfg config.Config) reservation.Policy {
	return reservation.DefaultPolicy().WithCapacity(cfg.Club.SlotCapacity)
}
