package components

import (
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewMembershipCommands,
		commands.NewExpiryCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewEntitlementQueries,
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
		queries.NewPlanQueries,
	),
)
