package components

import (
	"fitclub-core/internal/infra/uow"

	"go.uber.org/fx"
)

// Repositories are bound per transaction inside the unit of work, so the pool
// and the club location are all this module needs.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)
