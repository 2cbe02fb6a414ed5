package bootstrap

import (
	"fitclub-core/internal/infra/metrics"
	"fitclub-core/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		func() prometheus.Gatherer { return prometheus.DefaultGatherer },
		fx.Annotate(
			metrics.New,
			fx.As(new(shared.Metrics)),
		),
	),
)
