package metrics

import (
	"github.com/smallbiznis/mazout/internal/config"
	"go.uber.org/fx"
)

// Module stamps the fuel metrics with the service identity before any
// handler or job touches the singleton.
var Module = fx.Module("observability.metrics",
	fx.Invoke(func(cfg config.Config) {
		FuelWithConfig(Config{
			ServiceName: cfg.AppName,
			Environment: cfg.Environment,
		})
	}),
)
