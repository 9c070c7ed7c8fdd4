package order

import (
	"github.com/smallbiznis/mazout/internal/config"
	"github.com/smallbiznis/mazout/internal/order/repository"
	"github.com/smallbiznis/mazout/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideConfig),
	fx.Provide(service.New),
)

func provideConfig(cfg config.Config) service.Config {
	return service.Config{
		DefaultPostalCode: cfg.Fuel.DefaultPostalCode,
	}
}
