package pricing

import (
	"github.com/smallbiznis/mazout/internal/config"
	"github.com/smallbiznis/mazout/internal/pricing/domain"
	"github.com/smallbiznis/mazout/internal/pricing/repository"
	"github.com/smallbiznis/mazout/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideConfig),
	fx.Provide(service.New),
)

func provideConfig(cfg config.Config) service.Config {
	return service.Config{
		MinQuantity:         cfg.Fuel.MinQuantity,
		MaxQuantity:         cfg.Fuel.MaxQuantity,
		DegressiveThreshold: cfg.Fuel.DegressiveThreshold,
		Zones:               domain.Zones(cfg.Fuel.Zones),
	}
}
