package spf

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/mazout/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("spf.sync",
	fx.Provide(provideConfig),
	fx.Provide(provideFetcher),
	fx.Provide(provideLocker),
	fx.Provide(New),
	fx.Provide(NewScheduler),
	fx.Invoke(registerScheduler),
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Enabled:      cfg.SPF.Enabled,
		URL:          cfg.SPF.URL,
		FetchTimeout: cfg.SPF.FetchTimeout,
		RunInterval:  cfg.SPF.RunInterval,
		Markup:       cfg.SPF.Markup,
	}
}

func provideFetcher(cfg Config) Fetcher {
	return NewFetcher(cfg.URL, cfg.FetchTimeout)
}

func provideLocker(cfg config.Config) *Locker {
	if cfg.RedisAddr == "" {
		return nil
	}
	return NewLocker(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
}

func registerScheduler(lc fx.Lifecycle, log *zap.Logger, cfg Config, sched *Scheduler) {
	if !cfg.Enabled {
		log.Info("tariff sync disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go sched.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
