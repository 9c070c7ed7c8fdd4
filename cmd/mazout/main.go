package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/catalog"
	"github.com/smallbiznis/mazout/internal/clock"
	"github.com/smallbiznis/mazout/internal/config"
	"github.com/smallbiznis/mazout/internal/customer"
	"github.com/smallbiznis/mazout/internal/logger"
	"github.com/smallbiznis/mazout/internal/migration"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	"github.com/smallbiznis/mazout/internal/order"
	"github.com/smallbiznis/mazout/internal/pricing"
	"github.com/smallbiznis/mazout/internal/server"
	"github.com/smallbiznis/mazout/internal/spf"
	"github.com/smallbiznis/mazout/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		metrics.Module,

		catalog.Module,
		pricing.Module,
		customer.Module,
		order.Module,
		spf.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
