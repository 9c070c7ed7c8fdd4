package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/catalog"
	"github.com/smallbiznis/mazout/internal/clock"
	"github.com/smallbiznis/mazout/internal/config"
	"github.com/smallbiznis/mazout/internal/logger"
	"github.com/smallbiznis/mazout/internal/migration"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	"github.com/smallbiznis/mazout/internal/spf"
	"github.com/smallbiznis/mazout/pkg/db"
	"go.uber.org/fx"
)

// Scheduler-only binary: runs the tariff sync without the HTTP server
// so it can be deployed as a standalone cron-style worker.
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
		spf.Module,
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
