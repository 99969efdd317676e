package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/config"
	"github.com/uns-hr/shataku/internal/logger"
	"github.com/uns-hr/shataku/internal/migration"
	"github.com/uns-hr/shataku/internal/server"
	"github.com/uns-hr/shataku/pkg/db"
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
