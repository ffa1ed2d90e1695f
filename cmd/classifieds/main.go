package main

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/classifieds/internal/cache"
	"github.com/smallbiznis/classifieds/internal/clock"
	"github.com/smallbiznis/classifieds/internal/config"
	"github.com/smallbiznis/classifieds/internal/migration"
	"github.com/smallbiznis/classifieds/internal/observability"
	"github.com/smallbiznis/classifieds/internal/server"
	"github.com/smallbiznis/classifieds/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		cache.Module,
		clock.Module,
		migration.Module,

		// Listing monetization API and admin surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.SnowflakeNode, err)
	}
	return node, nil
}
