package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/jacobe603/quote-builder/internal/config"
	"github.com/jacobe603/quote-builder/internal/logger"
	"github.com/jacobe603/quote-builder/internal/observability"
	"github.com/jacobe603/quote-builder/internal/quote"
	"github.com/jacobe603/quote-builder/internal/reference"
	"github.com/jacobe603/quote-builder/internal/seed"
	"github.com/jacobe603/quote-builder/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),

		// Quote
		seed.Module,
		quote.Module,
		reference.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
