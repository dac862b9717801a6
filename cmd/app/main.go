package main

import (
	"context"
	"giftlist/config"
	"giftlist/di"
	_ "giftlist/docs"
	"giftlist/helper"
	"giftlist/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 10 * time.Second

// @title Gift List API
// @version 1.0
// @description Wedding and event gift registry with race free reservations.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	if err := helper.EnsureVersion(cfg); err != nil {
		log.Fatal().Err(err).Msg("Database schema check failed")
	}

	app := di.InitializeService()
	app.HTTP.Serve()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	app.Close(ctx)
}
