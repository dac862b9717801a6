package main

import (
	"giftlist/config"
	"giftlist/helper"
	"giftlist/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up/version) is required")
	}

	switch os.Args[1] {
	case "up", "down", "drop", "step-up", "version":
		if err := helper.Runner(cfg, os.Args[1]); err != nil {
			log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
		}
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop', 'step-up' or 'version'")
	}
}
