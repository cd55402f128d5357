package main

import (
	"os"

	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	"github.com/carefinder/hospital-finder/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("hospitalctl", "development")
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	app, err := newApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}

	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
