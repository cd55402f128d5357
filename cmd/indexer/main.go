package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/adapters/search"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/typesense"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	"github.com/carefinder/hospital-finder/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("hospital-indexer", cfg.Server.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}
	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}
		if interval <= 0 {
			break
		}
		reset = false
		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	provider, err := catalog.NewFromConfig(&cfg.Catalog)
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.HospitalsCollection).Msg("Deleting collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.HospitalsCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to delete collection")
		}
	}
	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	hospitals, err := provider.FetchHospitals(ctx, "", "")
	if err != nil {
		return err
	}

	log.Info().Int("hospitals", len(hospitals)).Str("source", cfg.Catalog.Source).Msg("Indexing hospitals")
	start := time.Now()
	if err := search.NewTypesenseAdapter(tsClient).Index(ctx, hospitals); err != nil {
		return err
	}
	log.Info().Dur("took", time.Since(start)).Msg("Indexing finished")
	return nil
}
