package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/cache"
	"github.com/carefinder/hospital-finder/internal/adapters/database"
	"github.com/carefinder/hospital-finder/internal/adapters/events"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/geolocation"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/submission"
	"github.com/carefinder/hospital-finder/internal/adapters/search"
	"github.com/carefinder/hospital-finder/internal/api/handlers"
	"github.com/carefinder/hospital-finder/internal/api/routes"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/postgres"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/redis"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/sheets"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/typesense"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	"github.com/carefinder/hospital-finder/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			observability.EnableOTelLogExport()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Redis is optional; without it the catalog is uncached and events are not published
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	baseProvider, err := catalog.NewFromConfig(&cfg.Catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize hospital provider")
	}
	log.Info().Str("source", cfg.Catalog.Source).Msg("Hospital provider initialized")

	provider := baseProvider
	var warmer services.CatalogWarmer
	if redisClient != nil {
		cached := catalog.NewCachedProvider(baseProvider, cache.NewRedisAdapter(redisClient), cfg.Catalog.CacheTTL, metrics)
		provider, warmer = cached, cached
		log.Info().Dur("ttl", cfg.Catalog.CacheTTL).Msg("Hospital provider wrapped with Redis cache")
	}

	var searchIndex repositories.HospitalSearchRepository
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, matching in catalog")
		} else if err := tsClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema, matching in catalog")
		} else {
			searchIndex = search.NewTypesenseAdapter(tsClient)
			log.Info().Msg("Typesense search index enabled")
		}
	}

	bookingRepo, closeStore, err := newBookingRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize booking store")
	}
	defer closeStore()

	submitter := newSubmitter(cfg)

	bookingOpts := []services.BookingOption{services.WithBookingMetrics(metrics)}
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		bookingOpts = append(bookingOpts, services.WithEventBus(eventBus))
		go logBookingEvents(ctx, eventBus)
		log.Info().Msg("Booking event bus initialized")
	}

	searchService := services.NewSearchService(provider, searchIndex, geolocation.NewMockGeolocationProvider(), cfg.Search.PriceCeiling, metrics)
	catalogService := services.NewCatalogService(provider)
	comparisonService := services.NewComparisonService(services.NewComparisonStore(), provider)
	bookingService := services.NewBookingService(provider, bookingRepo, submitter, cfg.Booking.Location(), bookingOpts...)

	if warmer != nil || searchIndex != nil {
		warming := services.NewCacheWarmingService(warmer, loadAll(baseProvider), searchIndex, cfg.Catalog.WarmInterval)
		warming.StartPeriodicWarming(ctx)
	}

	router := routes.NewRouter(
		handlers.NewHospitalHandler(searchService, provider, bookingService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewComparisonHandler(comparisonService, provider),
		handlers.NewBookingHandler(bookingService),
		provider,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}
	log.Info().Msg("Server stopped")
}

func newBookingRepository(ctx context.Context, cfg *config.Config) (repositories.BookingRepository, func(), error) {
	if cfg.Booking.Store != "postgres" {
		log.Info().Msg("Bookings kept in memory")
		return database.NewMemoryBookingAdapter(), func() {}, nil
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := pgClient.EnsureSchema(ctx); err != nil {
		pgClient.Close()
		return nil, nil, err
	}
	log.Info().Str("database", cfg.Database.Database).Msg("Bookings stored in PostgreSQL")
	return database.NewBookingAdapter(pgClient), func() { pgClient.Close() }, nil
}

func newSubmitter(cfg *config.Config) providers.BookingSubmitter {
	if cfg.Booking.Submitter == "sheet" {
		return submission.NewSheetSubmitter(sheets.NewHTTPClient(cfg.Catalog.SheetEndpoint, cfg.Catalog.SheetTimeout))
	}
	return submission.NewLogSubmitter()
}

// loadAll reads through the uncached provider so indexing sees the source of truth
func loadAll(provider providers.HospitalProvider) func(context.Context) ([]*entities.Hospital, error) {
	return func(ctx context.Context) ([]*entities.Hospital, error) {
		return provider.FetchHospitals(ctx, "", "")
	}
}

func logBookingEvents(ctx context.Context, bus providers.EventBus) {
	ch, err := bus.Subscribe(ctx, providers.EventChannelBookings)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to subscribe to booking events")
		return
	}
	for event := range ch {
		log.Info().
			Str("event_type", string(event.EventType)).
			Str("booking_id", event.BookingID).
			Str("hospital_id", event.HospitalID).
			Msg("Booking event")
	}
}
