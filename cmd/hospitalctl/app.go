package main

import (
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/database"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/geolocation"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/submission"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/sheets"
	"github.com/carefinder/hospital-finder/pkg/config"
)

// app wires the services the commands run against. Bookings live for one invocation.
type app struct {
	provider   providers.HospitalProvider
	search     *services.SearchService
	comparison *services.ComparisonService
	bookings   *services.BookingService
}

func newApp(cfg *config.Config) (*app, error) {
	provider, err := catalog.NewFromConfig(&cfg.Catalog)
	if err != nil {
		return nil, err
	}

	var submitter providers.BookingSubmitter = submission.NewLogSubmitter()
	if cfg.Booking.Submitter == "sheet" {
		submitter = submission.NewSheetSubmitter(sheets.NewHTTPClient(cfg.Catalog.SheetEndpoint, cfg.Catalog.SheetTimeout))
	}

	return newAppWith(provider, submitter, cfg.Search.PriceCeiling, cfg.Booking.Location(), time.Now), nil
}

func newAppWith(
	provider providers.HospitalProvider,
	submitter providers.BookingSubmitter,
	ceiling float64,
	loc *time.Location,
	now func() time.Time,
) *app {
	return &app{
		provider:   provider,
		search:     services.NewSearchService(provider, nil, geolocation.NewMockGeolocationProvider(), ceiling, nil),
		comparison: services.NewComparisonService(services.NewComparisonStore(), provider),
		bookings: services.NewBookingService(
			provider,
			database.NewMemoryBookingAdapter(),
			submitter,
			loc,
			services.WithClock(now),
		),
	}
}
