package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/database"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/geolocation"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/submission"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 19800)

// fixedNow sits well before every date used in these tests
var fixedNow = time.Date(2029, 6, 1, 8, 0, 0, 0, ist)

type fixture struct {
	provider   providers.HospitalProvider
	search     *services.SearchService
	catalog    *services.CatalogService
	comparison *services.ComparisonService
	bookings   *services.BookingService
}

func newFixture() *fixture {
	provider := catalog.NewMockProvider()
	return &fixture{
		provider:   provider,
		search:     services.NewSearchService(provider, nil, geolocation.NewMockGeolocationProvider(), services.DefaultPriceCeiling, nil),
		catalog:    services.NewCatalogService(provider),
		comparison: services.NewComparisonService(services.NewComparisonStore(), provider),
		bookings: services.NewBookingService(
			provider,
			database.NewMemoryBookingAdapter(),
			submission.NewLogSubmitter(),
			ist,
			services.WithClock(func() time.Time { return fixedNow }),
		),
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func hospitalIDs(hs []*entities.Hospital) []string {
	ids := make([]string, len(hs))
	for i, h := range hs {
		ids[i] = h.ID
	}
	return ids
}

type listResponse struct {
	Hospitals []*entities.Hospital `json:"hospitals"`
	Count     int                  `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// MockHospitalProvider fails on demand
type MockHospitalProvider struct {
	mock.Mock
}

func (m *MockHospitalProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	args := m.Called(ctx, treatment, location)
	hs, _ := args.Get(0).([]*entities.Hospital)
	return hs, args.Error(1)
}

func (m *MockHospitalProvider) FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*entities.Hospital)
	return h, args.Error(1)
}
