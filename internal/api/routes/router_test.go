package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/database"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/geolocation"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/submission"
	"github.com/carefinder/hospital-finder/internal/api/handlers"
	"github.com/carefinder/hospital-finder/internal/api/routes"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	provider := catalog.NewMockProvider()
	loc := time.FixedZone("IST", 19800)
	bookings := services.NewBookingService(
		provider,
		database.NewMemoryBookingAdapter(),
		submission.NewLogSubmitter(),
		loc,
		services.WithClock(func() time.Time { return time.Date(2029, 6, 1, 8, 0, 0, 0, loc) }),
	)
	search := services.NewSearchService(provider, nil, geolocation.NewMockGeolocationProvider(), services.DefaultPriceCeiling, nil)

	router := routes.NewRouter(
		handlers.NewHospitalHandler(search, provider, bookings),
		handlers.NewCatalogHandler(services.NewCatalogService(provider)),
		handlers.NewComparisonHandler(services.NewComparisonService(services.NewComparisonStore(), provider), provider),
		handlers.NewBookingHandler(bookings),
		provider,
		[]string{"*"},
		nil,
	)
	srv := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals/search?treatment=cardiology&location=chennai", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals/1", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals/404", "", http.StatusNotFound},
		{http.MethodGet, "/api/hospitals/1/slots?date=2030-01-01", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/treatments", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/facilities", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/top-rated?limit=3", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/affordable", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/nearby?city=Delhi", "", http.StatusOK},
		{http.MethodPost, "/api/comparison", `{"hospital_id":"1"}`, http.StatusOK},
		{http.MethodGet, "/api/comparison", "", http.StatusOK},
		{http.MethodGet, "/api/comparison/diff?a=1&b=4", "", http.StatusOK},
		{http.MethodDelete, "/api/comparison/1", "", http.StatusOK},
		{http.MethodDelete, "/api/comparison", "", http.StatusNoContent},
		{http.MethodGet, "/api/bookings/nope", "", http.StatusNotFound},
		{http.MethodPost, "/api/bookings/nope/cancel", "", http.StatusNotFound},
		{http.MethodPut, "/api/hospitals/1", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}

func TestRouter_BookingFlow(t *testing.T) {
	srv := newTestServer(t)
	form := `{"name":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com",` +
		`"date":"2030-01-01","time":"09:00","hospital":"2","treatment":"Neurology"}`

	resp, err := srv.Client().Post(srv.URL+"/api/bookings", "application/json", strings.NewReader(form))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var booking struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&booking))
	require.NotEmpty(t, booking.ID)

	slots, err := srv.Client().Get(srv.URL + "/api/hospitals/2/slots?date=2030-01-01")
	require.NoError(t, err)
	defer slots.Body.Close()
	var body struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(slots.Body).Decode(&body))
	assert.NotContains(t, body.Slots, "09:00")
	assert.Contains(t, body.Slots, "09:30")

	again, err := srv.Client().Post(srv.URL+"/api/bookings", "application/json", strings.NewReader(form))
	require.NoError(t, err)
	defer again.Body.Close()
	assert.Equal(t, http.StatusConflict, again.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/bookings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
