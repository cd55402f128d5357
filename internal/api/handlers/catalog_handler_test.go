package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carefinder/hospital-finder/internal/api/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Lists(t *testing.T) {
	h := handlers.NewCatalogHandler(newFixture().catalog)

	cases := []struct {
		name    string
		target  string
		handler http.HandlerFunc
		want    []string
	}{
		{"top rated", "/api/catalog/top-rated?limit=2", h.TopRated, []string{"10", "2"}},
		{"affordable", "/api/catalog/affordable?limit=3", h.Affordable, []string{"7", "2", "10"}},
		{"nearby ignores case", "/api/catalog/nearby?city=mumbai", h.Nearby, []string{"5", "10"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			tc.handler(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[listResponse](t, w)
			assert.Equal(t, tc.want, hospitalIDs(resp.Hospitals))
			assert.Equal(t, len(tc.want), resp.Count)
		})
	}
}

func TestCatalogHandler_DefaultLimit(t *testing.T) {
	h := handlers.NewCatalogHandler(newFixture().catalog)
	w := httptest.NewRecorder()

	h.TopRated(w, httptest.NewRequest(http.MethodGet, "/api/catalog/top-rated", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[listResponse](t, w).Hospitals, 5)
}

func TestCatalogHandler_BadRequests(t *testing.T) {
	h := handlers.NewCatalogHandler(newFixture().catalog)

	t.Run("negative limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Affordable(w, httptest.NewRequest(http.MethodGet, "/api/catalog/affordable?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nearby without city", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Nearby(w, httptest.NewRequest(http.MethodGet, "/api/catalog/nearby", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "city is required", decode[errorResponse](t, w).Error)
	})
}

func TestCatalogHandler_TreatmentsAndFacilities(t *testing.T) {
	h := handlers.NewCatalogHandler(newFixture().catalog)

	w := httptest.NewRecorder()
	h.ListTreatments(w, httptest.NewRequest(http.MethodGet, "/api/catalog/treatments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	treatments := decode[map[string][]string](t, w)["treatments"]
	assert.Contains(t, treatments, "Cardiology")
	assert.IsIncreasing(t, treatments)

	w = httptest.NewRecorder()
	h.ListFacilities(w, httptest.NewRequest(http.MethodGet, "/api/catalog/facilities", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]string](t, w)["facilities"], 14)
}
