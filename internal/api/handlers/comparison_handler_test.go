package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carefinder/hospital-finder/internal/api/handlers"
	"github.com/carefinder/hospital-finder/internal/api/loaders"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func addToComparison(h *handlers.ComparisonHandler, id string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"hospital_id":"` + id + `"}`)
	w := httptest.NewRecorder()
	h.Add(w, httptest.NewRequest(http.MethodPost, "/api/comparison", body))
	return w
}

func TestComparisonHandler_AddUpToThree(t *testing.T) {
	f := newFixture()
	h := handlers.NewComparisonHandler(f.comparison, f.provider)

	for _, id := range []string{"1", "2", "3"} {
		require.Equal(t, http.StatusOK, addToComparison(h, id).Code)
	}

	t.Run("re-adding a member is a no-op", func(t *testing.T) {
		w := addToComparison(h, "2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"1", "2", "3"}, hospitalIDs(decode[listResponse](t, w).Hospitals))
	})

	t.Run("fourth is rejected", func(t *testing.T) {
		w := addToComparison(h, "4")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, entities.ErrComparisonFull.Error(), decode[errorResponse](t, w).Error)
	})

	t.Run("remove frees a place", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/comparison/2", nil)
		req.SetPathValue("id", "2")
		w := httptest.NewRecorder()
		h.Remove(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"1", "3"}, hospitalIDs(decode[listResponse](t, w).Hospitals))

		assert.Equal(t, http.StatusOK, addToComparison(h, "4").Code)
	})

	t.Run("clear empties the set", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Clear(w, httptest.NewRequest(http.MethodDelete, "/api/comparison", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/comparison", nil))
		assert.Equal(t, 0, decode[listResponse](t, w).Count)
	})
}

func TestComparisonHandler_AddErrors(t *testing.T) {
	f := newFixture()
	h := handlers.NewComparisonHandler(f.comparison, f.provider)

	assert.Equal(t, http.StatusNotFound, addToComparison(h, "99").Code)
	assert.Equal(t, http.StatusBadRequest, addToComparison(h, "").Code)

	w := httptest.NewRecorder()
	h.Add(w, httptest.NewRequest(http.MethodPost, "/api/comparison", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComparisonHandler_Diff(t *testing.T) {
	f := newFixture()
	h := handlers.NewComparisonHandler(f.comparison, f.provider)

	t.Run("pairwise diff", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Diff(w, httptest.NewRequest(http.MethodGet, "/api/comparison/diff?a=1&b=2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		diff := decode[entities.HospitalComparison](t, w)
		assert.Equal(t, "1", diff.Hospital1.ID)
		assert.Equal(t, "2", diff.Hospital2.ID)
		assert.Contains(t, diff.CommonTreatments, "Cardiology")
		assert.Equal(t, 3000.0, diff.PriceDifference)
		assert.InDelta(t, 0.2, diff.RatingDifference, 1e-9)
	})

	t.Run("unknown hospital", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Diff(w, httptest.NewRequest(http.MethodGet, "/api/comparison/diff?a=1&b=99", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Diff(w, httptest.NewRequest(http.MethodGet, "/api/comparison/diff?a=1", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("request-scoped loaders batch into one fetch", func(t *testing.T) {
		provider := new(MockHospitalProvider)
		provider.On("FetchHospitals", mock.Anything, "", "").Return([]*entities.Hospital{
			{ID: "a", Price: 100, Rating: 4},
			{ID: "b", Price: 250, Rating: 3.5},
		}, nil).Once()
		h := handlers.NewComparisonHandler(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/comparison/diff?a=a&b=b", nil)
		req = req.WithContext(loaders.WithLoaders(context.Background(), loaders.NewLoaders(provider)))
		w := httptest.NewRecorder()
		h.Diff(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 150.0, decode[entities.HospitalComparison](t, w).PriceDifference)
		provider.AssertExpectations(t)
	})
}
