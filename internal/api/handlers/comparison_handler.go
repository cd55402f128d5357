package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/api/loaders"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
)

// ComparisonManager edits the shared comparison set
type ComparisonManager interface {
	AddByID(ctx context.Context, id string) ([]*entities.Hospital, error)
	Remove(id string) []*entities.Hospital
	Clear()
	List() []*entities.Hospital
}

// ComparisonHandler handles the comparison set and pairwise diffs
type ComparisonHandler struct {
	comparison ComparisonManager
	provider   providers.HospitalProvider
}

// NewComparisonHandler creates a comparison handler. provider backs the diff loader
// when no request-scoped loaders are attached.
func NewComparisonHandler(comparison ComparisonManager, provider providers.HospitalProvider) *ComparisonHandler {
	return &ComparisonHandler{
		comparison: comparison,
		provider:   provider,
	}
}

type addComparisonRequest struct {
	HospitalID string `json:"hospital_id"`
}

func (h *ComparisonHandler) List(w http.ResponseWriter, r *http.Request) {
	respondWithComparison(w, http.StatusOK, h.comparison.List())
}

// Add handles POST /api/comparison
func (h *ComparisonHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hospitals, err := h.comparison.AddByID(r.Context(), req.HospitalID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithComparison(w, http.StatusOK, hospitals)
}

// Remove handles DELETE /api/comparison/{id}
func (h *ComparisonHandler) Remove(w http.ResponseWriter, r *http.Request) {
	respondWithComparison(w, http.StatusOK, h.comparison.Remove(r.PathValue("id")))
}

// Clear handles DELETE /api/comparison
func (h *ComparisonHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.comparison.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Diff handles GET /api/comparison/diff?a=&b=
func (h *ComparisonHandler) Diff(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		respondWithError(w, http.StatusBadRequest, "a and b hospital IDs are required")
		return
	}

	l := loaders.For(r.Context())
	if l == nil {
		l = loaders.NewLoaders(h.provider)
	}
	thunkA := l.HospitalLoader.Load(r.Context(), a)
	thunkB := l.HospitalLoader.Load(r.Context(), b)

	first, err := thunkA()
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	second, err := thunkB()
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, services.CompareHospitals(first, second))
}

func respondWithComparison(w http.ResponseWriter, statusCode int, hospitals []*entities.Hospital) {
	respondWithJSON(w, statusCode, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
		"max":       entities.MaxComparisonSize,
	})
}
