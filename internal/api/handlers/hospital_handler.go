package handlers

import (
	"context"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
)

// HospitalSearcher runs a search through the filter and sort pipeline
type HospitalSearcher interface {
	Search(ctx context.Context, req services.SearchRequest) (*services.SearchResult, error)
}

// SlotFinder lists free booking slots
type SlotFinder interface {
	AvailableSlots(ctx context.Context, hospitalID, date string) ([]string, error)
}

// HospitalHandler handles hospital listing, search and profile requests
type HospitalHandler struct {
	searcher HospitalSearcher
	provider providers.HospitalProvider
	slots    SlotFinder
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(searcher HospitalSearcher, provider providers.HospitalProvider, slots SlotFinder) *HospitalHandler {
	return &HospitalHandler{
		searcher: searcher,
		provider: provider,
		slots:    slots,
	}
}

// ListHospitals returns every hospital through the filter and sort pipeline.
// treatment and location are ignored here.
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	req.Treatment, req.Location = "", ""
	h.search(w, r, req)
}

// SearchHospitals handles GET /api/hospitals/search
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	h.search(w, r, req)
}

func (h *HospitalHandler) search(w http.ResponseWriter, r *http.Request, req services.SearchRequest) {
	result, err := h.searcher.Search(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.provider.FetchHospitalByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hospital)
}

// GetAvailableSlots handles GET /api/hospitals/{id}/slots?date=YYYY-MM-DD
func (h *HospitalHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date is required")
		return
	}

	slots, err := h.slots.AvailableSlots(r.Context(), id, date)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospital_id": id,
		"date":        date,
		"slots":       slots,
	})
}
