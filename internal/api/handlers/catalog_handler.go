package handlers

import (
	"context"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// CatalogReader answers the catalog browsing queries
type CatalogReader interface {
	Treatments(ctx context.Context) ([]string, error)
	Facilities(ctx context.Context) ([]string, error)
	TopRated(ctx context.Context, limit int) ([]*entities.Hospital, error)
	Affordable(ctx context.Context, limit int) ([]*entities.Hospital, error)
	Nearby(ctx context.Context, city string, limit int) ([]*entities.Hospital, error)
}

type CatalogHandler struct {
	catalog CatalogReader
}

func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.catalog.Treatments(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"treatments": treatments})
}

func (h *CatalogHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.catalog.Facilities(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"facilities": facilities})
}

func (h *CatalogHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.catalog.TopRated)
}

func (h *CatalogHandler) Affordable(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.catalog.Affordable)
}

// Nearby handles GET /api/catalog/nearby?city=
func (h *CatalogHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	h.list(w, r, func(ctx context.Context, limit int) ([]*entities.Hospital, error) {
		return h.catalog.Nearby(ctx, city, limit)
	})
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context, int) ([]*entities.Hospital, error)) {
	limit, err := parseLimit(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	hospitals, err := fetch(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}
