package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// BookingManager submits and tracks appointment bookings
type BookingManager interface {
	Submit(ctx context.Context, form entities.BookingFormData) (*entities.Booking, error)
	Get(ctx context.Context, id string) (*entities.Booking, error)
	Cancel(ctx context.Context, id string) (*entities.Booking, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	bookings BookingManager
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings BookingManager) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var form entities.BookingFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.Submit(r.Context(), form)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}
