package routes

import (
	"net/http"

	"github.com/carefinder/hospital-finder/internal/api/handlers"
	"github.com/carefinder/hospital-finder/internal/api/loaders"
	"github.com/carefinder/hospital-finder/internal/api/middleware"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler   *handlers.HospitalHandler
	catalogHandler    *handlers.CatalogHandler
	comparisonHandler *handlers.ComparisonHandler
	bookingHandler    *handlers.BookingHandler

	provider       providers.HospitalProvider
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	catalogHandler *handlers.CatalogHandler,
	comparisonHandler *handlers.ComparisonHandler,
	bookingHandler *handlers.BookingHandler,
	provider providers.HospitalProvider,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		hospitalHandler:   hospitalHandler,
		catalogHandler:    catalogHandler,
		comparisonHandler: comparisonHandler,
		bookingHandler:    bookingHandler,
		provider:          provider,
		allowedOrigins:    allowedOrigins,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("GET /api/hospitals/{id}/slots", r.hospitalHandler.GetAvailableSlots)

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/catalog/treatments", r.catalogHandler.ListTreatments)
	r.mux.HandleFunc("GET /api/catalog/facilities", r.catalogHandler.ListFacilities)
	r.mux.HandleFunc("GET /api/catalog/top-rated", r.catalogHandler.TopRated)
	r.mux.HandleFunc("GET /api/catalog/affordable", r.catalogHandler.Affordable)
	r.mux.HandleFunc("GET /api/catalog/nearby", r.catalogHandler.Nearby)

	// Comparison endpoints
	r.mux.HandleFunc("GET /api/comparison", r.comparisonHandler.List)
	r.mux.HandleFunc("POST /api/comparison", r.comparisonHandler.Add)
	r.mux.HandleFunc("DELETE /api/comparison", r.comparisonHandler.Clear)
	r.mux.HandleFunc("GET /api/comparison/diff", r.comparisonHandler.Diff)
	r.mux.HandleFunc("DELETE /api/comparison/{id}", r.comparisonHandler.Remove)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.bookingHandler.GetBooking)
	r.mux.HandleFunc("POST /api/bookings/{id}/cancel", r.bookingHandler.CancelBooking)

	// Apply middleware, innermost first
	var handler http.Handler = r.mux
	handler = loaders.Middleware(r.provider)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
