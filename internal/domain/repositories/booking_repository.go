package repositories

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create stores a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking, returning a NOT_FOUND AppError when absent
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// UpdateStatus changes a booking's status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error)

	// ListByHospitalAndDate returns every booking for a hospital on a date, any status
	ListByHospitalAndDate(ctx context.Context, hospitalID, date string) ([]*entities.Booking, error)
}
