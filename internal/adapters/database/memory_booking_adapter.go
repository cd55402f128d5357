package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// MemoryBookingAdapter keeps bookings in process memory. It enforces the same
// one-active-booking-per-slot rule as the PostgreSQL unique index.
type MemoryBookingAdapter struct {
	mu       sync.RWMutex
	bookings map[string]*entities.Booking
}

// NewMemoryBookingAdapter creates an empty in-memory booking store
func NewMemoryBookingAdapter() repositories.BookingRepository {
	return &MemoryBookingAdapter{bookings: make(map[string]*entities.Booking)}
}

func (a *MemoryBookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.bookings[booking.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("booking with id %s already exists", booking.ID))
	}
	if booking.HoldsSlot() && a.slotTakenLocked(booking, "") {
		return apperrors.NewConflictError(fmt.Sprintf("time slot %s %s is already booked", booking.Date, booking.Time))
	}

	stored := *booking
	a.bookings[booking.ID] = &stored
	return nil
}

func (a *MemoryBookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	booking, ok := a.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	out := *booking
	return &out, nil
}

func (a *MemoryBookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	booking, ok := a.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	candidate := *booking
	candidate.Status = status
	if !booking.HoldsSlot() && candidate.HoldsSlot() && a.slotTakenLocked(&candidate, id) {
		return nil, apperrors.NewConflictError("time slot is already booked")
	}

	booking.Status = status
	booking.UpdatedAt = time.Now().UTC()
	out := *booking
	return &out, nil
}

func (a *MemoryBookingAdapter) ListByHospitalAndDate(ctx context.Context, hospitalID, date string) ([]*entities.Booking, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := []*entities.Booking{}
	for _, b := range a.bookings {
		if b.HospitalID == hospitalID && b.Date == date {
			out := *b
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (a *MemoryBookingAdapter) slotTakenLocked(booking *entities.Booking, ignoreID string) bool {
	for id, b := range a.bookings {
		if id == ignoreID {
			continue
		}
		if b.HospitalID == booking.HospitalID && b.Date == booking.Date && b.Time == booking.Time && b.HoldsSlot() {
			return true
		}
	}
	return false
}
