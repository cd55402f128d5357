package providers

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// BookingSubmitter hands an accepted booking request to the external booking desk
type BookingSubmitter interface {
	Submit(ctx context.Context, form entities.BookingFormData) error
}
