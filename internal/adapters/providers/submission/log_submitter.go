package submission

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
)

// LogSubmitter records bookings in the application log only
type LogSubmitter struct{}

func NewLogSubmitter() providers.BookingSubmitter {
	return &LogSubmitter{}
}

func (s *LogSubmitter) Submit(ctx context.Context, form entities.BookingFormData) error {
	observability.LoggerFromContext(ctx).Info().
		Str("hospital", form.Hospital).
		Str("date", form.Date).
		Str("time", form.Time).
		Str("treatment", form.Treatment).
		Msg("Booking request recorded")
	return nil
}
