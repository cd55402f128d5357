package submission

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/sheets"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// SheetSubmitter forwards accepted bookings to the sheet API's booking endpoint
type SheetSubmitter struct {
	client sheets.Client
}

// NewSheetSubmitter creates a submitter backed by the sheet API
func NewSheetSubmitter(client sheets.Client) providers.BookingSubmitter {
	return &SheetSubmitter{client: client}
}

func (s *SheetSubmitter) Submit(ctx context.Context, form entities.BookingFormData) error {
	err := s.client.SubmitBooking(ctx, sheets.BookingRequest{
		Name:      form.Name,
		Phone:     form.Phone,
		Email:     form.Email,
		Date:      form.Date,
		Time:      form.Time,
		Hospital:  form.Hospital,
		Treatment: form.Treatment,
	})
	if err != nil {
		return apperrors.NewExternalError("failed to submit booking", err)
	}
	return nil
}
