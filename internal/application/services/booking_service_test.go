package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carefinder/hospital-finder/internal/adapters/database"
	"github.com/carefinder/hospital-finder/internal/adapters/providers/catalog"
	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ist     = time.FixedZone("IST", 5*3600+1800)
	fixedAt = time.Date(2030, 1, 1, 12, 0, 0, 0, ist)
)

func validForm() entities.BookingFormData {
	return entities.BookingFormData{
		Name:      "Asha Rao",
		Phone:     "+91 98765-43210",
		Email:     "asha@example.com",
		Date:      "2030-01-02",
		Time:      "10:00",
		Hospital:  "1",
		Treatment: "Cardiology",
	}
}

type bookingFixture struct {
	svc       *services.BookingService
	submitter *MockSubmitter
	bus       *MockEventBus
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()
	submitter := new(MockSubmitter)
	bus := new(MockEventBus)
	svc := services.NewBookingService(
		catalog.NewMockProvider(),
		database.NewMemoryBookingAdapter(),
		submitter,
		ist,
		services.WithClock(func() time.Time { return fixedAt }),
		services.WithEventBus(bus),
	)
	return bookingFixture{svc: svc, submitter: submitter, bus: bus}
}

func TestValidateBookingForm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *entities.BookingFormData)
		message string
	}{
		{"missing name", func(f *entities.BookingFormData) { f.Name = "" }, "Missing required booking information"},
		{"missing time", func(f *entities.BookingFormData) { f.Time = "" }, "Missing required booking information"},
		{"bad email", func(f *entities.BookingFormData) { f.Email = "asha@example" }, "Invalid email format"},
		{"email with space", func(f *entities.BookingFormData) { f.Email = "as ha@example.com" }, "Invalid email format"},
		{"short phone", func(f *entities.BookingFormData) { f.Phone = "12345" }, "Invalid phone number format"},
		{"letters in phone", func(f *entities.BookingFormData) { f.Phone = "98765abcde1" }, "Invalid phone number format"},
		{"bad date", func(f *entities.BookingFormData) { f.Date = "02/01/2030" }, "Invalid booking date or time"},
		{"past", func(f *entities.BookingFormData) { f.Date = "2029-12-31" }, "Booking date must be in the future"},
		{"exactly now", func(f *entities.BookingFormData) {
			f.Date = "2030-01-01"
			f.Time = "12:00"
		}, "Booking date must be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := services.ValidateBookingForm(form, ist, fixedAt)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestValidateBookingForm_UsesConfiguredZone(t *testing.T) {
	form := validForm()
	form.Date = "2030-01-01"
	form.Time = "12:30"

	at, err := services.ValidateBookingForm(form, ist, fixedAt)
	require.NoError(t, err)
	assert.Equal(t, fixedAt.Add(30*time.Minute).UTC(), at.UTC())

	// 06:00 UTC is 11:30 IST, half an hour before the clock
	form.Time = "06:00"
	_, err = services.ValidateBookingForm(form, time.UTC, fixedAt)
	assert.Error(t, err)
}

func TestBookingService_Submit(t *testing.T) {
	f := newBookingFixture(t)
	f.submitter.On("Submit", mock.Anything, validForm()).Return(nil)
	f.bus.On("Publish", mock.Anything, providers.EventChannelBookings, mock.Anything).Return(nil)
	f.bus.On("Publish", mock.Anything, providers.HospitalBookingChannel("1"), mock.Anything).Return(errors.New("redis down"))

	booking, err := f.svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "Apollo Hospital", booking.HospitalName)
	assert.Equal(t, entities.BookingStatusPending, booking.Status)
	assert.True(t, booking.ScheduledAt.Equal(time.Date(2030, 1, 2, 10, 0, 0, 0, ist)))

	stored, err := f.svc.Get(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)

	f.submitter.AssertExpectations(t)
	f.bus.AssertExpectations(t)
}

func TestBookingService_SubmitInvalidNeverSubmits(t *testing.T) {
	f := newBookingFixture(t)
	form := validForm()
	form.Email = "nope"

	_, err := f.svc.Submit(context.Background(), form)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestBookingService_SubmitRules(t *testing.T) {
	f := newBookingFixture(t)

	form := validForm()
	form.Time = "13:15"
	_, err := f.svc.Submit(context.Background(), form)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "non-standard slot")

	form = validForm()
	form.Hospital = "404"
	_, err = f.svc.Submit(context.Background(), form)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound), "unknown hospital")

	form = validForm()
	form.Hospital = ""
	_, err = f.svc.Submit(context.Background(), form)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "missing hospital")
}

func TestBookingService_SlotConflictAndRelease(t *testing.T) {
	f := newBookingFixture(t)
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, validForm())
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, validForm())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	cancelled, err := f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusCancelled, cancelled.Status)

	_, err = f.svc.Submit(ctx, validForm())
	assert.NoError(t, err)
}

func TestBookingService_SubmitterFailureReleasesSlot(t *testing.T) {
	f := newBookingFixture(t)
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(apperrors.NewExternalError("failed to submit booking", errors.New("503"))).Once()
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, validForm())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	ok, err := f.svc.IsSlotAvailable(ctx, "1", "2030-01-02", "10:00")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.svc.Submit(ctx, validForm())
	assert.NoError(t, err)
}

func TestBookingService_AvailableSlots(t *testing.T) {
	f := newBookingFixture(t)
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	slots, err := f.svc.AvailableSlots(ctx, "1", "2030-01-02")
	require.NoError(t, err)
	assert.Equal(t, entities.StandardTimeSlots, slots)

	_, err = f.svc.Submit(ctx, validForm())
	require.NoError(t, err)
	slots, err = f.svc.AvailableSlots(ctx, "1", "2030-01-02")
	require.NoError(t, err)
	assert.Len(t, slots, len(entities.StandardTimeSlots)-1)
	assert.NotContains(t, slots, "10:00")

	// it is 12:00 on the 1st; morning slots are gone
	today, err := f.svc.AvailableSlots(ctx, "1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, "12:30", today[0])

	_, err = f.svc.AvailableSlots(ctx, "1", "tomorrow")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	_, err = f.svc.AvailableSlots(ctx, "404", "2030-01-02")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	f := newBookingFixture(t)
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	booking, err := f.svc.Submit(ctx, validForm())
	require.NoError(t, err)

	confirmed, err := f.svc.UpdateStatus(ctx, booking.ID, entities.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusConfirmed, confirmed.Status)

	_, err = f.svc.UpdateStatus(ctx, booking.ID, "archived")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = f.svc.Cancel(ctx, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	f.bus.AssertCalled(t, "Publish", mock.Anything, providers.EventChannelBookings, mock.MatchedBy(func(e *entities.BookingEvent) bool {
		return e.EventType == entities.BookingEventStatusChanged && e.Status == entities.BookingStatusConfirmed
	}))
}
