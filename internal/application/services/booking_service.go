package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"github.com/google/uuid"
)

const (
	bookingDateLayout     = "2006-01-02"
	bookingDateTimeLayout = "2006-01-02 15:04"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// BookingService validates and records appointment requests
type BookingService struct {
	provider  providers.HospitalProvider
	repo      repositories.BookingRepository
	submitter providers.BookingSubmitter
	eventBus  providers.EventBus
	location  *time.Location
	now       func() time.Time
	metrics   *observability.Metrics
}

// BookingOption customizes a BookingService
type BookingOption func(*BookingService)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// WithEventBus publishes booking events to bus
func WithEventBus(bus providers.EventBus) BookingOption {
	return func(s *BookingService) { s.eventBus = bus }
}

// WithBookingMetrics records submission outcomes
func WithBookingMetrics(metrics *observability.Metrics) BookingOption {
	return func(s *BookingService) { s.metrics = metrics }
}

// NewBookingService creates a booking service. Dates and times are read in loc.
func NewBookingService(
	provider providers.HospitalProvider,
	repo repositories.BookingRepository,
	submitter providers.BookingSubmitter,
	loc *time.Location,
	opts ...BookingOption,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	s := &BookingService{
		provider:  provider,
		repo:      repo,
		submitter: submitter,
		location:  loc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateBookingForm checks required fields, email and phone formats and that the
// appointment lies strictly after now in loc. It returns the scheduled instant.
func ValidateBookingForm(form entities.BookingFormData, loc *time.Location, now time.Time) (time.Time, error) {
	if form.Name == "" || form.Phone == "" || form.Email == "" || form.Date == "" || form.Time == "" {
		return time.Time{}, apperrors.NewValidationError("Missing required booking information")
	}
	if !emailPattern.MatchString(form.Email) {
		return time.Time{}, apperrors.NewValidationError("Invalid email format")
	}
	if !phonePattern.MatchString(form.Phone) {
		return time.Time{}, apperrors.NewValidationError("Invalid phone number format")
	}

	scheduledAt, err := time.ParseInLocation(bookingDateTimeLayout, form.Date+" "+form.Time, loc)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Invalid booking date or time")
	}
	if !scheduledAt.After(now) {
		return time.Time{}, apperrors.NewValidationError("Booking date must be in the future")
	}
	return scheduledAt, nil
}

// Submit validates form, reserves the slot, stores the booking and hands it to the submitter
func (s *BookingService) Submit(ctx context.Context, form entities.BookingFormData) (*entities.Booking, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.Submit")
	defer span.End()

	booking, err := s.submit(ctx, trimForm(form))
	if err != nil {
		observability.RecordError(span, err)
		observability.RecordBooking(ctx, s.metrics, outcome(err))
		return nil, err
	}
	observability.RecordBooking(ctx, s.metrics, "accepted")
	return booking, nil
}

func (s *BookingService) submit(ctx context.Context, form entities.BookingFormData) (*entities.Booking, error) {
	scheduledAt, err := ValidateBookingForm(form, s.location, s.now())
	if err != nil {
		return nil, err
	}
	if form.Hospital == "" {
		return nil, apperrors.NewValidationError("hospital is required")
	}
	if !slices.Contains(entities.StandardTimeSlots, form.Time) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s is not a bookable time slot", form.Time))
	}

	hospital, err := s.provider.FetchHospitalByID(ctx, form.Hospital)
	if err != nil {
		return nil, err
	}

	available, err := s.IsSlotAvailable(ctx, hospital.ID, form.Date, form.Time)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.NewConflictError(fmt.Sprintf("time slot %s %s is already booked", form.Date, form.Time))
	}

	now := s.now().UTC()
	booking := &entities.Booking{
		ID:           uuid.New().String(),
		HospitalID:   hospital.ID,
		HospitalName: hospital.Name,
		Treatment:    form.Treatment,
		Date:         form.Date,
		Time:         form.Time,
		ScheduledAt:  scheduledAt,
		PatientName:  form.Name,
		PatientPhone: form.Phone,
		PatientEmail: form.Email,
		Status:       entities.BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.submitter.Submit(ctx, form); err != nil {
		// release the slot; the request never reached the hospital
		if _, cancelErr := s.repo.UpdateStatus(ctx, booking.ID, entities.BookingStatusCancelled); cancelErr != nil {
			observability.LoggerFromContext(ctx).Error().Err(cancelErr).Str("booking_id", booking.ID).Msg("Failed to release slot after submission error")
		}
		return nil, err
	}

	s.publish(ctx, booking, entities.BookingEventCreated)
	observability.LoggerFromContext(ctx).Info().
		Str("booking_id", booking.ID).
		Str("hospital_id", booking.HospitalID).
		Time("scheduled_at", booking.ScheduledAt).
		Msg("Booking created")
	return booking, nil
}

// IsSlotAvailable reports whether no active booking holds the hospital's slot
func (s *BookingService) IsSlotAvailable(ctx context.Context, hospitalID, date, slot string) (bool, error) {
	bookings, err := s.repo.ListByHospitalAndDate(ctx, hospitalID, date)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.Time == slot && b.HoldsSlot() {
			return false, nil
		}
	}
	return true, nil
}

// AvailableSlots lists the standard slots on date that are free and still in the future
func (s *BookingService) AvailableSlots(ctx context.Context, hospitalID, date string) ([]string, error) {
	if _, err := time.ParseInLocation(bookingDateLayout, date, s.location); err != nil {
		return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	if _, err := s.provider.FetchHospitalByID(ctx, hospitalID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByHospitalAndDate(ctx, hospitalID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.HoldsSlot() {
			taken[b.Time] = true
		}
	}

	now := s.now()
	slots := []string{}
	for _, slot := range entities.StandardTimeSlots {
		if taken[slot] {
			continue
		}
		at, err := time.ParseInLocation(bookingDateTimeLayout, date+" "+slot, s.location)
		if err != nil || !at.After(now) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*entities.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a booking to status and publishes the change
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid booking status %q", status))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated, entities.BookingEventStatusChanged)
	return updated, nil
}

// Cancel frees the booking's slot
func (s *BookingService) Cancel(ctx context.Context, id string) (*entities.Booking, error) {
	return s.UpdateStatus(ctx, id, entities.BookingStatusCancelled)
}

func (s *BookingService) publish(ctx context.Context, booking *entities.Booking, eventType entities.BookingEventType) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewBookingEvent(booking, eventType)
	for _, channel := range []string{providers.EventChannelBookings, providers.HospitalBookingChannel(booking.HospitalID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("channel", channel).Msg("Failed to publish booking event")
		}
	}
}

func trimForm(form entities.BookingFormData) entities.BookingFormData {
	return entities.BookingFormData{
		Name:      strings.TrimSpace(form.Name),
		Phone:     strings.TrimSpace(form.Phone),
		Email:     strings.TrimSpace(form.Email),
		Date:      strings.TrimSpace(form.Date),
		Time:      strings.TrimSpace(form.Time),
		Hospital:  strings.TrimSpace(form.Hospital),
		Treatment: strings.TrimSpace(form.Treatment),
	}
}

func outcome(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return strings.ToLower(string(appErr.Type))
	}
	return "error"
}
