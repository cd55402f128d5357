package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/postgres"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
)

const bookingsTable = "bookings"

// pq code for unique_violation; the active-slot index raises it on double booking.
const uniqueViolation = "23505"

var bookingColumns = []interface{}{
	"id", "hospital_id", "hospital_name", "treatment", "booking_date", "booking_time",
	"scheduled_at", "patient_name", "patient_phone", "patient_email",
	"status", "created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":            booking.ID,
		"hospital_id":   booking.HospitalID,
		"hospital_name": booking.HospitalName,
		"treatment":     booking.Treatment,
		"booking_date":  booking.Date,
		"booking_time":  booking.Time,
		"scheduled_at":  booking.ScheduledAt,
		"patient_name":  booking.PatientName,
		"patient_phone": booking.PatientPhone,
		"patient_email": booking.PatientEmail,
		"status":        string(booking.Status),
		"created_at":    booking.CreatedAt,
		"updated_at":    booking.UpdatedAt,
	}

	query, args, err := a.db.Insert(bookingsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError(fmt.Sprintf("time slot %s %s is already booked", booking.Date, booking.Time))
		}
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// UpdateStatus changes the status of a booking and returns the updated row
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	query, args, err := a.db.Update(bookingsTable).
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		Returning(bookingColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, apperrors.NewConflictError("time slot is already booked")
		}
		return nil, apperrors.NewInternalError("failed to update booking", err)
	}
	return booking, nil
}

// ListByHospitalAndDate returns the bookings of one hospital on one day, ordered by time
func (a *BookingAdapter) ListByHospitalAndDate(ctx context.Context, hospitalID, date string) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(goqu.Ex{"hospital_id": hospitalID, "booking_date": date}).
		Order(goqu.I("booking_time").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var status string
	err := row.Scan(
		&booking.ID,
		&booking.HospitalID,
		&booking.HospitalName,
		&booking.Treatment,
		&booking.Date,
		&booking.Time,
		&booking.ScheduledAt,
		&booking.PatientName,
		&booking.PatientPhone,
		&booking.PatientEmail,
		&status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Status = entities.BookingStatus(status)
	return booking, nil
}
