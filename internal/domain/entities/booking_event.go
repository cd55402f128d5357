package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking event
type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "booking_created"
	BookingEventStatusChanged BookingEventType = "booking_status_changed"
)

// BookingEvent is published whenever a booking is created or changes status
type BookingEvent struct {
	ID         string           `json:"id"`
	BookingID  string           `json:"booking_id"`
	HospitalID string           `json:"hospital_id"`
	EventType  BookingEventType `json:"event_type"`
	Status     BookingStatus    `json:"status"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewBookingEvent creates a new booking event
func NewBookingEvent(booking *Booking, eventType BookingEventType) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		HospitalID: booking.HospitalID,
		EventType:  eventType,
		Status:     booking.Status,
		Date:       booking.Date,
		Time:       booking.Time,
		Timestamp:  time.Now(),
	}
}
