package providers

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// EventBus publishes and subscribes to booking events
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe returns a channel that is closed when ctx ends or the bus closes.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	Close() error
}

const (
	// EventChannelBookings carries every booking event
	EventChannelBookings = "bookings:events"

	// EventChannelHospitalPrefix prefixes per-hospital booking channels
	EventChannelHospitalPrefix = "bookings:hospital:"
)

// HospitalBookingChannel returns the channel name for a specific hospital
func HospitalBookingChannel(hospitalID string) string {
	return EventChannelHospitalPrefix + hospitalID
}
