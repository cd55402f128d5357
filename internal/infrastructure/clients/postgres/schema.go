package postgres

import (
	"context"
	"fmt"
)

const bookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id            TEXT PRIMARY KEY,
	hospital_id   TEXT NOT NULL,
	hospital_name TEXT NOT NULL DEFAULT '',
	treatment     TEXT NOT NULL DEFAULT '',
	booking_date  TEXT NOT NULL,
	booking_time  TEXT NOT NULL,
	scheduled_at  TIMESTAMPTZ NOT NULL,
	patient_name  TEXT NOT NULL,
	patient_phone TEXT NOT NULL,
	patient_email TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_hospital_date ON bookings (hospital_id, booking_date);
CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_active_slot ON bookings (hospital_id, booking_date, booking_time)
	WHERE status <> 'cancelled';
`

// EnsureSchema creates the bookings table when it is missing
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, bookingsSchema); err != nil {
		return fmt.Errorf("failed to create bookings schema: %w", err)
	}
	return nil
}
