package entities

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// BookingFormData is the appointment request submitted by a user.
// Date is YYYY-MM-DD, Time is HH:MM, Hospital is the hospital ID.
type BookingFormData struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Hospital  string `json:"hospital"`
	Treatment string `json:"treatment"`
}

// Booking is a stored appointment request
type Booking struct {
	ID           string        `json:"id" db:"id"`
	HospitalID   string        `json:"hospital_id" db:"hospital_id"`
	HospitalName string        `json:"hospital_name" db:"hospital_name"`
	Treatment    string        `json:"treatment" db:"treatment"`
	Date         string        `json:"date" db:"booking_date"`
	Time         string        `json:"time" db:"booking_time"`
	ScheduledAt  time.Time     `json:"scheduled_at" db:"scheduled_at"`
	PatientName  string        `json:"patient_name" db:"patient_name"`
	PatientPhone string        `json:"patient_phone" db:"patient_phone"`
	PatientEmail string        `json:"patient_email" db:"patient_email"`
	Status       BookingStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// HoldsSlot reports whether the booking occupies its hospital/date/time slot
func (b *Booking) HoldsSlot() bool {
	return b.Status != BookingStatusCancelled
}

// StandardTimeSlots are the bookable half-hour slots of a day
var StandardTimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}
