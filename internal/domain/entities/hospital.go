package entities

import "strings"

// HospitalType is the ownership category of a facility
type HospitalType string

const (
	HospitalTypeGovernment HospitalType = "Government"
	HospitalTypePrivate    HospitalType = "Private"
	HospitalTypeClinic     HospitalType = "Clinic"
)

// AllHospitalTypes lists every ownership category accepted by filters
var AllHospitalTypes = []HospitalType{
	HospitalTypeGovernment,
	HospitalTypePrivate,
	HospitalTypeClinic,
}

// ParseHospitalType matches a type name case-insensitively
func ParseHospitalType(s string) (HospitalType, bool) {
	for _, t := range AllHospitalTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Hospital represents one facility's directory entry
type Hospital struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	Type        HospitalType `json:"type"`
	Rating      float64      `json:"rating"`
	Price       float64      `json:"price"`
	Treatments  []string     `json:"treatments"`
	Facilities  []string     `json:"facilities,omitempty"`
	Contact     string       `json:"contact,omitempty"`
	Email       string       `json:"email,omitempty"`
	Description string       `json:"description,omitempty"`
	BookingLink string       `json:"booking_link,omitempty"`
	Location    *Location    `json:"location,omitempty"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OffersTreatment reports whether any listed treatment contains query, ignoring case.
func (h *Hospital) OffersTreatment(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, t := range h.Treatments {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// InLocation reports whether the city or address contains query, ignoring case.
func (h *Hospital) InLocation(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(h.City), q) ||
		strings.Contains(strings.ToLower(h.Address), q)
}

// TreatmentSummary is the display string for the treatments list
func (h *Hospital) TreatmentSummary() string {
	if len(h.Treatments) == 0 {
		return "No treatments listed"
	}
	return strings.Join(h.Treatments, ", ")
}
