package entities

import (
	"errors"
	"slices"
)

// MaxComparisonSize is the number of hospitals that can be compared side by side
const MaxComparisonSize = 3

// ErrComparisonFull is returned when adding to a full comparison set
var ErrComparisonFull = errors.New("You can only compare up to 3 hospitals at a time")

// ComparisonSet is an ordered selection of at most MaxComparisonSize hospitals, unique by ID.
// The zero value is an empty set.
type ComparisonSet struct {
	hospitals []*Hospital
}

// Add appends h. Adding an ID already present is a no-op; adding to a full set
// returns ErrComparisonFull and leaves the set unchanged.
func (s *ComparisonSet) Add(h *Hospital) error {
	if len(s.hospitals) >= MaxComparisonSize {
		return ErrComparisonFull
	}
	if s.Contains(h.ID) {
		return nil
	}
	s.hospitals = append(s.hospitals, h)
	return nil
}

// Remove deletes the hospital with the given ID, if present
func (s *ComparisonSet) Remove(id string) {
	s.hospitals = slices.DeleteFunc(s.hospitals, func(h *Hospital) bool {
		return h.ID == id
	})
}

// Contains reports whether a hospital with the ID is in the set
func (s *ComparisonSet) Contains(id string) bool {
	return slices.ContainsFunc(s.hospitals, func(h *Hospital) bool {
		return h.ID == id
	})
}

// Clear empties the set
func (s *ComparisonSet) Clear() {
	s.hospitals = nil
}

// Len returns the number of hospitals in the set
func (s *ComparisonSet) Len() int {
	return len(s.hospitals)
}

// Hospitals returns a copy of the members in insertion order
func (s *ComparisonSet) Hospitals() []*Hospital {
	return slices.Clone(s.hospitals)
}

// HospitalComparison is the pairwise diff of two hospitals
type HospitalComparison struct {
	Hospital1        *Hospital `json:"hospital1"`
	Hospital2        *Hospital `json:"hospital2"`
	CommonTreatments []string  `json:"common_treatments"`
	CommonFacilities []string  `json:"common_facilities"`
	PriceDifference  float64   `json:"price_difference"`
	RatingDifference float64   `json:"rating_difference"`
}
