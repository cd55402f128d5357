package entities

import (
	"fmt"
	"slices"
	"strings"
)

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the range, bounds included
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterOptions is the active price/rating/type predicate
type FilterOptions struct {
	PriceRange    PriceRange     `json:"price_range"`
	MinRating     float64        `json:"min_rating"`
	HospitalTypes []HospitalType `json:"hospital_types"`
}

// Accepts reports whether t is in the accepted type set
func (f FilterOptions) Accepts(t HospitalType) bool {
	return slices.Contains(f.HospitalTypes, t)
}

// FilterUpdate is a partial FilterOptions; nil fields are left unchanged
type FilterUpdate struct {
	PriceRange    *PriceRange
	MinRating     *float64
	HospitalTypes []HospitalType
}

// SortField selects the attribute to rank by
type SortField string

const (
	SortFieldPrice     SortField = "price"
	SortFieldRating    SortField = "rating"
	SortFieldDistance  SortField = "distance"
	SortFieldBestValue SortField = "best_value"
)

// SortDirection is ascending or descending
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortOption is the active ranking field and direction
type SortOption struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ParseSortOption reads "field" or "field:direction". A bare field gets its natural
// direction: ascending for price and distance, descending for rating and best value.
func ParseSortOption(s string) (SortOption, error) {
	fieldPart, dirPart, hasDir := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	var opt SortOption
	switch SortField(fieldPart) {
	case SortFieldPrice, SortFieldDistance:
		opt = SortOption{Field: SortField(fieldPart), Direction: SortAscending}
	case SortFieldRating, SortFieldBestValue:
		opt = SortOption{Field: SortField(fieldPart), Direction: SortDescending}
	default:
		return SortOption{}, fmt.Errorf("unknown sort field %q", fieldPart)
	}

	if hasDir {
		switch SortDirection(dirPart) {
		case SortAscending, SortDescending:
			opt.Direction = SortDirection(dirPart)
		default:
			return SortOption{}, fmt.Errorf("unknown sort direction %q", dirPart)
		}
	}
	return opt, nil
}

func (o SortOption) String() string {
	return string(o.Field) + ":" + string(o.Direction)
}

// Coordinates is a user's position for distance ranking
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
