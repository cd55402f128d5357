package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/pkg/geo"
	"github.com/rs/zerolog/log"
)

type rankKey struct {
	hospital *entities.Hospital
	value    float64
	rating   float64
	valid    bool
}

// SortHospitals returns a new slice ordered by opt. The input slice is never reordered.
//
// Distance ranking needs a user location with both coordinates non-zero; without one the
// order is left unchanged. When either side of a comparison has no valid distance, that
// pair is ordered by rating, highest first. Equal keys keep their input order.
//
// If ranking fails on malformed records the input order is returned and a warning logged.
func SortHospitals(hospitals []*entities.Hospital, opt entities.SortOption, userLocation *entities.Coordinates) (sorted []*entities.Hospital) {
	sorted = make([]*entities.Hospital, len(hospitals))
	copy(sorted, hospitals)

	if opt.Field == entities.SortFieldDistance && !hasUserLocation(userLocation) {
		return sorted
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("sort", opt.String()).Interface("panic", r).Msg("Failed to sort hospitals, returning original order")
			sorted = make([]*entities.Hospital, len(hospitals))
			copy(sorted, hospitals)
		}
	}()

	keys, err := rankKeys(hospitals, opt, userLocation)
	if err != nil {
		panic(err)
	}

	desc := opt.Direction == entities.SortDescending
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if !a.valid || !b.valid {
			return a.rating > b.rating
		}
		if desc {
			return a.value > b.value
		}
		return a.value < b.value
	})

	for i, k := range keys {
		sorted[i] = k.hospital
	}
	return sorted
}

func hasUserLocation(loc *entities.Coordinates) bool {
	return loc != nil && loc.Latitude != 0 && loc.Longitude != 0
}

func rankKeys(hospitals []*entities.Hospital, opt entities.SortOption, userLocation *entities.Coordinates) ([]rankKey, error) {
	keys := make([]rankKey, len(hospitals))
	warned := false
	sanitize := func(h *entities.Hospital, field string, v float64) float64 {
		if math.IsNaN(v) {
			if !warned {
				log.Warn().Str("hospital_id", h.ID).Str("field", field).Msg("Non-numeric value ranked as 0")
				warned = true
			}
			return 0
		}
		return v
	}

	for i, h := range hospitals {
		if h == nil {
			return nil, fmt.Errorf("nil hospital at index %d", i)
		}
		k := rankKey{hospital: h, rating: sanitize(h, "rating", h.Rating), valid: true}

		switch opt.Field {
		case entities.SortFieldPrice:
			k.value = sanitize(h, "price", h.Price)
		case entities.SortFieldRating:
			k.value = k.rating
		case entities.SortFieldBestValue:
			k.value = bestValue(k.rating, sanitize(h, "price", h.Price))
		case entities.SortFieldDistance:
			k.value, k.valid = distanceFrom(userLocation, h)
		default:
			return nil, fmt.Errorf("unknown sort field %q", opt.Field)
		}
		keys[i] = k
	}
	return keys, nil
}

// bestValue is rating per unit price; free or negatively priced records score 0
func bestValue(rating, price float64) float64 {
	if price <= 0 || math.IsInf(price, 0) {
		return 0
	}
	return rating / price
}

func distanceFrom(user *entities.Coordinates, h *entities.Hospital) (float64, bool) {
	if h.Location == nil {
		return 0, false
	}
	r := geo.Distance(user.Latitude, user.Longitude, h.Location.Latitude, h.Location.Longitude)
	return r.DistanceKm, r.IsValid
}
