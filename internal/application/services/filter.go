package services

import (
	"math"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

// FilterHospitals keeps, in order, the hospitals whose price lies in the inclusive range,
// whose rating is at least MinRating and whose type is accepted.
// Records with a non-numeric price or rating are dropped with a warning.
func FilterHospitals(hospitals []*entities.Hospital, opts entities.FilterOptions) []*entities.Hospital {
	result := make([]*entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h == nil {
			continue
		}
		if math.IsNaN(h.Price) || math.IsInf(h.Price, 0) {
			log.Warn().Str("hospital_id", h.ID).Msg("Excluding hospital with non-numeric price")
			continue
		}
		if !opts.PriceRange.Contains(h.Price) {
			continue
		}
		if math.IsNaN(h.Rating) {
			log.Warn().Str("hospital_id", h.ID).Msg("Excluding hospital with non-numeric rating")
			continue
		}
		if h.Rating < opts.MinRating {
			continue
		}
		if !opts.Accepts(h.Type) {
			continue
		}
		result = append(result, h)
	}
	return result
}
