package handlers

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// parseSearchRequest reads the URL-encoded search state:
// treatment, location, min_price, max_price, min_rating, type, sort, lat, lon, near.
func parseSearchRequest(r *http.Request) (services.SearchRequest, error) {
	q := r.URL.Query()
	req := services.SearchRequest{
		Treatment: strings.TrimSpace(q.Get("treatment")),
		Location:  strings.TrimSpace(q.Get("location")),
		Near:      strings.TrimSpace(q.Get("near")),
	}

	if q.Has("min_price") || q.Has("max_price") {
		lo, err := optionalFloat(q, "min_price")
		if err != nil {
			return req, err
		}
		hi, err := optionalFloat(q, "max_price")
		if err != nil {
			return req, err
		}
		req.Filters.PriceRange = &entities.PriceRange{Min: lo, Max: hi}
	}

	if q.Has("min_rating") {
		rating, err := optionalFloat(q, "min_rating")
		if err != nil {
			return req, err
		}
		req.Filters.MinRating = &rating
	}

	if values, ok := q["type"]; ok {
		types := []entities.HospitalType{}
		for _, v := range values {
			for _, name := range strings.Split(v, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				t, ok := entities.ParseHospitalType(name)
				if !ok {
					return req, apperrors.NewValidationError(fmt.Sprintf("unknown hospital type %q", name))
				}
				types = append(types, t)
			}
		}
		if len(types) > 0 {
			req.Filters.HospitalTypes = types
		}
	}

	if s := q.Get("sort"); s != "" {
		opt, err := entities.ParseSortOption(s)
		if err != nil {
			return req, apperrors.NewValidationError(err.Error())
		}
		req.Sort = &opt
	}

	if q.Has("lat") || q.Has("lon") {
		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		if err != nil {
			return req, apperrors.NewValidationError("lat and lon must both be numbers")
		}
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		if err != nil {
			return req, apperrors.NewValidationError("lat and lon must both be numbers")
		}
		req.UserLocation = &entities.Coordinates{Latitude: lat, Longitude: lon}
	}

	return req, nil
}

// optionalFloat returns NaN for a missing or empty parameter
func optionalFloat(q url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a number", key))
	}
	return v, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperrors.NewValidationError("limit must be a non-negative integer")
	}
	return limit, nil
}
