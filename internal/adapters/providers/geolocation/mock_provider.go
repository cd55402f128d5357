package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

type cityCoordinates struct {
	name   string
	coords entities.Coordinates
}

// Checked in order; the first city contained in the query wins.
var knownCities = []cityCoordinates{
	{"Chennai", entities.Coordinates{Latitude: 13.0827, Longitude: 80.2707}},
	{"New Delhi", entities.Coordinates{Latitude: 28.6139, Longitude: 77.2090}},
	{"Delhi", entities.Coordinates{Latitude: 28.7041, Longitude: 77.1025}},
	{"Gurgaon", entities.Coordinates{Latitude: 28.4595, Longitude: 77.0266}},
	{"Noida", entities.Coordinates{Latitude: 28.5355, Longitude: 77.3910}},
	{"Mumbai", entities.Coordinates{Latitude: 19.0760, Longitude: 72.8777}},
	{"Bangalore", entities.Coordinates{Latitude: 12.9716, Longitude: 77.5946}},
	{"Bengaluru", entities.Coordinates{Latitude: 12.9716, Longitude: 77.5946}},
	{"Kolkata", entities.Coordinates{Latitude: 22.5726, Longitude: 88.3639}},
	{"Hyderabad", entities.Coordinates{Latitude: 17.3850, Longitude: 78.4867}},
	{"Pune", entities.Coordinates{Latitude: 18.5204, Longitude: 73.8567}},
}

// MockGeolocationProvider resolves a fixed set of Indian cities without a network call
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts a place name to coordinates
func (m *MockGeolocationProvider) Geocode(ctx context.Context, place string) (*entities.Coordinates, error) {
	q := strings.ToLower(strings.TrimSpace(place))
	if q == "" {
		return nil, apperrors.NewValidationError("place is required")
	}

	for _, city := range knownCities {
		if strings.Contains(q, strings.ToLower(city.name)) {
			coords := city.coords
			return &coords, nil
		}
	}

	return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown place %q", place))
}
