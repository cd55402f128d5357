package providers

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// GeolocationProvider turns place names into coordinates
type GeolocationProvider interface {
	// Geocode returns a NOT_FOUND AppError for places it cannot resolve.
	Geocode(ctx context.Context, place string) (*entities.Coordinates, error)
}
