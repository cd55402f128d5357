// Package geo computes great-circle distances for proximity ranking.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0

	// MaxDistanceKm caps reported distances. Anything farther is treated as equally far.
	MaxDistanceKm = 100.0
)

// Result is the outcome of a distance calculation.
// IsValid is false when any input coordinate was out of range or not finite.
type Result struct {
	DistanceKm float64
	IsValid    bool
}

// Distance returns the Haversine distance in kilometres between two points,
// clamped to MaxDistanceKm. It never panics; invalid input yields Result{0, false}.
func Distance(lat1, lon1, lat2, lon2 float64) Result {
	if !ValidCoordinate(lat1, lon1) || !ValidCoordinate(lat2, lon2) {
		return Result{}
	}

	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	d := EarthRadiusKm * c

	if d > MaxDistanceKm {
		d = MaxDistanceKm
	}
	return Result{DistanceKm: d, IsValid: true}
}

// ValidCoordinate reports whether lat/lon are finite and inside [-90,90] / [-180,180].
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
