package providers

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// HospitalProvider supplies hospital records. Records are read-only to callers.
type HospitalProvider interface {
	// FetchHospitals returns hospitals matching the treatment and location filters.
	// Empty filters match every hospital.
	FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error)

	// FetchHospitalByID returns a NOT_FOUND AppError when no hospital has the ID.
	FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error)
}
