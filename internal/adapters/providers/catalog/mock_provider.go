package catalog

import (
	"context"
	"fmt"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// MockProvider serves the built-in sample catalog
type MockProvider struct {
	hospitals []*entities.Hospital
}

// NewMockProvider creates a provider over the sample catalog
func NewMockProvider() providers.HospitalProvider {
	return &MockProvider{hospitals: sampleHospitals()}
}

// NewStaticProvider serves a fixed set of hospitals. Handy for tests and fixtures.
func NewStaticProvider(hospitals []*entities.Hospital) providers.HospitalProvider {
	return &MockProvider{hospitals: hospitals}
}

func (p *MockProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matchHospitals(p.hospitals, treatment, location), nil
}

func (p *MockProvider) FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	return findHospital(p.hospitals, id)
}

// matchHospitals returns copies of the hospitals matching both free-text filters
func matchHospitals(hospitals []*entities.Hospital, treatment, location string) []*entities.Hospital {
	result := make([]*entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h.OffersTreatment(treatment) && h.InLocation(location) {
			result = append(result, cloneHospital(h))
		}
	}
	return result
}

func findHospital(hospitals []*entities.Hospital, id string) (*entities.Hospital, error) {
	for _, h := range hospitals {
		if h.ID == id {
			return cloneHospital(h), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
}

func cloneHospital(h *entities.Hospital) *entities.Hospital {
	out := *h
	out.Treatments = append([]string(nil), h.Treatments...)
	out.Facilities = append([]string(nil), h.Facilities...)
	if h.Location != nil {
		loc := *h.Location
		out.Location = &loc
	}
	return &out
}
