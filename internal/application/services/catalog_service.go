package services

import (
	"context"
	"sort"
	"strings"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// DefaultListLimit bounds the curated catalog lists
const DefaultListLimit = 5

// CatalogService answers browse queries over the whole catalog
type CatalogService struct {
	provider providers.HospitalProvider
}

func NewCatalogService(provider providers.HospitalProvider) *CatalogService {
	return &CatalogService{provider: provider}
}

// Treatments returns every distinct treatment, sorted
func (s *CatalogService) Treatments(ctx context.Context) ([]string, error) {
	hospitals, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(hospitals, func(h *entities.Hospital) []string { return h.Treatments }), nil
}

// Facilities returns every distinct facility, sorted
func (s *CatalogService) Facilities(ctx context.Context) ([]string, error) {
	hospitals, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(hospitals, func(h *entities.Hospital) []string { return h.Facilities }), nil
}

// TopRated returns the highest rated hospitals
func (s *CatalogService) TopRated(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	return s.ranked(ctx, entities.SortOption{Field: entities.SortFieldRating, Direction: entities.SortDescending}, limit)
}

// Affordable returns the cheapest hospitals
func (s *CatalogService) Affordable(ctx context.Context, limit int) ([]*entities.Hospital, error) {
	return s.ranked(ctx, entities.SortOption{Field: entities.SortFieldPrice, Direction: entities.SortAscending}, limit)
}

// Nearby returns hospitals whose city equals city, ignoring case, in catalog order
func (s *CatalogService) Nearby(ctx context.Context, city string, limit int) ([]*entities.Hospital, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("city is required")
	}
	hospitals, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	result := []*entities.Hospital{}
	for _, h := range hospitals {
		if strings.EqualFold(h.City, city) {
			result = append(result, h)
		}
	}
	return truncate(result, limit), nil
}

func (s *CatalogService) ranked(ctx context.Context, opt entities.SortOption, limit int) ([]*entities.Hospital, error) {
	hospitals, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return truncate(SortHospitals(hospitals, opt, nil), limit), nil
}

func (s *CatalogService) all(ctx context.Context) ([]*entities.Hospital, error) {
	hospitals, err := s.provider.FetchHospitals(ctx, "", "")
	if err != nil {
		return nil, apperrors.NewExternalError("failed to load hospitals", err)
	}
	return hospitals, nil
}

func distinct(hospitals []*entities.Hospital, values func(*entities.Hospital) []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, h := range hospitals {
		for _, v := range values(h) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func truncate(hospitals []*entities.Hospital, limit int) []*entities.Hospital {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(hospitals) > limit {
		return hospitals[:limit]
	}
	return hospitals
}
