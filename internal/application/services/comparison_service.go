package services

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
)

// ComparisonStore is the process-wide comparison set shared by all handlers
type ComparisonStore struct {
	mu  sync.RWMutex
	set entities.ComparisonSet
}

func NewComparisonStore() *ComparisonStore {
	return &ComparisonStore{}
}

// Add puts h in the set. A full set yields a CONFLICT AppError wrapping
// entities.ErrComparisonFull; re-adding a member is a no-op.
func (s *ComparisonStore) Add(h *entities.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.set.Add(h); err != nil {
		return &apperrors.AppError{Type: apperrors.ErrorTypeConflict, Message: err.Error(), Err: err}
	}
	return nil
}

func (s *ComparisonStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Remove(id)
}

func (s *ComparisonStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Clear()
}

// List returns the members in insertion order
func (s *ComparisonStore) List() []*entities.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hospitals := s.set.Hospitals()
	if hospitals == nil {
		return []*entities.Hospital{}
	}
	return hospitals
}

func (s *ComparisonStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Contains(id)
}

// ComparisonService resolves hospital IDs against the catalog for the shared store
type ComparisonService struct {
	store    *ComparisonStore
	provider providers.HospitalProvider
}

func NewComparisonService(store *ComparisonStore, provider providers.HospitalProvider) *ComparisonService {
	return &ComparisonService{store: store, provider: provider}
}

// AddByID looks the hospital up and adds it to the comparison set
func (s *ComparisonService) AddByID(ctx context.Context, id string) ([]*entities.Hospital, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("hospital_id is required")
	}
	// skip the lookup for members; re-adding is a no-op anyway
	if !s.store.Contains(id) {
		h, err := s.provider.FetchHospitalByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.store.Add(h); err != nil {
			return nil, err
		}
	}
	return s.store.List(), nil
}

func (s *ComparisonService) Remove(id string) []*entities.Hospital {
	s.store.Remove(id)
	return s.store.List()
}

func (s *ComparisonService) Clear() {
	s.store.Clear()
}

func (s *ComparisonService) List() []*entities.Hospital {
	return s.store.List()
}

// CompareHospitals lists what two hospitals share and how far apart their price and rating are
func CompareHospitals(a, b *entities.Hospital) *entities.HospitalComparison {
	return &entities.HospitalComparison{
		Hospital1:        a,
		Hospital2:        b,
		CommonTreatments: intersect(a.Treatments, b.Treatments),
		CommonFacilities: intersect(a.Facilities, b.Facilities),
		PriceDifference:  math.Abs(a.Price - b.Price),
		RatingDifference: math.Abs(a.Rating - b.Rating),
	}
}

// intersect keeps the order of a
func intersect(a, b []string) []string {
	out := []string{}
	for _, v := range a {
		if slices.Contains(b, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
