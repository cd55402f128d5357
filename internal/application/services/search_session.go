package services

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultPriceCeiling is the upper price bound when none is configured
const DefaultPriceCeiling = 100000.0

// DefaultSortOption ranks by rating, best first
var DefaultSortOption = entities.SortOption{Field: entities.SortFieldRating, Direction: entities.SortDescending}

// SearchSession holds the filter and sort state of one search. It is not safe for
// concurrent use; build one per request.
type SearchSession struct {
	ceiling      float64
	filters      entities.FilterOptions
	sort         entities.SortOption
	userLocation *entities.Coordinates
}

// NewSearchSession creates a session with default filters bounded by ceiling
func NewSearchSession(ceiling float64) *SearchSession {
	if ceiling <= 0 || math.IsNaN(ceiling) {
		ceiling = DefaultPriceCeiling
	}
	s := &SearchSession{ceiling: ceiling}
	s.Reset()
	return s
}

func (s *SearchSession) defaultFilters() entities.FilterOptions {
	return entities.FilterOptions{
		PriceRange:    entities.PriceRange{Min: 0, Max: s.ceiling},
		MinRating:     0,
		HospitalTypes: slices.Clone(entities.AllHospitalTypes),
	}
}

// Reset restores default filters and sort
func (s *SearchSession) Reset() {
	s.filters = s.defaultFilters()
	s.sort = DefaultSortOption
}

// ApplyFilters filters first and then sorts what is left
func (s *SearchSession) ApplyFilters(hospitals []*entities.Hospital) []*entities.Hospital {
	return SortHospitals(FilterHospitals(hospitals, s.filters), s.sort, s.userLocation)
}

// UpdateFilters merges a partial update. Price bounds are clamped to [0, ceiling]
// and swapped when inverted.
func (s *SearchSession) UpdateFilters(update entities.FilterUpdate) {
	if update.PriceRange != nil {
		lo := clamp(update.PriceRange.Min, 0, s.ceiling, 0)
		hi := clamp(update.PriceRange.Max, 0, s.ceiling, s.ceiling)
		if lo > hi {
			lo, hi = hi, lo
		}
		s.filters.PriceRange = entities.PriceRange{Min: lo, Max: hi}
	}
	if update.MinRating != nil && !math.IsNaN(*update.MinRating) {
		s.filters.MinRating = *update.MinRating
	}
	if update.HospitalTypes != nil {
		s.filters.HospitalTypes = slices.Clone(update.HospitalTypes)
	}
}

func clamp(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Min(math.Max(v, lo), hi)
}

// UpdateSort replaces the sort option
func (s *SearchSession) UpdateSort(opt entities.SortOption) {
	s.sort = opt
}

// SetUserLocation sets the reference point for distance ranking; nil clears it
func (s *SearchSession) SetUserLocation(loc *entities.Coordinates) {
	s.userLocation = loc
}

func (s *SearchSession) Filters() entities.FilterOptions {
	f := s.filters
	f.HospitalTypes = slices.Clone(s.filters.HospitalTypes)
	return f
}

func (s *SearchSession) Sort() entities.SortOption {
	return s.sort
}

func (s *SearchSession) UserLocation() *entities.Coordinates {
	return s.userLocation
}

// SearchRequest carries one search. Treatment and Location select from the catalog;
// the rest shapes the result.
type SearchRequest struct {
	Treatment    string
	Location     string
	Filters      entities.FilterUpdate
	Sort         *entities.SortOption
	UserLocation *entities.Coordinates
	// Near is geocoded into UserLocation when UserLocation is unset.
	Near string
}

// SearchResult is the filtered and ranked view of a search
type SearchResult struct {
	Hospitals    []*entities.Hospital   `json:"hospitals"`
	Count        int                    `json:"count"`
	Treatment    string                 `json:"treatment,omitempty"`
	Location     string                 `json:"location,omitempty"`
	Filters      entities.FilterOptions `json:"filters"`
	Sort         entities.SortOption    `json:"sort"`
	UserLocation *entities.Coordinates  `json:"user_location,omitempty"`
}

// SearchService runs the fetch, filter and sort pipeline
type SearchService struct {
	provider providers.HospitalProvider
	index    repositories.HospitalSearchRepository
	geocoder providers.GeolocationProvider
	ceiling  float64
	metrics  *observability.Metrics
}

// NewSearchService creates a search service. index and geocoder may be nil.
func NewSearchService(
	provider providers.HospitalProvider,
	index repositories.HospitalSearchRepository,
	geocoder providers.GeolocationProvider,
	ceiling float64,
	metrics *observability.Metrics,
) *SearchService {
	return &SearchService{
		provider: provider,
		index:    index,
		geocoder: geocoder,
		ceiling:  ceiling,
		metrics:  metrics,
	}
}

// Search loads matching hospitals and runs them through a fresh session
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("search.treatment", req.Treatment),
		attribute.String("search.location", req.Location),
	)

	session := NewSearchSession(s.ceiling)
	session.UpdateFilters(req.Filters)
	if req.Sort != nil {
		session.UpdateSort(*req.Sort)
	}

	userLocation, err := s.resolveUserLocation(ctx, req)
	if err != nil {
		return nil, err
	}
	session.SetUserLocation(userLocation)

	hospitals, err := s.fetch(ctx, req.Treatment, req.Location)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("failed to load hospitals", err)
	}

	ranked := session.ApplyFilters(hospitals)
	observability.RecordSearchResults(ctx, s.metrics, string(session.Sort().Field), len(ranked))

	return &SearchResult{
		Hospitals:    ranked,
		Count:        len(ranked),
		Treatment:    req.Treatment,
		Location:     req.Location,
		Filters:      session.Filters(),
		Sort:         session.Sort(),
		UserLocation: session.UserLocation(),
	}, nil
}

func (s *SearchService) resolveUserLocation(ctx context.Context, req SearchRequest) (*entities.Coordinates, error) {
	if req.UserLocation != nil || req.Near == "" {
		return req.UserLocation, nil
	}
	if s.geocoder == nil {
		return nil, apperrors.NewValidationError("near is not supported without a geocoder")
	}
	coords, err := s.geocoder.Geocode(ctx, req.Near)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("cannot locate %q", req.Near))
	}
	return coords, nil
}

// fetch prefers the text index for the treatment when one is configured. Location is
// always matched against the catalog, and index failures fall back to the provider.
func (s *SearchService) fetch(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	if s.index == nil || treatment == "" {
		return s.provider.FetchHospitals(ctx, treatment, location)
	}

	ids, err := s.index.SearchIDs(ctx, treatment, 0)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Search index unavailable, matching in catalog")
		return s.provider.FetchHospitals(ctx, treatment, location)
	}

	all, err := s.provider.FetchHospitals(ctx, "", "")
	if err != nil {
		return nil, err
	}
	matched := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		matched[id] = struct{}{}
	}
	result := make([]*entities.Hospital, 0, len(ids))
	for _, h := range all {
		if _, ok := matched[h.ID]; ok && h.InLocation(location) {
			result = append(result, h)
		}
	}
	return result, nil
}
