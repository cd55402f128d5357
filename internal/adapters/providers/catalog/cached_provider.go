package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/observability"
	"github.com/rs/zerolog/log"
)

const catalogCacheKey = "catalog:hospitals:all"

// CachedProvider keeps the whole catalog in the cache and answers queries from it.
// Cache failures fall through to the wrapped provider.
type CachedProvider struct {
	provider providers.HospitalProvider
	cache    providers.CacheProvider
	ttl      time.Duration
	metrics  *observability.Metrics
}

// NewCachedProvider wraps provider with a catalog cache
func NewCachedProvider(provider providers.HospitalProvider, cache providers.CacheProvider, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics,
	}
}

func (p *CachedProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	hospitals, err := p.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return matchHospitals(hospitals, treatment, location), nil
}

func (p *CachedProvider) FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	hospitals, err := p.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return findHospital(hospitals, id)
}

// Warm reloads the catalog from the wrapped provider and overwrites the cache entry
func (p *CachedProvider) Warm(ctx context.Context) (int, error) {
	hospitals, err := p.provider.FetchHospitals(ctx, "", "")
	if err != nil {
		return 0, err
	}
	p.store(ctx, hospitals)
	return len(hospitals), nil
}

// Invalidate drops the cached catalog
func (p *CachedProvider) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, catalogCacheKey)
}

func (p *CachedProvider) catalog(ctx context.Context) ([]*entities.Hospital, error) {
	cached, err := p.cache.Get(ctx, catalogCacheKey)
	if err == nil {
		var hospitals []*entities.Hospital
		if err := json.Unmarshal(cached, &hospitals); err == nil {
			observability.RecordCacheHit(ctx, p.metrics, "catalog")
			return hospitals, nil
		}
		log.Warn().Err(err).Msg("Failed to unmarshal cached catalog")
	} else if !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Err(err).Msg("Catalog cache unavailable")
	}

	observability.RecordCacheMiss(ctx, p.metrics, "catalog")
	hospitals, err := p.provider.FetchHospitals(ctx, "", "")
	if err != nil {
		return nil, err
	}
	p.store(ctx, hospitals)
	return hospitals, nil
}

func (p *CachedProvider) store(ctx context.Context, hospitals []*entities.Hospital) {
	data, err := json.Marshal(hospitals)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal catalog for cache")
		return
	}
	if err := p.cache.Set(ctx, catalogCacheKey, data, p.ttl); err != nil {
		log.Warn().Err(err).Msg("Failed to cache catalog")
	}
}
