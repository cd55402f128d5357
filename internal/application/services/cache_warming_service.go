package services

import (
	"context"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/rs/zerolog/log"
)

// CatalogWarmer refreshes a cached catalog, returning how many hospitals it loaded
type CatalogWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// CacheWarmingService keeps the catalog cache and the search index fresh
type CacheWarmingService struct {
	warmer   CatalogWarmer
	loader   func(ctx context.Context) ([]*entities.Hospital, error)
	index    repositories.HospitalSearchRepository
	interval time.Duration
}

// NewCacheWarmingService creates a warming service. index may be nil; loader is only
// needed when it is not.
func NewCacheWarmingService(
	warmer CatalogWarmer,
	loader func(ctx context.Context) ([]*entities.Hospital, error),
	index repositories.HospitalSearchRepository,
	interval time.Duration,
) *CacheWarmingService {
	return &CacheWarmingService{
		warmer:   warmer,
		loader:   loader,
		index:    index,
		interval: interval,
	}
}

// WarmCache reloads the catalog cache, then reindexes. Failures are logged, not returned,
// so one bad refresh never stops the loop.
func (s *CacheWarmingService) WarmCache(ctx context.Context) {
	start := time.Now()

	if s.warmer != nil {
		n, err := s.warmer.Warm(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to warm catalog cache")
		} else {
			log.Debug().Int("hospitals", n).Msg("Warmed catalog cache")
		}
	}

	if s.index != nil && s.loader != nil {
		hospitals, err := s.loader(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load catalog for indexing")
		} else if err := s.index.Index(ctx, hospitals); err != nil {
			log.Warn().Err(err).Msg("Failed to refresh search index")
		}
	}

	log.Debug().Dur("took", time.Since(start)).Msg("Cache warming completed")
}

// StartPeriodicWarming warms once and then on every tick until ctx ends
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context) {
	s.WarmCache(ctx)
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				s.WarmCache(ctx)
			}
		}
	}()
	log.Info().Dur("interval", s.interval).Msg("Started periodic cache warming")
}
