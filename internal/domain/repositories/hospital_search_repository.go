package repositories

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
)

// HospitalSearchRepository is a full-text index over hospitals (e.g. Typesense)
type HospitalSearchRepository interface {
	// SearchIDs returns IDs of hospitals matching the free-text treatment, best match first.
	// limit <= 0 returns every match.
	SearchIDs(ctx context.Context, treatment string, limit int) ([]string, error)

	// Index upserts hospitals into the index
	Index(ctx context.Context, hospitals []*entities.Hospital) error

	// Delete removes a hospital from the index
	Delete(ctx context.Context, id string) error
}
