package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/repositories"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/typesense"
	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	collectionName = typesense.HospitalsCollection
	queryFields    = "treatments,name"
	pageSize       = 250
)

// TypesenseAdapter implements HospitalSearchRepository
type TypesenseAdapter struct {
	client *typesense.Client
}

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *typesense.Client) repositories.HospitalSearchRepository {
	return &TypesenseAdapter{client: client}
}

// Index upserts hospitals into the collection
func (a *TypesenseAdapter) Index(ctx context.Context, hospitals []*entities.Hospital) error {
	documents := a.client.Client().Collection(collectionName).Documents()
	for _, h := range hospitals {
		if h == nil {
			continue
		}
		if _, err := documents.Upsert(ctx, hospitalDocument(h)); err != nil {
			return fmt.Errorf("failed to index hospital %s: %w", h.ID, err)
		}
	}
	log.Debug().Int("count", len(hospitals)).Msg("Indexed hospitals")
	return nil
}

// Delete removes a hospital from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete hospital %s from index: %w", id, err)
	}
	return nil
}

// SearchIDs runs a typo-tolerant treatment query and returns hospital IDs in relevance
// order, reading every page until limit IDs are collected. limit <= 0 means all matches.
// Location is not part of the query; callers match it against the catalog.
func (a *TypesenseAdapter) SearchIDs(ctx context.Context, treatment string, limit int) ([]string, error) {
	documents := a.client.Client().Collection(collectionName).Documents()
	ids, err := collectIDs(ctx, documents.Search, treatment, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}
	return ids, nil
}

type searchFunc func(ctx context.Context, params *api.SearchCollectionParams) (*api.SearchResult, error)

func collectIDs(ctx context.Context, search searchFunc, treatment string, limit int) ([]string, error) {
	ids := []string{}
	for page := 1; ; page++ {
		result, err := search(ctx, searchParams(treatment, page))
		if err != nil {
			return nil, err
		}
		if result.Hits == nil || len(*result.Hits) == 0 {
			return ids, nil
		}

		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := (*hit.Document)["id"].(string); ok {
				ids = append(ids, id)
				if limit > 0 && len(ids) >= limit {
					return ids, nil
				}
			}
		}

		if len(*result.Hits) < pageSize || (result.Found != nil && page*pageSize >= *result.Found) {
			return ids, nil
		}
	}
}

func searchParams(treatment string, page int) *api.SearchCollectionParams {
	q := strings.TrimSpace(treatment)
	if q == "" {
		q = "*"
	}
	return &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String(queryFields),
		// every query word must match
		DropTokensThreshold: pointer.Int(0),
		Page:                pointer.Int(page),
		PerPage:             pointer.Int(pageSize),
	}
}

func hospitalDocument(h *entities.Hospital) map[string]interface{} {
	doc := map[string]interface{}{
		"id":            h.ID,
		"name":          h.Name,
		"city":          h.City,
		"address":       h.Address,
		"hospital_type": string(h.Type),
		"treatments":    nonNil(h.Treatments),
		"facilities":    nonNil(h.Facilities),
		"price":         h.Price,
		"rating":        h.Rating,
	}
	if h.Location != nil {
		doc["location"] = []float64{h.Location.Latitude, h.Location.Longitude}
	}
	return doc
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
