package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/carefinder/hospital-finder/pkg/config"
	"github.com/carefinder/hospital-finder/pkg/retry"
	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	HospitalsCollection = "hospitals"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(ctx context.Context, cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(ctx, retry.DefaultConfig(), "Typesense",
		func() error {
			healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_, err := client.Health(healthCtx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// HospitalSchema is the collection layout the search adapter indexes into
func HospitalSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: HospitalsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "address", Type: "string"},
			{Name: "hospital_type", Type: "string", Facet: pointer.True()},
			{Name: "treatments", Type: "string[]", Facet: pointer.True()},
			{Name: "facilities", Type: "string[]", Optional: pointer.True()},
			{Name: "price", Type: "float"},
			{Name: "rating", Type: "float"},
			{Name: "location", Type: "geopoint", Optional: pointer.True()},
		},
		DefaultSortingField: pointer.String("rating"),
	}
}

// InitSchema ensures the hospitals collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == HospitalsCollection {
			log.Debug().Str("collection", HospitalsCollection).Msg("Typesense collection already exists")
			return nil
		}
	}

	if _, err := c.client.Collections().Create(ctx, HospitalSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", HospitalsCollection).Msg("Created Typesense collection")
	return nil
}
