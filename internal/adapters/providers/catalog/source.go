package catalog

import (
	"fmt"

	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/sheets"
	"github.com/carefinder/hospital-finder/pkg/config"
)

// NewFromConfig builds the provider named by cfg.Source
func NewFromConfig(cfg *config.CatalogConfig) (providers.HospitalProvider, error) {
	switch cfg.Source {
	case "mock":
		return NewMockProvider(), nil
	case "sheet":
		return NewSheetProvider(sheets.NewHTTPClient(cfg.SheetEndpoint, cfg.SheetTimeout)), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
