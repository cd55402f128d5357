package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/carefinder/hospital-finder/internal/infrastructure/clients/sheets"
	apperrors "github.com/carefinder/hospital-finder/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultContact = "N/A"

// SheetProvider loads the catalog from the published sheet API on every call
type SheetProvider struct {
	client sheets.Client
}

// NewSheetProvider creates a provider backed by the sheet API
func NewSheetProvider(client sheets.Client) providers.HospitalProvider {
	return &SheetProvider{client: client}
}

func (p *SheetProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	hospitals, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return matchHospitals(hospitals, treatment, location), nil
}

func (p *SheetProvider) FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	hospitals, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return findHospital(hospitals, id)
}

func (p *SheetProvider) load(ctx context.Context) ([]*entities.Hospital, error) {
	rows, err := p.client.FetchRows(ctx)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch hospitals from sheet", err)
	}

	hospitals := make([]*entities.Hospital, 0, len(rows))
	for i, row := range rows {
		h, err := parseRow(row)
		if err != nil {
			log.Warn().Err(err).Int("row", i).Str("id", row.ID).Msg("Skipping invalid hospital row")
			continue
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}

func parseRow(row sheets.Row) (*entities.Hospital, error) {
	if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.Name) == "" {
		return nil, fmt.Errorf("missing id or name")
	}
	if strings.TrimSpace(row.Location) == "" {
		return nil, fmt.Errorf("missing location")
	}

	lat, err := parseNumber("Lat", row.Lat)
	if err != nil {
		return nil, err
	}
	lon, err := parseNumber("Long", row.Long)
	if err != nil {
		return nil, err
	}
	price, err := parseNumber("Price", row.Price)
	if err != nil {
		return nil, err
	}
	rating, err := parseNumber("Rating", row.Rating)
	if err != nil {
		return nil, err
	}

	hospitalType, ok := entities.ParseHospitalType(row.Type)
	if !ok {
		return nil, fmt.Errorf("unknown hospital type %q", row.Type)
	}

	address := strings.TrimSpace(row.Address)
	if address == "" {
		address = strings.TrimSpace(row.Location)
	}
	contact := strings.TrimSpace(row.Contact)
	if contact == "" {
		contact = defaultContact
	}

	return &entities.Hospital{
		ID:          strings.TrimSpace(row.ID),
		Name:        strings.TrimSpace(row.Name),
		Address:     address,
		City:        cityOf(row.Location),
		Type:        hospitalType,
		Rating:      rating,
		Price:       price,
		Treatments:  splitList(row.Treatment),
		Facilities:  splitList(row.Facilities),
		Contact:     contact,
		Email:       strings.TrimSpace(row.Email),
		Description: strings.TrimSpace(row.Description),
		BookingLink: strings.TrimSpace(row.BookingLink),
		Location:    &entities.Location{Latitude: lat, Longitude: lon},
	}, nil
}

func parseNumber(column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %s is not a number: %q", column, raw)
	}
	return v, nil
}

// cityOf takes the last comma separated part, so "Saket, New Delhi" yields "New Delhi"
func cityOf(location string) string {
	parts := strings.Split(location, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
