package services_test

import (
	"context"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

type MockHospitalProvider struct {
	mock.Mock
}

func (m *MockHospitalProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	args := m.Called(ctx, treatment, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

func (m *MockHospitalProvider) FetchHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hospital), args.Error(1)
}

type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) SearchIDs(ctx context.Context, treatment string, limit int) ([]string, error) {
	args := m.Called(ctx, treatment, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSearchIndex) Index(ctx context.Context, hospitals []*entities.Hospital) error {
	args := m.Called(ctx, hospitals)
	return args.Error(0)
}

func (m *MockSearchIndex) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, place string) (*entities.Coordinates, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coordinates), args.Error(1)
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, form entities.BookingFormData) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	args := m.Called(ctx, channel)
	return nil, args.Error(1)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}

type MockCatalogWarmer struct {
	mock.Mock
}

func (m *MockCatalogWarmer) Warm(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func hospital(id string, t entities.HospitalType, rating, price float64) *entities.Hospital {
	return &entities.Hospital{ID: id, Name: "Hospital " + id, Type: t, Rating: rating, Price: price}
}

func idsOf(hospitals []*entities.Hospital) []string {
	out := make([]string, len(hospitals))
	for i, h := range hospitals {
		out[i] = h.ID
	}
	return out
}
