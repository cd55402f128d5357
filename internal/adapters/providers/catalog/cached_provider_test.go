package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/carefinder/hospital-finder/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type countingProvider struct {
	providers.HospitalProvider
	calls int
}

func (c *countingProvider) FetchHospitals(ctx context.Context, treatment, location string) ([]*entities.Hospital, error) {
	c.calls++
	return c.HospitalProvider.FetchHospitals(ctx, treatment, location)
}

func TestCachedProvider_MissLoadsAndStores(t *testing.T) {
	inner := &countingProvider{HospitalProvider: NewMockProvider()}
	cache := new(MockCacheProvider)
	cache.On("Get", mock.Anything, catalogCacheKey).Return(nil, providers.ErrCacheMiss)
	cache.On("Set", mock.Anything, catalogCacheKey, mock.Anything, time.Minute).Return(nil)

	provider := NewCachedProvider(inner, cache, time.Minute, nil)
	hospitals, err := provider.FetchHospitals(context.Background(), "oncology", "mumbai")
	require.NoError(t, err)

	var got []string
	for _, h := range hospitals {
		got = append(got, h.ID)
	}
	assert.Equal(t, []string{"5", "10"}, got)
	assert.Equal(t, 1, inner.calls)
	cache.AssertExpectations(t)
}

func TestCachedProvider_HitSkipsProvider(t *testing.T) {
	payload, err := json.Marshal([]*entities.Hospital{{ID: "42", Name: "Cached Clinic", Type: entities.HospitalTypeClinic}})
	require.NoError(t, err)

	inner := &countingProvider{HospitalProvider: NewMockProvider()}
	cache := new(MockCacheProvider)
	cache.On("Get", mock.Anything, catalogCacheKey).Return(payload, nil)

	provider := NewCachedProvider(inner, cache, time.Minute, nil)
	h, err := provider.FetchHospitalByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Cached Clinic", h.Name)
	assert.Equal(t, 0, inner.calls)
}

func TestCachedProvider_CacheDownFallsThrough(t *testing.T) {
	inner := &countingProvider{HospitalProvider: NewMockProvider()}
	cache := new(MockCacheProvider)
	cache.On("Get", mock.Anything, catalogCacheKey).Return(nil, errors.New("connection refused"))
	cache.On("Set", mock.Anything, catalogCacheKey, mock.Anything, time.Minute).Return(errors.New("connection refused"))

	provider := NewCachedProvider(inner, cache, time.Minute, nil)
	hospitals, err := provider.FetchHospitals(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, hospitals, 10)
}

func TestCachedProvider_Warm(t *testing.T) {
	cache := new(MockCacheProvider)
	cache.On("Set", mock.Anything, catalogCacheKey, mock.Anything, 5*time.Minute).Return(nil)

	n, err := NewCachedProvider(NewMockProvider(), cache, 5*time.Minute, nil).Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	cache.AssertExpectations(t)
}
