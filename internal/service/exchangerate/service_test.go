package exchangerate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rateRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/exchangerate"
	"github.com/m04kA/SMC-RentalService/internal/integrations/fxapi"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, tenantID string, day types.Date) (float64, bool, error) {
	args := m.Called(ctx, tenantID, day)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, tenantID string, day types.Date, rate float64, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, day, rate, ttl)
	return args.Error(0)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Get(ctx context.Context, tenantID string, day types.Date) (float64, error) {
	args := m.Called(ctx, tenantID, day)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, tenantID string, day types.Date, rate float64) error {
	args := m.Called(ctx, tenantID, day, rate)
	return args.Error(0)
}

type mockAPI struct{ mock.Mock }

func (m *mockAPI) GetRate(ctx context.Context, day types.Date) (float64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(float64), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	ctx   = context.Background()
	today = types.MustParseDate("2025-06-16") // monday
	opts  = Options{HistoricalTTL: 24 * time.Hour, TodayTTL: time.Hour, LookbackDays: 3}
)

func newTestProvider(cache Cache, repo Repository, api APIClient) *Provider {
	p := NewProvider(cache, repo, api, opts, nil, logger.NewNop())
	p.timeProvider = fixedTime{now: time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)}
	return p
}

func TestProvider_CacheHit(t *testing.T) {
	cache, repo, api := new(mockCache), new(mockRepo), new(mockAPI)
	day := types.MustParseDate("2025-06-10")
	cache.On("Get", ctx, "t1", day).Return(930.0, true, nil)

	rate, err := newTestProvider(cache, repo, api).RateFor(ctx, "t1", day)
	require.NoError(t, err)
	assert.Equal(t, 930.0, rate)

	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything)
}

func TestProvider_DatabaseHitIsCached(t *testing.T) {
	cache, repo, api := new(mockCache), new(mockRepo), new(mockAPI)
	day := types.MustParseDate("2025-06-10")
	cache.On("Get", ctx, "t1", day).Return(0.0, false, nil)
	repo.On("Get", ctx, "t1", day).Return(925.0, nil)
	cache.On("Set", ctx, "t1", day, 925.0, 24*time.Hour).Return(nil)

	rate, err := newTestProvider(cache, repo, api).RateFor(ctx, "t1", day)
	require.NoError(t, err)
	assert.Equal(t, 925.0, rate)
	cache.AssertExpectations(t)
}

func TestProvider_APIResultIsPersisted(t *testing.T) {
	cache, repo, api := new(mockCache), new(mockRepo), new(mockAPI)
	cache.On("Get", ctx, "t1", today).Return(0.0, false, nil)
	repo.On("Get", ctx, "t1", today).Return(0.0, rateRepo.ErrRateNotFound)
	api.On("GetRate", ctx, today).Return(940.5, nil)
	repo.On("Upsert", ctx, "t1", today, 940.5).Return(nil)
	cache.On("Set", ctx, "t1", today, 940.5, time.Hour).Return(nil)

	rate, err := newTestProvider(cache, repo, api).TodayRate(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 940.5, rate)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProvider_FutureDateUsesTodayRate(t *testing.T) {
	repo, api := new(mockRepo), new(mockAPI)
	repo.On("Get", ctx, "t1", today).Return(941.0, nil)

	rate, err := newTestProvider(nil, repo, api).RateFor(ctx, "t1", types.MustParseDate("2025-12-24"))
	require.NoError(t, err)
	assert.Equal(t, 941.0, rate)
	repo.AssertExpectations(t)
}

func TestProvider_WeekendFallsBackToLastPublished(t *testing.T) {
	repo, api := new(mockRepo), new(mockAPI)
	sunday := types.MustParseDate("2025-06-15")
	saturday := types.MustParseDate("2025-06-14")
	friday := types.MustParseDate("2025-06-13")

	repo.On("Get", ctx, "t1", sunday).Return(0.0, rateRepo.ErrRateNotFound)
	repo.On("Get", ctx, "t1", saturday).Return(0.0, rateRepo.ErrRateNotFound)
	repo.On("Get", ctx, "t1", friday).Return(0.0, rateRepo.ErrRateNotFound)
	api.On("GetRate", ctx, sunday).Return(0.0, fxapi.ErrRateNotFound)
	api.On("GetRate", ctx, saturday).Return(0.0, fxapi.ErrRateNotFound)
	api.On("GetRate", ctx, friday).Return(935.0, nil)
	repo.On("Upsert", ctx, "t1", friday, 935.0).Return(nil)

	rate, err := newTestProvider(nil, repo, api).RateFor(ctx, "t1", sunday)
	require.NoError(t, err)
	assert.Equal(t, 935.0, rate)
	api.AssertExpectations(t)
}

func TestProvider_NotFoundWithinLookback(t *testing.T) {
	repo, api := new(mockRepo), new(mockAPI)
	repo.On("Get", ctx, "t1", mock.Anything).Return(0.0, rateRepo.ErrRateNotFound)
	api.On("GetRate", ctx, mock.Anything).Return(0.0, fxapi.ErrRateNotFound)

	_, err := newTestProvider(nil, repo, api).RateFor(ctx, "t1", types.MustParseDate("2025-01-01"))
	assert.ErrorIs(t, err, ErrRateNotFound)
	api.AssertNumberOfCalls(t, "GetRate", opts.LookbackDays+1)
}

func TestProvider_ErrorsAreNotRetried(t *testing.T) {
	repo, api := new(mockRepo), new(mockAPI)
	day := types.MustParseDate("2025-06-10")
	repo.On("Get", ctx, "t1", day).Return(0.0, rateRepo.ErrRateNotFound)
	api.On("GetRate", ctx, day).Return(0.0, errors.New("timeout"))

	_, err := newTestProvider(nil, repo, api).RateFor(ctx, "t1", day)
	assert.ErrorIs(t, err, ErrInternal)
	api.AssertNumberOfCalls(t, "GetRate", 1)
}

func TestProvider_CacheFailureFallsThrough(t *testing.T) {
	cache, repo, api := new(mockCache), new(mockRepo), new(mockAPI)
	day := types.MustParseDate("2025-06-10")
	cache.On("Get", ctx, "t1", day).Return(0.0, false, errors.New("redis down"))
	repo.On("Get", ctx, "t1", day).Return(920.0, nil)
	cache.On("Set", ctx, "t1", day, 920.0, 24*time.Hour).Return(errors.New("redis down"))

	rate, err := newTestProvider(cache, repo, api).RateFor(ctx, "t1", day)
	require.NoError(t, err)
	assert.Equal(t, 920.0, rate)
}
