package price_allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error) {
	args := m.Called(ctx, tenantID, rng, includeTentative)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySnapshot), args.Error(1)
}

type mockChannelRepo struct{ mock.Mock }

func (m *mockChannelRepo) ListChannels(ctx context.Context, tenantID string) ([]domain.Channel, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Channel), args.Error(1)
}

func d(s string) types.Date { return types.MustParseDate(s) }

var (
	ctx       = context.Background()
	stayRange = domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-04")}
	units     = []domain.Unit{{ID: "u1", Capacity: 4}, {ID: "u2", Capacity: 2}}
	rates     = []domain.RateEntry{
		{ID: "r1", UnitID: "u1", Start: d("2025-01-01"), End: d("2025-12-31"), Prices: map[string]float64{"direct": 50000}},
		{ID: "r2", UnitID: "u2", Start: d("2025-01-01"), End: d("2025-07-01"), Prices: map[string]float64{"direct": 30000}},
	}
	channels = []domain.Channel{
		{ID: "direct", Currency: money.CLP, IsDefault: true},
		{ID: "airbnb", Currency: money.CLP, ModifierType: domain.ModifierPercentage, ModifierValue: 10},
	}
)

func setup(t *testing.T) (*UseCase, *mockResolver, *mockChannelRepo) {
	t.Helper()
	resolver := new(mockResolver)
	channelRepo := new(mockChannelRepo)
	uc := NewUseCase(resolver, channelRepo, pricing.NewEngine(nil, nil, logger.NewNop()), logger.NewNop())
	return uc, resolver, channelRepo
}

func TestUseCase_StaticQuote(t *testing.T) {
	uc, resolver, channelRepo := setup(t)
	resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
	channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

	resp, err := uc.Execute(ctx, &Request{
		TenantID: "t1",
		Start:    stayRange.Start,
		End:      stayRange.End,
		UnitIDs:  []string{"u1"},
	})
	require.NoError(t, err)

	assert.Equal(t, stayRange, resp.Range)
	assert.Equal(t, pricing.ModeStatic, resp.Result.Mode)
	assert.Equal(t, 150000.0, resp.Result.Total)
	assert.Equal(t, 150000.0, resp.Result.TotalInOperatingCurrency)
	assert.Empty(t, resp.Result.RateGaps)
}

func TestUseCase_TargetChannelWithGaps(t *testing.T) {
	uc, resolver, channelRepo := setup(t)
	resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
	channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

	resp, err := uc.Execute(ctx, &Request{
		TenantID:  "t1",
		Start:     stayRange.Start,
		End:       stayRange.End,
		ChannelID: "airbnb",
		UnitIDs:   []string{"u2"},
	})
	require.NoError(t, err)

	// u2 has a rate only for 2025-07-01
	assert.Equal(t, 33000.0, resp.Result.Total)
	assert.Len(t, resp.Result.RateGaps, 2)
}

func TestUseCase_SegmentedQuote(t *testing.T) {
	uc, resolver, channelRepo := setup(t)
	resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
	channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

	resp, err := uc.Execute(ctx, &Request{
		TenantID: "t1",
		Start:    stayRange.Start,
		End:      stayRange.End,
		Segments: []pricing.SegmentSpec{
			{UnitID: "u2", Span: domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-02")}},
			{UnitID: "u1", Span: domain.DateRange{Start: d("2025-07-02"), End: d("2025-07-04")}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.ModeSegmented, resp.Result.Mode)
	assert.Equal(t, 130000.0, resp.Result.Total)
	assert.Equal(t, 3, resp.Result.Nights)
}

func TestUseCase_Errors(t *testing.T) {
	t.Run("invalid range", func(t *testing.T) {
		uc, _, _ := setup(t)
		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.End, End: stayRange.Start, UnitIDs: []string{"u1"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown unit", func(t *testing.T) {
		uc, resolver, channelRepo := setup(t)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
		channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, UnitIDs: []string{"u9"}})
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("empty allocation", func(t *testing.T) {
		uc, resolver, channelRepo := setup(t)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
		channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End})
		assert.ErrorIs(t, err, ErrInvalidAllocation)
	})

	t.Run("no default channel", func(t *testing.T) {
		uc, resolver, channelRepo := setup(t)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
		channelRepo.On("ListChannels", ctx, "t1").Return([]domain.Channel{{ID: "airbnb", Currency: money.CLP}}, nil)

		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, UnitIDs: []string{"u1"}})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("unknown channel", func(t *testing.T) {
		uc, resolver, channelRepo := setup(t)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)
		channelRepo.On("ListChannels", ctx, "t1").Return(channels, nil)

		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, ChannelID: "vrbo", UnitIDs: []string{"u1"}})
		assert.ErrorIs(t, err, domain.ErrInvalidChannel)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc, resolver, _ := setup(t)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(nil, errors.New("db down"))

		_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, UnitIDs: []string{"u1"}})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
