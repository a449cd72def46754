package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockRateProvider struct{ mock.Mock }

func (m *mockRateProvider) RateFor(ctx context.Context, tenantID string, day types.Date) (float64, error) {
	args := m.Called(ctx, tenantID, day)
	return args.Get(0).(float64), args.Error(1)
}

func day(s string) types.Date {
	return types.MustParseDate(s)
}

func stay(start, end string) domain.DateRange {
	return domain.DateRange{Start: day(start), End: day(end)}
}

func registry(t *testing.T, channels ...domain.Channel) *domain.ChannelRegistry {
	t.Helper()
	reg, err := domain.NewChannelRegistry(channels)
	require.NoError(t, err)
	return reg
}

func newEngine(provider ExchangeRateProvider) *Engine {
	return NewEngine(provider, metrics.NewWithRegisterer("test", prometheus.NewRegistry()), logger.NewNop())
}

func TestEngine_Price_ConvertsDefaultCurrencyToTarget(t *testing.T) {
	ctx := context.Background()
	provider := new(mockRateProvider)
	provider.On("RateFor", ctx, "t1", day("2025-03-01")).Return(900.0, nil)

	channels := registry(t,
		domain.Channel{ID: "direct", Currency: money.USD, IsDefault: true},
		domain.Channel{ID: "web", Currency: money.CLP, ModifierType: domain.ModifierNone},
	)
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "u1", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 100}},
	})

	res, err := newEngine(provider).Price(ctx, Request{
		TenantID:        "t1",
		Allocation:      StaticAllocation{Units: []domain.Unit{{ID: "u1", Capacity: 4}}},
		Range:           stay("2025-03-01", "2025-03-04"),
		Rates:           rates,
		Channels:        channels,
		TargetChannelID: "web",
	})
	require.NoError(t, err)

	assert.Equal(t, 270000.0, res.Total)
	assert.Equal(t, money.CLP, res.Currency)
	assert.Equal(t, 270000.0, res.TotalInOperatingCurrency)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 900.0, res.ExchangeRate)
	require.Len(t, res.Breakdown, 1)
	assert.InDelta(t, 300.0, res.Breakdown[0].BaseTotal, 1e-9)
	assert.Empty(t, res.RateGaps)
	provider.AssertExpectations(t)
}

func TestEngine_Price_Modifiers(t *testing.T) {
	ctx := context.Background()
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "u1", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 100000, "airbnb": 1}},
		{UnitID: "u2", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 50000}},
	})
	channels := registry(t,
		domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true},
		domain.Channel{ID: "airbnb", Currency: money.CLP, ModifierType: domain.ModifierPercentage, ModifierValue: 10},
		domain.Channel{ID: "booking", Currency: money.CLP, ModifierType: domain.ModifierFixed, ModifierValue: 5000},
		domain.Channel{ID: "phone", Currency: money.CLP, ModifierType: domain.ModifierNone, ModifierValue: 99},
	)
	alloc := StaticAllocation{Units: []domain.Unit{{ID: "u1"}, {ID: "u2"}}}
	rng := stay("2025-03-01", "2025-03-03")

	tests := []struct {
		name   string
		target string
		want   float64
	}{
		// base price always comes from the default channel, never from the target's own column
		{name: "percentage", target: "airbnb", want: (200000 + 100000) * 1.1},
		{name: "fixed per night per unit", target: "booking", want: 200000 + 2*5000 + 100000 + 2*5000},
		{name: "no modifier", target: "phone", want: 300000},
		{name: "default channel", target: "", want: 300000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// CLP -> CLP needs no exchange rate
			provider := new(mockRateProvider)

			res, err := newEngine(provider).Price(ctx, Request{
				TenantID:        "t1",
				Allocation:      alloc,
				Range:           rng,
				Rates:           rates,
				Channels:        channels,
				TargetChannelID: tt.target,
			})
			require.NoError(t, err)
			assert.Equal(t, money.Round(tt.want, money.CLP), res.Total)
			assert.Equal(t, res.Total, res.TotalInOperatingCurrency)
			assert.Equal(t, 0.0, res.ExchangeRate)
			provider.AssertNotCalled(t, "RateFor", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEngine_Price_DefaultChannelIgnoresOwnModifier(t *testing.T) {
	channels := registry(t,
		domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true, ModifierType: domain.ModifierPercentage, ModifierValue: 50},
	)
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "u1", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 1000}},
	})

	res, err := newEngine(nil).Price(context.Background(), Request{
		Allocation: StaticAllocation{Units: []domain.Unit{{ID: "u1"}}},
		Range:      stay("2025-03-01", "2025-03-02"),
		Rates:      rates,
		Channels:   channels,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.Total)
}

func TestEngine_Price_RateGapCountsAsZero(t *testing.T) {
	channels := registry(t, domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true})
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "u1", Start: day("2025-03-01"), End: day("2025-03-02"), Prices: map[string]float64{"direct": 1000}},
	})

	res, err := newEngine(nil).Price(context.Background(), Request{
		Allocation: StaticAllocation{Units: []domain.Unit{{ID: "u1"}}},
		Range:      stay("2025-03-01", "2025-03-05"),
		Rates:      rates,
		Channels:   channels,
	})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, res.Total)
	assert.Equal(t, 4, res.Nights)
	require.Len(t, res.RateGaps, 2)
	assert.Equal(t, "2025-03-03", res.RateGaps[0].Day.String())
	assert.Equal(t, "u1", res.RateGaps[1].UnitID)
}

func TestEngine_Price_Segmented(t *testing.T) {
	channels := registry(t,
		domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true},
		domain.Channel{ID: "booking", Currency: money.CLP, ModifierType: domain.ModifierFixed, ModifierValue: 10},
	)
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "A", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 100}},
		{UnitID: "B", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 150}},
		// most specific entry for one day of A
		{UnitID: "A", Start: day("2025-03-11"), End: day("2025-03-11"), Prices: map[string]float64{"direct": 130}},
	})

	res, err := newEngine(nil).Price(context.Background(), Request{
		Allocation: SegmentedAllocation{Segments: []domain.Segment{
			{Unit: domain.Unit{ID: "A"}, Span: stay("2025-03-10", "2025-03-12")},
			{Unit: domain.Unit{ID: "B"}, Span: stay("2025-03-12", "2025-03-13")},
		}},
		Range:           stay("2025-03-10", "2025-03-13"),
		Rates:           rates,
		Channels:        channels,
		TargetChannelID: "booking",
	})
	require.NoError(t, err)

	assert.Equal(t, ModeSegmented, res.Mode)
	assert.Equal(t, 3, res.Nights)
	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, 2, res.Breakdown[0].Nights)
	assert.InDelta(t, 110+140, res.Breakdown[0].Total, 1e-9)
	assert.InDelta(t, 160, res.Breakdown[1].Total, 1e-9)
	assert.Equal(t, 410.0, res.Total)
}

func TestEngine_Price_RoundsOnlyFinalTotals(t *testing.T) {
	channels := registry(t,
		domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true},
		domain.Channel{ID: "intl", Currency: money.USD},
	)
	rates := domain.NewRateTable([]domain.RateEntry{
		{UnitID: "u1", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 1000}},
		{UnitID: "u2", Start: day("2025-01-01"), End: day("2025-12-31"), Prices: map[string]float64{"direct": 1000}},
	})

	res, err := newEngine(nil).Price(context.Background(), Request{
		Allocation:           StaticAllocation{Units: []domain.Unit{{ID: "u1"}, {ID: "u2"}}},
		Range:                stay("2025-03-01", "2025-03-02"),
		Rates:                rates,
		Channels:             channels,
		TargetChannelID:      "intl",
		ExchangeRateOverride: ptr.Ptr(3000.0),
	})
	require.NoError(t, err)

	// 1000/3000 per unit = 0.3333..; rounding per unit would give 0.66
	assert.InDelta(t, 1.0/3.0, res.Breakdown[0].Total, 1e-12)
	assert.Equal(t, 0.67, res.Total)
	assert.Equal(t, 2000.0, res.TotalInOperatingCurrency)
}

func TestEngine_Price_Errors(t *testing.T) {
	ctx := context.Background()
	rates := domain.NewRateTable(nil)
	usdDefault := func(t *testing.T) *domain.ChannelRegistry {
		return registry(t,
			domain.Channel{ID: "direct", Currency: money.USD, IsDefault: true},
			domain.Channel{ID: "web", Currency: money.CLP},
		)
	}
	alloc := StaticAllocation{Units: []domain.Unit{{ID: "u1"}}}
	rng := stay("2025-03-01", "2025-03-02")

	t.Run("unknown target channel", func(t *testing.T) {
		_, err := newEngine(nil).Price(ctx, Request{
			Allocation: alloc, Range: rng, Rates: rates, Channels: usdDefault(t), TargetChannelID: "expedia",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidChannel)
	})

	t.Run("no registry", func(t *testing.T) {
		_, err := newEngine(nil).Price(ctx, Request{Allocation: alloc, Range: rng, Rates: rates})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("provider fails", func(t *testing.T) {
		provider := new(mockRateProvider)
		provider.On("RateFor", ctx, "t1", day("2025-03-01")).Return(0.0, errors.New("timeout"))

		res, err := newEngine(provider).Price(ctx, Request{
			TenantID: "t1", Allocation: alloc, Range: rng, Rates: rates, Channels: usdDefault(t), TargetChannelID: "web",
		})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrExchangeRateUnavailable)
	})

	t.Run("non positive override", func(t *testing.T) {
		_, err := newEngine(nil).Price(ctx, Request{
			Allocation: alloc, Range: rng, Rates: rates, Channels: usdDefault(t), TargetChannelID: "web",
			ExchangeRateOverride: ptr.Ptr(0.0),
		})
		assert.ErrorIs(t, err, domain.ErrExchangeRateUnavailable)
	})

	t.Run("empty allocation", func(t *testing.T) {
		_, err := newEngine(nil).Price(ctx, Request{
			Allocation: SegmentedAllocation{}, Range: rng, Rates: rates,
			Channels: registry(t, domain.Channel{ID: "direct", Currency: money.CLP, IsDefault: true}),
		})
		assert.ErrorIs(t, err, ErrEmptyAllocation)
	})
}
